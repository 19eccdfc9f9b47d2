package languages

import (
	"bytes"
	"testing"
)

func TestLanguagesCommand_PrintsGrammarsAndExtensions(t *testing.T) {
	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("cmd.Execute() error = %v", err)
	}

	expected := `javascript (.cjs, .js, .jsx, .mjs)
typescript (.cts, .mts, .ts)
tsx (.tsx)
`

	if out.String() != expected {
		t.Fatalf("output = %q, want %q", out.String(), expected)
	}
}
