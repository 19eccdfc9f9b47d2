package graph

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegacyCodeHQ/styleimport/internal/app"
)

func newProject(t *testing.T) (string, *app.Env) {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"styleimport.yaml": "libraries:\n  - library_name: ui-lib\n    style_template: \"ui-lib/es/{{ .Name }}/style.css\"\n",
		"node_modules/ui-lib/es/button/style.css": ".btn {}\n",
		"src/App.jsx":  "import { Button } from 'ui-lib';\nexport const App = () => <Button />;\n",
		"src/plain.js": "export const one = 1;\n",
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	env, err := app.NewEnv(app.Options{ConfigPath: filepath.Join(root, "styleimport.yaml")}, &bytes.Buffer{})
	require.NoError(t, err)
	env.Cfg.Root = root
	return root, env
}

func runGraphCommand(t *testing.T, env *app.Env, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	cmd.SetContext(app.ContextWithEnv(context.Background(), env))

	err := cmd.Execute()
	return out.String(), err
}

func TestGraphCommand_Formats(t *testing.T) {
	root, env := newProject(t)

	for _, format := range []OutputFormat{OutputFormatMermaid, OutputFormatJSON} {
		t.Run(format.String(), func(t *testing.T) {
			out, err := runGraphCommand(t, env, "--format", format.String(), filepath.Join(root, "src"))
			require.NoError(t, err)

			g := goldie.New(t)
			g.Assert(t, "graph_"+format.String(), []byte(out))
		})
	}
}

func TestGraphCommand_DOT(t *testing.T) {
	root, env := newProject(t)

	out, err := runGraphCommand(t, env, filepath.Join(root, "src"))
	require.NoError(t, err)

	assert.Contains(t, out, "digraph")
	assert.Contains(t, out, `"src/App.jsx" -> "node_modules/ui-lib/es/button/style.css"`)
	assert.Contains(t, out, `"src/plain.js"`)
	assert.Contains(t, out, "rankdir")
}

func TestGraphCommand_OutputFile(t *testing.T) {
	root, env := newProject(t)
	target := filepath.Join(t.TempDir(), "styles.mmd")

	out, err := runGraphCommand(t, env, "-f", "mermaid", "-o", target, filepath.Join(root, "src", "App.jsx"))
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "n0 --> n1")
}

func TestGraphCommand_UnknownFormat(t *testing.T) {
	root, env := newProject(t)

	_, err := runGraphCommand(t, env, "-f", "svg", root)

	assert.ErrorContains(t, err, "unknown format: svg")
}

func TestStyleName(t *testing.T) {
	root := t.TempDir()

	assert.Equal(t, "ui-lib/es/button/style.css", styleName("ui-lib/es/button/style.css", root))
	assert.Equal(t, "node_modules/x.css", styleName(filepath.ToSlash(filepath.Join(root, "node_modules", "x.css")), root))
}
