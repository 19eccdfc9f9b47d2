package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegacyCodeHQ/styleimport/importer"
	"github.com/LegacyCodeHQ/styleimport/sourcemap"
)

func TestCollectModules(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{
		"src/App.tsx",
		"src/main.js",
		"src/style.css",
		"src/nested/util.ts",
		"node_modules/ui-lib/index.js",
		"dist/bundle.js",
	} {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}

	got, err := CollectModules([]string{root, filepath.Join(root, "src", "main.js"), filepath.Join(root, "src", "style.css")})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "src", "App.tsx"),
		filepath.Join(root, "src", "main.js"),
		filepath.Join(root, "src", "nested", "util.ts"),
		filepath.Join(root, "src", "style.css"),
	}, got)
}

func TestCollectModules_Missing(t *testing.T) {
	_, err := CollectModules([]string{filepath.Join(t.TempDir(), "nope.js")})

	assert.Error(t, err)
}

func TestSkipDir(t *testing.T) {
	assert.True(t, SkipDir("node_modules"))
	assert.False(t, SkipDir("src"))
}

func TestMirrorPath(t *testing.T) {
	root := t.TempDir()

	assert.Equal(t, filepath.Join("src", "a.js"), MirrorPath(filepath.Join(root, "src", "a.js"), root))
	assert.Equal(t, "b.js", MirrorPath(filepath.Join(filepath.Dir(root), "b.js"), root))
}

func TestWriteResult_Unchanged(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out", "a.js")

	require.NoError(t, WriteResult(&FileResult{Path: "a.js", Original: "x;\n"}, target))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "x;\n", string(data))
	assert.NoFileExists(t, target+".map")
}

func TestWriteResult_RemovesStaleMap(t *testing.T) {
	target := filepath.Join(t.TempDir(), "a.js")
	original := "import { Button } from 'ui-lib';\n"
	edits := []sourcemap.Insertion{{Offset: len(original) - 1, Text: "\nimport 'b.css';"}}
	changed := &FileResult{
		Path:     "a.js",
		Original: original,
		Result: &importer.Result{
			Code:  sourcemap.Apply(original, edits),
			Map:   sourcemap.Build("a.js", "a.js", original, edits),
			Edits: edits,
		},
	}

	require.NoError(t, WriteResult(changed, target))
	assert.FileExists(t, target+".map")

	require.NoError(t, WriteResult(&FileResult{Path: "a.js", Original: original}, target))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
	assert.NoFileExists(t, target+".map")
}
