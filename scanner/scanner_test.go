package scanner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan_Basic(t *testing.T) {
	source := `import React from 'react';
import { Button, Alert as Warning } from "ui-lib";
import 'ui-lib/style.css';
`
	result, err := New().Scan(context.Background(), []byte(source), JavaScript)

	require.NoError(t, err)
	require.Len(t, result.Imports, 3)

	assert.Equal(t, []string{"react", "ui-lib", "ui-lib/style.css"}, specifiers(result.Imports))

	second := result.Imports[1]
	assert.Equal(t, `import { Button, Alert as Warning } from "ui-lib";`, second.Text([]byte(source)))
	assert.Equal(t, []Binding{
		{Imported: "Button", Local: "Button"},
		{Imported: "Alert", Local: "Warning"},
	}, second.Bindings)
	assert.False(t, second.Malformed)
}

func TestScan_DefaultAndNamespaceHaveNoBindings(t *testing.T) {
	source := `import Lib from 'ui-lib';
import * as All from 'ui-lib';
import Lib2, { Card } from 'ui-lib';
`
	result, err := New().Scan(context.Background(), []byte(source), JavaScript)

	require.NoError(t, err)
	require.Len(t, result.Imports, 3)
	assert.Empty(t, result.Imports[0].Bindings)
	assert.Empty(t, result.Imports[1].Bindings)
	assert.Equal(t, []Binding{{Imported: "Card", Local: "Card"}}, result.Imports[2].Bindings)
}

func TestScan_OffsetsCoverWholeStatement(t *testing.T) {
	source := "const a = 1;\nimport { Button } from 'ui-lib'\nfoo();\n"

	result, err := New().Scan(context.Background(), []byte(source), JavaScript)

	require.NoError(t, err)
	require.Len(t, result.Imports, 1)
	span := result.Imports[0]
	assert.Equal(t, 13, span.Start)
	assert.Equal(t, "import { Button } from 'ui-lib'", span.Text([]byte(source)))
}

func TestScan_JSX(t *testing.T) {
	source := `import { Button } from 'ui-lib';

export default function App() {
	return <Button />;
}
`
	result, err := New().Scan(context.Background(), []byte(source), JavaScript)

	require.NoError(t, err)
	assert.Equal(t, []string{"ui-lib"}, specifiers(result.Imports))
}

func TestScan_TypeScriptTypeOnly(t *testing.T) {
	source := `import type { ButtonProps } from 'ui-lib';
import { type AlertProps, Alert } from 'ui-lib';
`
	result, err := New().Scan(context.Background(), []byte(source), TypeScript)

	require.NoError(t, err)
	require.Len(t, result.Imports, 2)
	assert.True(t, result.Imports[0].TypeOnly)
	assert.False(t, result.Imports[1].TypeOnly)
	assert.Equal(t, []Binding{
		{Imported: "AlertProps", Local: "AlertProps", TypeOnly: true},
		{Imported: "Alert", Local: "Alert"},
	}, result.Imports[1].Bindings)
}

func TestScan_ReExports(t *testing.T) {
	source := `export { Button, Alert as Warning } from 'ui-lib';
export * from 'ui-lib';
export { local };
export const x = 1;
`
	result, err := New().Scan(context.Background(), []byte(source), JavaScript)

	require.NoError(t, err)
	require.Len(t, result.Imports, 2)
	assert.Equal(t, []string{"ui-lib", "ui-lib"}, specifiers(result.Imports))
	assert.Equal(t, []Binding{
		{Imported: "Button", Local: "Button"},
		{Imported: "Alert", Local: "Warning"},
	}, result.Imports[0].Bindings)
	assert.Empty(t, result.Imports[1].Bindings)
}

func TestScan_TypeScriptTypeOnlyReExport(t *testing.T) {
	source := `export type { ButtonProps } from 'ui-lib';
export { type CardProps, Card } from 'ui-lib';
`

	result, err := New().Scan(context.Background(), []byte(source), TypeScript)

	require.NoError(t, err)
	require.Len(t, result.Imports, 2)
	assert.True(t, result.Imports[0].TypeOnly)
	assert.False(t, result.Imports[1].TypeOnly)
	assert.Equal(t, []Binding{
		{Imported: "CardProps", Local: "CardProps", TypeOnly: true},
		{Imported: "Card", Local: "Card"},
	}, result.Imports[1].Bindings)
}

func TestScan_NoImports(t *testing.T) {
	result, err := New().Scan(context.Background(), []byte("const x = require('ui-lib');\n"), JavaScript)

	require.NoError(t, err)
	assert.Empty(t, result.Imports)
}

func TestScan_MalformedStatement(t *testing.T) {
	result, err := New().Scan(context.Background(), []byte("import { Button, , Alert } from 'ui-lib';\n"), JavaScript)

	require.NoError(t, err)
	assert.True(t, result.HasErrors)
}

func TestLanguageForPath(t *testing.T) {
	tests := []struct {
		path string
		want Language
	}{
		{path: "src/App.jsx", want: JavaScript},
		{path: "src/App.js", want: JavaScript},
		{path: "src/main.mjs", want: JavaScript},
		{path: "src/App.ts", want: TypeScript},
		{path: "src/App.mts", want: TypeScript},
		{path: "src/App.tsx", want: TSX},
		{path: "src/App.vue", want: JavaScript},
		{path: "", want: JavaScript},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, tc.want, LanguageForPath(tc.path))
		})
	}
}

func TestIsModulePath(t *testing.T) {
	assert.True(t, IsModulePath("src/App.TSX"))
	assert.True(t, IsModulePath("index.cjs"))
	assert.False(t, IsModulePath("style.css"))
	assert.False(t, IsModulePath("README"))
}

func TestExtensions(t *testing.T) {
	assert.Equal(t, []string{".cts", ".mts", ".ts"}, Extensions(TypeScript))
	assert.Equal(t, []string{".tsx"}, Extensions(TSX))
}

func specifiers(spans []ImportSpan) []string {
	out := make([]string, 0, len(spans))
	for _, s := range spans {
		out = append(out, s.Specifier)
	}
	return out
}
