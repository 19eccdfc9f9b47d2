package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcher_ShouldConsider(t *testing.T) {
	m, err := NewMatcher(LibraryRule{LibraryName: "ui-lib"}, LibraryRule{LibraryName: "@scope/kit"})
	require.NoError(t, err)

	tests := []struct {
		name string
		src  string
		want bool
	}{
		{name: "single quotes", src: `import { A } from 'ui-lib';`, want: true},
		{name: "double quotes", src: `import { A } from "ui-lib";`, want: true},
		{name: "scoped package", src: `import { A } from '@scope/kit';`, want: true},
		{name: "subpath only", src: `import 'ui-lib/style.css';`, want: false},
		{name: "unquoted mention", src: `// ui-lib is great`, want: false},
		{name: "other library", src: `import React from 'react';`, want: false},
		{name: "empty", src: ``, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, m.ShouldConsider(tc.src))
		})
	}
}

func TestMatcher_RegexSpecialNamesAreLiteral(t *testing.T) {
	m, err := NewMatcher(LibraryRule{LibraryName: "ui.lib"})
	require.NoError(t, err)

	assert.False(t, m.ShouldConsider(`import { A } from 'uixlib';`))
	assert.True(t, m.ShouldConsider(`import { A } from 'ui.lib';`))
}

func TestMatcher_Lookup(t *testing.T) {
	m, err := NewMatcher(
		LibraryRule{LibraryName: "ui-lib", BaseStyleImport: "first"},
		LibraryRule{LibraryName: "ui-lib", BaseStyleImport: "second"},
	)
	require.NoError(t, err)

	rule, ok := m.Lookup("ui-lib")
	require.True(t, ok)
	assert.Equal(t, "second", rule.BaseStyleImport)

	_, ok = m.Lookup("ui-lib/es")
	assert.False(t, ok)

	assert.Equal(t, []string{"ui-lib"}, m.LibraryNames())
}

func TestNewMatcher_RejectsEmptyName(t *testing.T) {
	_, err := NewMatcher(LibraryRule{LibraryName: "ok"}, LibraryRule{})

	assert.ErrorIs(t, err, ErrEmptyLibraryName)
}

func TestLibraryRule_Filter(t *testing.T) {
	rule := LibraryRule{
		LibraryName:  "ui-lib",
		ImportFilter: func(name string) bool { return strings.HasPrefix(name, "B") },
	}

	assert.Equal(t, []string{"Button"}, rule.filter([]string{"Button", "Alert"}))
	assert.Equal(t, []string{"Alert"}, LibraryRule{}.filter([]string{"Alert"}))
}
