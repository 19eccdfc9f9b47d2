package importer

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrEmptyLibraryName is returned for a rule without a library name.
var ErrEmptyLibraryName = errors.New("library name must not be empty")

// LibraryRule configures style injection for one component library.
type LibraryRule struct {
	// LibraryName is matched verbatim against import specifiers.
	LibraryName string

	// ImportFilter selects which imported names are considered. Nil means all.
	ImportFilter func(name string) bool

	// StyleResolver maps a name-cased identifier to a style specifier. Nil
	// means the library is recognized but never injects styles; an empty
	// result skips the identifier.
	StyleResolver func(name string) string

	// NameCase converts identifiers before StyleResolver sees them. Nil
	// means ParamCase.
	NameCase NameCaser

	// EnsureStyleFileExists drops specifiers that do not exist on disk.
	// Production hosts imply it.
	EnsureStyleFileExists bool

	// BaseStyleImport is imported once per matched statement unless the
	// module already mentions it.
	BaseStyleImport string
}

func (r LibraryRule) considers(name string) bool {
	return r.ImportFilter == nil || r.ImportFilter(name)
}

func (r LibraryRule) filter(names []string) []string {
	if r.ImportFilter == nil {
		return names
	}
	kept := make([]string, 0, len(names))
	for _, name := range names {
		if r.considers(name) {
			kept = append(kept, name)
		}
	}
	return kept
}

// nameCaseError reports a built-in CaseStyle outside the known set. Such a
// rule still works; identifiers reach StyleResolver as written.
func (r LibraryRule) nameCaseError() error {
	style, ok := r.NameCase.(CaseStyle)
	if !ok {
		return nil
	}
	_, err := ParseCaseStyle(string(style))
	return err
}

// Matcher is the read-only table of configured libraries.
type Matcher struct {
	rules   map[string]LibraryRule
	needles []string
}

// NewMatcher builds the table. A later rule replaces an earlier one with the
// same LibraryName.
func NewMatcher(rules ...LibraryRule) (*Matcher, error) {
	m := &Matcher{rules: make(map[string]LibraryRule, len(rules))}
	for i, rule := range rules {
		if rule.LibraryName == "" {
			return nil, fmt.Errorf("rule %d: %w", i, ErrEmptyLibraryName)
		}
		m.rules[rule.LibraryName] = rule
	}

	names := m.LibraryNames()
	m.needles = make([]string, 0, 2*len(names))
	for _, name := range names {
		m.needles = append(m.needles, "'"+name+"'", `"`+name+`"`)
	}
	return m, nil
}

// ShouldConsider is a cheap pre-check: true when src quotes at least one
// configured library name.
func (m *Matcher) ShouldConsider(src string) bool {
	for _, needle := range m.needles {
		if strings.Contains(src, needle) {
			return true
		}
	}
	return false
}

// Lookup returns the rule for an import specifier. Matching is exact.
func (m *Matcher) Lookup(specifier string) (LibraryRule, bool) {
	rule, ok := m.rules[specifier]
	return rule, ok
}

// LibraryNames returns the configured names in sorted order.
func (m *Matcher) LibraryNames() []string {
	names := make([]string, 0, len(m.rules))
	for name := range m.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
