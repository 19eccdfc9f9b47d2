package scanner

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Language selects the tree-sitter grammar used to scan a module.
type Language int

const (
	JavaScript Language = iota
	TypeScript
	TSX
)

func (l Language) String() string {
	switch l {
	case JavaScript:
		return "javascript"
	case TypeScript:
		return "typescript"
	case TSX:
		return "tsx"
	default:
		return "unknown"
	}
}

// LanguageForPath picks a grammar from a module path. Anything that is not
// TypeScript is scanned as JavaScript, which also covers JSX.
func LanguageForPath(path string) Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".mts", ".cts":
		return TypeScript
	case ".tsx":
		return TSX
	default:
		return JavaScript
	}
}

var moduleExtensions = map[string]Language{
	".js": JavaScript, ".mjs": JavaScript, ".cjs": JavaScript, ".jsx": JavaScript,
	".ts": TypeScript, ".mts": TypeScript, ".cts": TypeScript,
	".tsx": TSX,
}

// IsModulePath reports whether path has a JavaScript or TypeScript extension.
func IsModulePath(path string) bool {
	_, ok := moduleExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Extensions returns the sorted file extensions scanned with lang.
func Extensions(lang Language) []string {
	var exts []string
	for ext, l := range moduleExtensions {
		if l == lang {
			exts = append(exts, ext)
		}
	}
	sort.Strings(exts)
	return exts
}

// Binding is one named import binding: `Imported as Local`.
type Binding struct {
	Imported string
	Local    string
	TypeOnly bool
}

// ImportSpan is a static import statement, or an `export ... from`
// re-export, located in a module.
type ImportSpan struct {
	Specifier string
	Start     int
	End       int
	TypeOnly  bool
	Malformed bool
	Bindings  []Binding
}

// Text returns the literal statement text.
func (s ImportSpan) Text(src []byte) string {
	return string(src[s.Start:s.End])
}

// Result holds everything a scan found in one module.
type Result struct {
	Imports   []ImportSpan
	HasErrors bool
}

// Scanner finds import statements in module source without executing it.
type Scanner interface {
	Scan(ctx context.Context, src []byte, lang Language) (*Result, error)
}

const importQuery = `
(import_statement
  source: (string) @source) @statement

(export_statement
  source: (string) @source) @statement
`

type grammar struct {
	once     sync.Once
	language *sitter.Language
	imports  *sitter.Query
	err      error
}

// Queries are immutable once compiled and shared by every scan; cursors and
// parsers are created per call.
var grammars = map[Language]*grammar{
	JavaScript: {},
	TypeScript: {},
	TSX:        {},
}

func languageFor(lang Language) *sitter.Language {
	switch lang {
	case TypeScript:
		return typescript.GetLanguage()
	case TSX:
		return tsx.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

func grammarFor(lang Language) (*grammar, error) {
	g, ok := grammars[lang]
	if !ok {
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
	g.once.Do(func() {
		g.language = languageFor(lang)
		g.imports, g.err = sitter.NewQuery([]byte(importQuery), g.language)
		if g.err != nil {
			g.err = fmt.Errorf("failed to create %s import query: %w", lang, g.err)
		}
	})
	return g, g.err
}

// TreeSitter is the Scanner backed by the tree-sitter JavaScript and
// TypeScript grammars.
type TreeSitter struct{}

// New returns a tree-sitter backed scanner.
func New() *TreeSitter {
	return &TreeSitter{}
}

// Scan parses src and returns its import statements and re-exports ordered
// by position.
func (TreeSitter) Scan(ctx context.Context, src []byte, lang Language) (*Result, error) {
	g, err := grammarFor(lang)
	if err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	parser.SetLanguage(g.language)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s code: %w", lang, err)
	}
	defer tree.Close()

	root := tree.RootNode()

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(g.imports, root)

	var spans []ImportSpan
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}

		var statement, source *sitter.Node
		for _, capture := range match.Captures {
			switch g.imports.CaptureNameForId(capture.Index) {
			case "statement":
				statement = capture.Node
			case "source":
				source = capture.Node
			}
		}
		if statement == nil || source == nil {
			continue
		}

		spans = append(spans, ImportSpan{
			Specifier: cleanImportPath(source.Content(src)),
			Start:     int(statement.StartByte()),
			End:       int(statement.EndByte()),
			TypeOnly:  hasKeyword(statement, "type"),
			Malformed: statement.HasError(),
			Bindings:  collectBindings(statement, src),
		})
	}

	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].Start < spans[j].Start
	})

	return &Result{Imports: spans, HasErrors: root.HasError()}, nil
}

// collectBindings reads the named bindings of an import or re-export.
// Default, namespace and `export *` forms have no specifier and are left out.
func collectBindings(statement *sitter.Node, src []byte) []Binding {
	var bindings []Binding
	for i := 0; i < int(statement.NamedChildCount()); i++ {
		child := statement.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "import_clause":
			for j := 0; j < int(child.NamedChildCount()); j++ {
				named := child.NamedChild(j)
				if named != nil && named.Type() == "named_imports" {
					bindings = appendSpecifiers(bindings, named, "import_specifier", src)
				}
			}
		case "export_clause":
			bindings = appendSpecifiers(bindings, child, "export_specifier", src)
		}
	}
	return bindings
}

func appendSpecifiers(bindings []Binding, list *sitter.Node, kind string, src []byte) []Binding {
	for k := 0; k < int(list.NamedChildCount()); k++ {
		spec := list.NamedChild(k)
		if spec == nil || spec.Type() != kind {
			continue
		}
		if b, ok := bindingFor(spec, src); ok {
			bindings = append(bindings, b)
		}
	}
	return bindings
}

func bindingFor(spec *sitter.Node, src []byte) (Binding, bool) {
	name := spec.ChildByFieldName("name")
	if name == nil {
		return Binding{}, false
	}
	imported := cleanImportPath(name.Content(src))
	if imported == "" {
		return Binding{}, false
	}

	local := imported
	if alias := spec.ChildByFieldName("alias"); alias != nil {
		local = alias.Content(src)
	}

	return Binding{
		Imported: imported,
		Local:    local,
		TypeOnly: hasKeyword(spec, "type"),
	}, true
}

// hasKeyword reports whether node has an anonymous child token kw, e.g. the
// `type` in `import type { A }` or `import { type A }`.
func hasKeyword(node *sitter.Node, kw string) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child != nil && !child.IsNamed() && child.Type() == kw {
			return true
		}
	}
	return false
}

// cleanImportPath removes quotes from import path strings
func cleanImportPath(raw string) string {
	cleaned := strings.Trim(raw, "'\"")
	return strings.TrimSpace(cleaned)
}
