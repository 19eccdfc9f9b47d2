// Package importer injects style imports after imports of component
// library exports.
//
// For a rule like
//
//	LibraryRule{
//		LibraryName:   "ui-lib",
//		StyleResolver: func(n string) string { return "ui-lib/es/" + n + "/style.css" },
//	}
//
// the statement `import { DatePicker } from 'ui-lib';` is followed by
// `import 'ui-lib/es/date-picker/style.css';` in the rewritten module.
package importer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/LegacyCodeHQ/styleimport/resolve"
	"github.com/LegacyCodeHQ/styleimport/scanner"
	"github.com/LegacyCodeHQ/styleimport/sourcemap"
)

// Module is one unit of source handed over by the host.
type Module struct {
	ID   string
	Code string
}

// Result is a rewritten module.
type Result struct {
	Code  string
	Map   *sourcemap.Map
	Edits []sourcemap.Insertion
}

// Host is the build pipeline invoking the engine.
type Host interface {
	// Production builds always verify that style files exist.
	Production() bool
	SourceMapRequested() bool
	// CombinedSourceMap composes the host's transform chain with edits.
	CombinedSourceMap(moduleID, original, code string, edits []sourcemap.Insertion) (*sourcemap.Map, error)
}

// StaticHost is a Host with fixed settings and no upstream transforms.
type StaticHost struct {
	IsProduction bool
	SourceMaps   bool
}

func (h StaticHost) Production() bool {
	return h.IsProduction
}

func (h StaticHost) SourceMapRequested() bool {
	return h.SourceMaps
}

func (h StaticHost) CombinedSourceMap(moduleID, original, _ string, edits []sourcemap.Insertion) (*sourcemap.Map, error) {
	name := filepath.ToSlash(moduleID)
	return sourcemap.Build(filepath.Base(moduleID), name, original, edits), nil
}

// Engine rewrites modules. It holds no per-call state and is safe for
// concurrent use.
type Engine struct {
	matcher   *Matcher
	scanner   scanner.Scanner
	resolver  resolve.ModuleResolver
	files     resolve.FileChecker
	diags     Diagnostics
	extractor *Extractor
	locator   *Locator
}

// Option configures an Engine.
type Option func(*Engine)

// WithScanner replaces the tree-sitter scanner.
func WithScanner(s scanner.Scanner) Option {
	return func(e *Engine) { e.scanner = s }
}

// WithResolver sets the module resolver used to normalize style specifiers.
func WithResolver(r resolve.ModuleResolver) Option {
	return func(e *Engine) { e.resolver = r }
}

// WithFileChecker sets the existence check.
func WithFileChecker(f resolve.FileChecker) Option {
	return func(e *Engine) { e.files = f }
}

// WithDiagnostics sets where recovered failures are reported.
func WithDiagnostics(d Diagnostics) Option {
	return func(e *Engine) { e.diags = d }
}

// New creates an engine over the given library table.
func New(matcher *Matcher, opts ...Option) *Engine {
	e := &Engine{matcher: matcher}
	for _, opt := range opts {
		opt(e)
	}
	if e.scanner == nil {
		e.scanner = scanner.New()
	}
	if e.diags == nil {
		e.diags = discardDiagnostics
	}
	e.extractor = NewExtractor(e.scanner, e.diags)
	e.locator = NewLocator(e.resolver, e.files, e.diags)
	e.checkRules()
	return e
}

// checkRules reports each misconfigured rule once, when the engine is built.
func (e *Engine) checkRules() {
	for _, name := range e.matcher.LibraryNames() {
		rule, _ := e.matcher.Lookup(name)
		if err := rule.nameCaseError(); err != nil {
			e.diags.Report(Diagnostic{
				Kind:    ConfigMisuse,
				Message: fmt.Sprintf("%s: identifiers are used as written", name),
				Err:     err,
			})
		}
	}
}

// Transform rewrites mod. A nil Result means there is nothing to do. Scan
// failures are reported and end in a nil Result; only context cancellation
// is returned as an error.
func (e *Engine) Transform(ctx context.Context, mod Module, host Host) (*Result, error) {
	if host == nil {
		host = StaticHost{}
	}
	if mod.Code == "" || !e.matcher.ShouldConsider(mod.Code) {
		return nil, nil
	}

	src := []byte(mod.Code)
	scan, err := e.scanner.Scan(ctx, src, scanner.LanguageForPath(mod.ID))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		e.diags.Report(Diagnostic{
			Kind:    ParseFailure,
			Module:  mod.ID,
			Message: "failed to scan module imports",
			Err:     err,
		})
		return nil, nil
	}
	if len(scan.Imports) == 0 {
		return nil, nil
	}

	var edits []sourcemap.Insertion
	for _, span := range scan.Imports {
		rule, ok := e.matcher.Lookup(span.Specifier)
		if !ok || span.TypeOnly {
			continue
		}

		identifiers := e.extractor.Extract(ctx, mod.ID, span.Text(src))
		identifiers = rule.filter(identifiers)

		lines := e.locator.Locate(rule, identifiers, mod, host.Production())
		if len(lines) == 0 {
			continue
		}
		edits = append(edits, sourcemap.Insertion{
			Offset: span.End,
			Text:   "\n" + strings.Join(lines, "\n"),
		})
	}
	if len(edits) == 0 {
		return nil, nil
	}

	result := &Result{
		Code:  sourcemap.Apply(mod.Code, edits),
		Edits: edits,
	}

	if host.SourceMapRequested() {
		m, err := host.CombinedSourceMap(mod.ID, mod.Code, result.Code, edits)
		if err != nil {
			e.diags.Report(Diagnostic{
				Kind:    SourceMapFailure,
				Module:  mod.ID,
				Message: "failed to combine source map",
				Err:     err,
			})
		} else {
			result.Map = m
		}
	}

	return result, nil
}
