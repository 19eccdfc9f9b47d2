package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/LegacyCodeHQ/styleimport/scanner"
)

var errMalformedStatement = errors.New("malformed import statement")

// Extractor recovers the imported names of a single import statement or
// `export ... from` re-export.
type Extractor struct {
	scanner scanner.Scanner
	diags   Diagnostics
}

// NewExtractor returns an extractor that re-scans statements with s.
func NewExtractor(s scanner.Scanner, diags Diagnostics) *Extractor {
	if diags == nil {
		diags = discardDiagnostics
	}
	return &Extractor{scanner: s, diags: diags}
}

// Extract returns the exported names bound by statement, in source order.
// `{ Foo as Bar }` yields Foo. Default, namespace and type-only bindings
// yield nothing. When the statement does not scan cleanly a ParseFailure is
// reported for moduleID and the result is empty.
func (e *Extractor) Extract(ctx context.Context, moduleID, statement string) []string {
	if statement == "" {
		return nil
	}

	result, err := e.scanner.Scan(ctx, []byte(statement), scanner.LanguageForPath(moduleID))
	if err == nil && (len(result.Imports) == 0 || result.Imports[0].Malformed || result.HasErrors) {
		err = errMalformedStatement
	}
	if err != nil {
		e.diags.Report(Diagnostic{
			Kind:    ParseFailure,
			Module:  moduleID,
			Message: fmt.Sprintf("failed to extract imported names from %q", statement),
			Err:     err,
		})
		return nil
	}

	span := result.Imports[0]
	if span.TypeOnly {
		return nil
	}

	seen := make(map[string]bool, len(span.Bindings))
	names := make([]string, 0, len(span.Bindings))
	for _, b := range span.Bindings {
		if b.TypeOnly || seen[b.Imported] {
			continue
		}
		seen[b.Imported] = true
		names = append(names, b.Imported)
	}
	return names
}
