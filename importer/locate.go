package importer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/LegacyCodeHQ/styleimport/resolve"
)

// Locator turns identifiers into style import lines.
type Locator struct {
	resolver resolve.ModuleResolver
	files    resolve.FileChecker
	diags    Diagnostics
}

// NewLocator returns a locator. A nil resolver leaves specifiers untouched;
// a nil checker uses the local filesystem.
func NewLocator(resolver resolve.ModuleResolver, files resolve.FileChecker, diags Diagnostics) *Locator {
	if resolver == nil {
		resolver = resolve.Passthrough{}
	}
	if files == nil {
		files = resolve.OSFileChecker{}
	}
	if diags == nil {
		diags = discardDiagnostics
	}
	return &Locator{resolver: resolver, files: files, diags: diags}
}

// Locate returns the distinct import lines to inject after one statement of
// mod importing identifiers from rule's library. The base style line, when
// due, comes first.
func (l *Locator) Locate(rule LibraryRule, identifiers []string, mod Module, production bool) []string {
	if rule.StyleResolver == nil {
		return nil
	}

	ensure := rule.EnsureStyleFileExists || production
	fromDir := filepath.Dir(mod.ID)

	seen := make(map[string]bool)
	var lines []string
	add := func(specifier string) {
		if seen[specifier] {
			return
		}
		seen[specifier] = true
		lines = append(lines, importLine(specifier))
	}

	if rule.BaseStyleImport != "" && !strings.Contains(mod.Code, rule.BaseStyleImport) {
		add(rule.BaseStyleImport)
	}

	for _, identifier := range identifiers {
		specifier := rule.StyleResolver(ResolveName(identifier, rule.NameCase))
		if specifier == "" {
			continue
		}

		resolved, err := l.resolver.Resolve(specifier, fromDir)
		if err != nil {
			l.diags.Report(Diagnostic{
				Kind:    ResolutionFailure,
				Module:  mod.ID,
				Message: fmt.Sprintf("cannot resolve style %q for %s from %s", specifier, identifier, rule.LibraryName),
				Err:     err,
			})
			continue
		}

		if ensure && !l.files.Exists(resolved) {
			continue
		}
		add(resolved)
	}

	return lines
}

func importLine(specifier string) string {
	if strings.Contains(specifier, "'") {
		return `import "` + specifier + `";`
	}
	return "import '" + specifier + "';"
}
