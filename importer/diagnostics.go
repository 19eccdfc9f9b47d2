package importer

// DiagnosticKind classifies a recovered failure.
type DiagnosticKind int

const (
	// ParseFailure: the module or a single statement could not be scanned.
	ParseFailure DiagnosticKind = iota
	// ResolutionFailure: a style specifier did not map to a real path.
	ResolutionFailure
	// ConfigMisuse: a rule asked for something that does not exist.
	ConfigMisuse
	// SourceMapFailure: the host could not produce a combined map.
	SourceMapFailure
)

func (k DiagnosticKind) String() string {
	switch k {
	case ParseFailure:
		return "parse"
	case ResolutionFailure:
		return "resolution"
	case ConfigMisuse:
		return "config"
	case SourceMapFailure:
		return "sourcemap"
	default:
		return "unknown"
	}
}

// Diagnostic describes a failure the engine recovered from.
type Diagnostic struct {
	Kind    DiagnosticKind
	Module  string
	Message string
	Err     error
}

// Diagnostics receives everything the engine recovers from.
type Diagnostics interface {
	Report(d Diagnostic)
}

// DiagnosticsFunc adapts a function to Diagnostics.
type DiagnosticsFunc func(d Diagnostic)

func (f DiagnosticsFunc) Report(d Diagnostic) {
	f(d)
}

var discardDiagnostics = DiagnosticsFunc(func(Diagnostic) {})
