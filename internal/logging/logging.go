// Package logging builds the zap logger used by the CLI and adapts importer
// diagnostics onto it.
package logging

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/LegacyCodeHQ/styleimport/importer"
)

// New returns a console logger writing to w at the given level. Colored
// level names are used when color is true; timestamps are dropped then, as
// the output is meant for a terminal.
func New(level string, w io.Writer, color bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level: %w", err)
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if color {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(zapcore.AddSync(w)), lvl)
	return zap.New(core), nil
}

// ZapDiagnostics reports importer diagnostics as warnings. Config misuse is
// logged as an error since it affects every module.
type ZapDiagnostics struct {
	Log *zap.Logger
}

var _ importer.Diagnostics = ZapDiagnostics{}

func (z ZapDiagnostics) Report(d importer.Diagnostic) {
	if z.Log == nil {
		return
	}

	fields := []zap.Field{
		zap.Stringer("kind", d.Kind),
		zap.String("module", d.Module),
	}
	if d.Err != nil {
		fields = append(fields, zap.Error(d.Err))
	}

	if d.Kind == importer.ConfigMisuse {
		z.Log.Error(d.Message, fields...)
		return
	}
	z.Log.Warn(d.Message, fields...)
}
