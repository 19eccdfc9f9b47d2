// Package app holds the state shared by every styleimport command.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/LegacyCodeHQ/styleimport/config"
	"github.com/LegacyCodeHQ/styleimport/importer"
	"github.com/LegacyCodeHQ/styleimport/internal/logging"
	"github.com/LegacyCodeHQ/styleimport/resolve"
)

// resolverCacheSize bounds memoized node_modules lookups per run.
const resolverCacheSize = 4096

var errNoEnv = errors.New("command environment is not initialized")

type envKey struct{}

// Options are the global command line settings. Boolean flags only ever
// switch a setting on; they never override a true value from config.
type Options struct {
	ConfigPath string
	EnvFile    string
	Production bool
	SourceMap  bool
	Verbose    bool
}

// Env keeps everything commands need in a single place.
type Env struct {
	Cfg     *config.Config
	Log     *zap.Logger
	Matcher *importer.Matcher
	Engine  *importer.Engine
	Host    importer.StaticHost

	resolver *resolve.Cached
	start    time.Time
}

// NewEnv loads the .env file and configuration, and wires the engine.
// Logs go to logOut.
func NewEnv(opts Options, logOut io.Writer) (*Env, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.Production {
		cfg.Production = true
	}
	if opts.SourceMap {
		cfg.SourceMap = true
	}
	if opts.Verbose {
		cfg.Log.Level = "debug"
	}

	log, err := logging.New(cfg.Log.Level, logOut, !color.NoColor)
	if err != nil {
		return nil, err
	}

	matcher, err := cfg.Matcher()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	resolver, err := resolve.NewCached(resolve.NewNodeResolver(), resolverCacheSize)
	if err != nil {
		return nil, err
	}

	env := &Env{
		Cfg:     cfg,
		Log:     log,
		Matcher: matcher,
		Host: importer.StaticHost{
			IsProduction: cfg.Production,
			SourceMaps:   cfg.SourceMap,
		},
		resolver: resolver,
		start:    time.Now(),
	}
	env.Engine = importer.New(matcher,
		importer.WithResolver(resolver),
		importer.WithDiagnostics(logging.ZapDiagnostics{Log: log}),
	)

	log.Debug("Environment ready",
		zap.Strings("libraries", matcher.LibraryNames()),
		zap.Bool("production", cfg.Production),
		zap.Bool("sourcemap", cfg.SourceMap),
	)
	return env, nil
}

// ContextWithEnv returns a copy of ctx carrying env.
func ContextWithEnv(ctx context.Context, env *Env) context.Context {
	return context.WithValue(ctx, envKey{}, env)
}

// EnvFromContext returns the environment stored by ContextWithEnv.
func EnvFromContext(ctx context.Context) (*Env, error) {
	if ctx != nil {
		if env, ok := ctx.Value(envKey{}).(*Env); ok {
			return env, nil
		}
	}
	return nil, errNoEnv
}

// Uptime reports how long the environment has existed.
func (e *Env) Uptime() time.Duration {
	return time.Since(e.start)
}

// ForgetResolutions drops memoized module resolutions, so a long running
// watcher notices packages installed after start.
func (e *Env) ForgetResolutions() {
	e.resolver.Purge()
}

// Sync flushes the logger.
func (e *Env) Sync() {
	_ = e.Log.Sync()
}

// FileResult is the outcome of transforming one file.
type FileResult struct {
	Path     string
	Original string
	*importer.Result
}

// Changed reports whether any style import was injected.
func (r *FileResult) Changed() bool {
	return r.Result != nil
}

// Output returns the rewritten code, or the original when nothing changed.
func (r *FileResult) Output() string {
	if r.Result == nil {
		return r.Original
	}
	return r.Code
}

// TransformFile reads path and runs the engine over it.
func (e *Env) TransformFile(ctx context.Context, path string) (*FileResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	id, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	res, err := e.Engine.Transform(ctx, importer.Module{ID: id, Code: string(data)}, e.Host)
	if err != nil {
		return nil, err
	}

	if res != nil {
		e.Log.Debug("Injected style imports", zap.String("module", path), zap.Int("edits", len(res.Edits)))
	}
	return &FileResult{Path: path, Original: string(data), Result: res}, nil
}
