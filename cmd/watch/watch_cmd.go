package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/LegacyCodeHQ/styleimport/internal/app"
)

var errNoOutDir = errors.New("--out-dir is required")

type watchOptions struct {
	root   string
	outDir string
}

// Cmd represents the watch command.
var Cmd = NewCommand()

// NewCommand returns a new watch command instance.
func NewCommand() *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch modules and re-inject style imports on change",
		Long: `Transform every module under the root into the output directory, then
watch the root for changes and rewrite modules as they are saved. Removed
modules are removed from the output directory as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.root, "root", "r", "", "Directory to watch (default: root from config)")
	cmd.Flags().StringVarP(&opts.outDir, "out-dir", "o", "", "Directory receiving rewritten modules")

	return cmd
}

func runWatch(cmd *cobra.Command, opts *watchOptions) error {
	env, err := app.EnvFromContext(cmd.Context())
	if err != nil {
		return err
	}
	if opts.outDir == "" {
		return errNoOutDir
	}

	root := opts.root
	if root == "" {
		root = env.Cfg.Root
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to resolve root path: %w", err)
	}
	absOut, err := filepath.Abs(opts.outDir)
	if err != nil {
		return fmt.Errorf("failed to resolve output path: %w", err)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	w := &rewriter{env: env, root: absRoot, outDir: absOut}

	modules, err := app.CollectModules([]string{absRoot})
	if err != nil {
		return fmt.Errorf("initial transform failed: %w", err)
	}
	w.rewrite(ctx, modules)

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s\n", absRoot)
	fmt.Fprintf(cmd.OutOrStdout(), "Writing to %s\n", absOut)
	fmt.Fprintf(cmd.OutOrStdout(), "Press Ctrl+C to stop\n")

	return watchAndRewrite(ctx, w)
}

// rewriter mirrors modules under root into outDir.
type rewriter struct {
	env    *app.Env
	root   string
	outDir string
}

func (w *rewriter) owns(path string) bool {
	rel, err := filepath.Rel(w.outDir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (w *rewriter) target(path string) string {
	return filepath.Join(w.outDir, app.MirrorPath(path, w.root))
}

// rewrite transforms each path, removing outputs of paths that no longer
// exist. Failures are logged and do not stop the watcher.
func (w *rewriter) rewrite(ctx context.Context, paths []string) {
	w.env.ForgetResolutions()

	for _, path := range paths {
		if ctx.Err() != nil {
			return
		}
		if w.owns(path) {
			continue
		}

		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			target := w.target(path)
			_ = os.Remove(target + ".map")
			if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
				w.env.Log.Warn("Failed to remove output", zap.String("module", path), zap.Error(err))
			}
			continue
		}

		res, err := w.env.TransformFile(ctx, path)
		if err != nil {
			w.env.Log.Warn("Transform failed", zap.String("module", path), zap.Error(err))
			continue
		}
		if err := app.WriteResult(res, w.target(path)); err != nil {
			w.env.Log.Warn("Write failed", zap.String("module", path), zap.Error(err))
			continue
		}
		if res.Changed() {
			w.env.Log.Info("Rewrote module", zap.String("module", path), zap.Int("edits", len(res.Edits)))
		}
	}
}
