package transform

import (
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/LegacyCodeHQ/styleimport/internal/app"
)

type transformOptions struct {
	outDir string
	write  bool
	diff   bool
	jobs   int
}

// Cmd represents the transform command.
var Cmd = NewCommand()

// NewCommand returns a new transform command instance.
func NewCommand() *cobra.Command {
	opts := &transformOptions{
		jobs: runtime.NumCPU(),
	}

	cmd := &cobra.Command{
		Use:   "transform [files or directories...]",
		Short: "Inject style imports into modules",
		Long: `Rewrite JavaScript and TypeScript modules so that named imports from
configured component libraries are followed by imports of their styles.

Directories are searched recursively, skipping node_modules and build output.
By default rewritten modules are printed to stdout.`,
		Example: `  # Print the rewritten module
  styleimport transform src/App.tsx

  # Rewrite a project into dist/ with source maps
  styleimport transform --sourcemap --out-dir dist src

  # Show what would change
  styleimport transform --diff src`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outDir, "out-dir", "o", "", "Write every module into this directory, mirroring its path")
	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "Rewrite changed modules in place")
	cmd.Flags().BoolVarP(&opts.diff, "diff", "d", false, "Print a diff of each changed module instead of its code")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", opts.jobs, "Number of modules transformed concurrently")
	cmd.MarkFlagsMutuallyExclusive("out-dir", "write")

	return cmd
}

func runTransform(cmd *cobra.Command, args []string, opts *transformOptions) error {
	env, err := app.EnvFromContext(cmd.Context())
	if err != nil {
		return err
	}

	if opts.jobs < 1 {
		return fmt.Errorf("--jobs must be at least 1, got %d", opts.jobs)
	}

	modules, err := app.CollectModules(args)
	if err != nil {
		return err
	}

	results := make([]*app.FileResult, len(modules))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(opts.jobs)
	for i, path := range modules {
		g.Go(func() error {
			res, err := env.TransformFile(ctx, path)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var changed, added int
	for _, res := range results {
		if res.Changed() {
			changed++
			added += len(res.Code) - len(res.Original)
		}

		switch {
		case opts.diff:
			if res.Changed() {
				writeDiff(out, res.Path, res.Original, res.Code)
			}
		case opts.outDir == "" && !opts.write:
			if len(results) > 1 {
				fmt.Fprintf(out, "// %s\n", res.Path)
			}
			fmt.Fprint(out, res.Output())
		}

		if err := persist(res, opts, env.Cfg.Root); err != nil {
			return err
		}
	}

	summary := color.New(color.FgGreen)
	if changed == 0 {
		summary = color.New(color.FgYellow)
	}
	summary.Fprintf(cmd.ErrOrStderr(), "%d of %d modules rewritten, %s of imports added in %s\n",
		changed, len(results), humanize.Bytes(uint64(added)), env.Uptime().Round(time.Millisecond))
	return nil
}

// persist writes the module to disk when --write or --out-dir asks for it.
func persist(res *app.FileResult, opts *transformOptions, root string) error {
	switch {
	case opts.write:
		if !res.Changed() {
			return nil
		}
		return app.WriteResult(res, res.Path)
	case opts.outDir != "":
		return app.WriteResult(res, filepath.Join(opts.outDir, app.MirrorPath(res.Path, root)))
	default:
		return nil
	}
}
