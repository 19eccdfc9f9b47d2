package graph

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/styleimport/internal/app"
)

type graphOptions struct {
	format string
	output string
}

// Cmd represents the graph command.
var Cmd = NewCommand()

// NewCommand returns a new graph command instance.
func NewCommand() *cobra.Command {
	opts := &graphOptions{
		format: OutputFormatDOT.String(),
	}

	cmd := &cobra.Command{
		Use:   "graph [files or directories...]",
		Short: "Show which style files each module receives",
		Long: `Transform modules without writing them and print a graph linking every
module to the style files injected into it.`,
		Example: `  styleimport graph src | dot -Tsvg > styles.svg
  styleimport graph -f mermaid src/App.tsx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format,
		fmt.Sprintf("Output format (%s, %s, %s)", OutputFormatDOT, OutputFormatJSON, OutputFormatMermaid))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the graph to a file instead of stdout")

	return cmd
}

func runGraph(cmd *cobra.Command, args []string, opts *graphOptions) error {
	formatter, err := NewFormatter(opts.format)
	if err != nil {
		return err
	}

	env, err := app.EnvFromContext(cmd.Context())
	if err != nil {
		return err
	}

	modules, err := app.CollectModules(args)
	if err != nil {
		return err
	}

	sg, err := buildStyleGraph(cmd.Context(), env, modules, env.Cfg.Root)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, sg); err != nil {
		return fmt.Errorf("failed to format graph: %w", err)
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write graph: %w", err)
		}
		return nil
	}
	_, err = cmd.OutOrStdout().Write(buf.Bytes())
	return err
}
