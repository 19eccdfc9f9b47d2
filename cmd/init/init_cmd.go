package init

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/styleimport/config"
)

type initOptions struct {
	dir   string
	force bool
	quiet bool
}

// Cmd represents the init command
var Cmd = NewCommand()

// NewCommand returns a new init command instance.
func NewCommand() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter styleimport.yaml",
		Long: `Write a starter styleimport.yaml configuring one component library.

Edit library_name and style_template to match the library you use. An existing
file is left alone unless --force is given.`,
		Args: cobra.NoArgs,
		// init runs before any configuration exists.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", ".", "Directory receiving the configuration file")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite an existing configuration file")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress output")

	return cmd
}

func runInit(cmd *cobra.Command, opts *initOptions) error {
	filename := filepath.Join(opts.dir, config.FileName)
	absPath, err := filepath.Abs(filename)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	_, err = os.Stat(filename)
	fileExists := !errors.Is(err, os.ErrNotExist)
	if fileExists && !opts.force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", absPath)
	}

	data, err := config.Default().Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(opts.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", opts.dir, err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}

	if !opts.quiet {
		out := cmd.OutOrStdout()
		if fileExists {
			fmt.Fprintf(out, "Overwrote %s\n", absPath)
		} else {
			fmt.Fprintf(out, "Created %s\n", absPath)
		}
		fmt.Fprintln(out, "")
		fmt.Fprintln(out, "Next steps:")
		fmt.Fprintln(out, "  - Set library_name and style_template for your component library")
		fmt.Fprintln(out, "  - Run 'styleimport transform --diff src' to preview the injected imports")
	}

	return nil
}
