package cmd

import (
	"os"

	"github.com/spf13/cobra"

	graphcmd "github.com/LegacyCodeHQ/styleimport/cmd/graph"
	initcmd "github.com/LegacyCodeHQ/styleimport/cmd/init"
	languagescmd "github.com/LegacyCodeHQ/styleimport/cmd/languages"
	transformcmd "github.com/LegacyCodeHQ/styleimport/cmd/transform"
	watchcmd "github.com/LegacyCodeHQ/styleimport/cmd/watch"
	"github.com/LegacyCodeHQ/styleimport/internal/app"
)

// version is set via build-time ldflags
var version = "dev"

// buildDate is set via build-time ldflags
var buildDate = "unknown"

// commit is set via build-time ldflags
var commit = "unknown"

// rootCmd represents the base command when called without any subcommands
var rootCmd = NewRootCommand()

// NewRootCommand returns the styleimport command tree.
func NewRootCommand() *cobra.Command {
	opts := &app.Options{}

	cmd := &cobra.Command{
		Use:   "styleimport",
		Short: "Inject component style imports into JavaScript and TypeScript modules",
		Long: `styleimport rewrites JavaScript and TypeScript modules so that every
named import from a configured component library is followed by imports of
that component's style files.

Libraries are configured in styleimport.yaml. Use 'styleimport init' to write
a starter file, and 'styleimport <command> --help' for details on a command.`,
		Version:       version,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.NewEnv(*opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			cmd.SetContext(app.ContextWithEnv(cmd.Context(), env))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if env, err := app.EnvFromContext(cmd.Context()); err == nil {
				env.Sync()
			}
		},
	}

	// Register subcommands
	cmd.AddCommand(transformcmd.NewCommand())
	cmd.AddCommand(watchcmd.NewCommand())
	cmd.AddCommand(graphcmd.NewCommand())
	cmd.AddCommand(initcmd.NewCommand())
	cmd.AddCommand(languagescmd.NewCommand())

	// Initialize annotations for version template
	cmd.Annotations = map[string]string{
		"buildDate": buildDate,
		"commit":    commit,
	}

	// Customize version template to show additional build info
	cmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build date: {{printf "%s" (index .Annotations "buildDate")}}
Commit: {{printf "%s" (index .Annotations "commit")}}
`)

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "Configuration file (default: ./styleimport.yaml)")
	flags.StringVar(&opts.EnvFile, "env-file", "", "Environment file loaded before configuration (default: ./.env)")
	flags.BoolVar(&opts.Production, "production", false, "Production build: only inject style files that exist on disk")
	flags.BoolVar(&opts.SourceMap, "sourcemap", false, "Generate source maps for rewritten modules")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
