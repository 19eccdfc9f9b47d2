package languages

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/styleimport/scanner"
)

// Cmd represents the languages command.
var Cmd = NewCommand()

// NewCommand returns a new languages command instance.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List the module grammars and file extensions that are scanned",
		Long: `List the grammars used to find import statements and the file extensions
mapped to each.

Examples:
  styleimport languages`,
		Args: cobra.NoArgs,
		// Listing grammars needs no configuration.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE:              runLanguages,
	}

	return cmd
}

func runLanguages(cmd *cobra.Command, _ []string) error {
	for _, lang := range []scanner.Language{scanner.JavaScript, scanner.TypeScript, scanner.TSX} {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", lang, strings.Join(scanner.Extensions(lang), ", ")); err != nil {
			return err
		}
	}

	return nil
}
