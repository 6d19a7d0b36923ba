package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/l0ser140/GDScript-formatter/pkg/lint"
	_ "github.com/l0ser140/GDScript-formatter/pkg/lint/rules" // register built-in rules
)

const formatJSON = "json"

func newRulesCommand() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List all available lint rules by name. Any of these names can be
used with 'lint --disable', the lint.disable config key, or a
'# gdlint-ignore = name' comment.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names := lint.DefaultRegistry.Names()
			out := cmd.OutOrStdout()

			if outputFormat == formatJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(names); err != nil {
					return fmt.Errorf("encoding rules: %w", err)
				}
				return nil
			}

			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outputFormat, "format", "text", "output format: text, json")

	return cmd
}
