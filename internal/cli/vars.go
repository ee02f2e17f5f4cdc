package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/promptkit/promptkit/template"
)

func init() {
	rootCmd.AddCommand(varsCmd)
}

var varsCmd = &cobra.Command{
	Use:   "vars <template>",
	Short: "List the variables a template expects",
	Long: `List a template's variables with their inferred or declared types,
whether each is required, and any default or input hint.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tmpl, err := resolveTemplate(args[0])
		if err != nil {
			return err
		}

		headers := []string{"NAME", "TYPE", "REQUIRED", "DEFAULT", "HINT"}
		rows := make([][]string, 0, len(tmpl.Variables))
		for _, variable := range tmpl.Variables {
			rows = append(rows, []string{
				variable.Name,
				string(variable.Type),
				formatYesNo(variable.Required),
				template.Format(variable.Default, ""),
				variable.Placeholder,
			})
		}
		return writeTable(os.Stdout, headers, rows)
	},
}
