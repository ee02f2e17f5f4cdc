// Package cli provides export commands for template data.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/promptkit/promptkit/library"
)

func init() {
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <template>",
	Short: "Print a template record as YAML",
	Long: `Print the full template record, including the variables and plain
text derived from the body, for scripting or export.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tmpl, err := resolveTemplate(args[0])
		if err != nil {
			return err
		}
		data, err := encodeTemplate(tmpl)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

func encodeTemplate(tmpl *library.Template) ([]byte, error) {
	data, err := yaml.Marshal(tmpl)
	if err != nil {
		return nil, fmt.Errorf("failed to encode template: %w", err)
	}
	return data, nil
}
