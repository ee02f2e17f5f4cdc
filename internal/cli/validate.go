package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/promptkit/promptkit/library"
	"github.com/promptkit/promptkit/template"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check template files for syntax problems",
	Long: `Load each file and report placeholder and block syntax problems.
Exits non-zero when any file fails to load or has issues.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bad := 0
		for _, path := range args {
			issues, err := lintFile(path)
			if err != nil {
				fmt.Fprintf(os.Stdout, "%s: %v\n", path, err)
				bad++
				continue
			}
			if len(issues) == 0 {
				fmt.Fprintf(os.Stdout, "%s: ok\n", path)
				continue
			}
			bad++
			for _, issue := range issues {
				fmt.Fprintf(os.Stdout, "%s: offset %d: %s\n", path, issue.Offset, issue.Message)
			}
		}
		if bad > 0 {
			return fmt.Errorf("%d of %d templates have problems", bad, len(args))
		}
		return nil
	},
}

func lintFile(path string) ([]template.Issue, error) {
	tmpl, err := library.LoadTemplate(path)
	if err != nil {
		return nil, err
	}
	return library.Lint(tmpl), nil
}
