package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/promptkit/promptkit/library"
)

func init() {
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Fuzzy-search library templates",
	Long:  "Match the query against template names and body text, best matches first.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		templates, err := loadLibrary()
		if err != nil {
			return err
		}

		matches := library.Search(templates, args[0])
		if len(matches) == 0 {
			fmt.Fprintln(os.Stdout, "no templates match")
			return nil
		}

		headers := []string{"NAME", "SCORE", "DESCRIPTION"}
		rows := make([][]string, 0, len(matches))
		for _, match := range matches {
			rows = append(rows, []string{
				match.Template.Name,
				strconv.Itoa(match.Score),
				truncate(match.Template.Description, descriptionWidth),
			})
		}
		return writeTable(os.Stdout, headers, rows)
	},
}
