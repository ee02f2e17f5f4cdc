package cli

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/promptkit/promptkit/library"
)

const descriptionWidth = 48

var listTags []string

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringSliceVar(&listTags, "tag", nil, "only show templates carrying any of these tags")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List library templates",
	Long:  "List templates from the search paths and the builtin pack, first hit per name winning.",
	RunE: func(cmd *cobra.Command, args []string) error {
		templates, err := loadLibrary()
		if err != nil {
			return err
		}
		templates = filterByTags(templates, listTags)

		wd, err := os.Getwd()
		if err != nil {
			wd = ""
		}
		projectDir := library.ProjectTemplatesDir(wd)
		userDir := library.UserTemplatesDir()

		headers := []string{"NAME", "VARS", "TAGS", "SOURCE", "DESCRIPTION"}
		rows := make([][]string, 0, len(templates))
		for _, tmpl := range templates {
			rows = append(rows, []string{
				tmpl.Name,
				strconv.Itoa(len(tmpl.Variables)),
				strings.Join(tmpl.Tags, ","),
				sourceLabel(tmpl.Source, projectDir, userDir),
				truncate(tmpl.Description, descriptionWidth),
			})
		}
		return writeTable(os.Stdout, headers, rows)
	},
}

// filterByTags keeps templates carrying at least one of the requested
// tags. An empty filter keeps everything.
func filterByTags(templates []*library.Template, tags []string) []*library.Template {
	if len(tags) == 0 {
		return templates
	}

	wanted := make(map[string]bool, len(tags))
	for _, tag := range tags {
		wanted[strings.ToLower(tag)] = true
	}

	filtered := make([]*library.Template, 0, len(templates))
	for _, tmpl := range templates {
		for _, tag := range tmpl.Tags {
			if wanted[strings.ToLower(tag)] {
				filtered = append(filtered, tmpl)
				break
			}
		}
	}
	return filtered
}

// sourceLabel names where a template came from relative to the search
// paths.
func sourceLabel(source, projectDir, userDir string) string {
	switch {
	case source == library.SourceBuiltin:
		return "builtin"
	case projectDir != "" && strings.HasPrefix(source, projectDir+string(filepath.Separator)):
		return "project"
	case userDir != "" && strings.HasPrefix(source, userDir+string(filepath.Separator)):
		return "user"
	default:
		return "file"
	}
}
