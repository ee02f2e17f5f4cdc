package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/promptkit/promptkit/library"
	"github.com/promptkit/promptkit/template"
)

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringArrayVar(&renderVarFlags, "var", nil, "variable binding as NAME=value (repeatable)")
	renderCmd.Flags().StringVar(&renderValuesFile, "values", "", "YAML file of variable bindings")
	renderCmd.Flags().StringVar(&renderMissing, "missing", "", "missing variable policy: highlight, keep, or fail")
	renderCmd.Flags().BoolVar(&renderPrompt, "prompt", false, "ask for unbound variables before rendering")
	renderCmd.Flags().BoolVar(&renderWatch, "watch", false, "re-render whenever the template changes")
}

var (
	renderVarFlags   []string
	renderValuesFile string
	renderMissing    string
	renderPrompt     bool
	renderWatch      bool
)

var renderCmd = &cobra.Command{
	Use:   "render <template>",
	Short: "Render a template with variable bindings",
	Long: `Render a template given by file path or library name. Bindings come
from --values and --var, with --var winning on collision. The missing
policy controls unbound variables: highlight marks them in the output,
keep leaves the placeholder text, fail aborts the render.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(args[0])
	},
}

func runRender(arg string) error {
	tmpl, err := resolveTemplate(arg)
	if err != nil {
		return err
	}

	values, err := buildValues(renderValuesFile, renderVarFlags, tmpl.Variables)
	if err != nil {
		return err
	}

	if renderPrompt {
		if IsNonInteractive() {
			return fmt.Errorf("--prompt requires an interactive terminal")
		}
		if err := promptValues(os.Stdin, os.Stderr, tmpl.Variables, values); err != nil {
			return err
		}
	}

	mode := renderMissing
	if mode == "" {
		mode = appConfig.MissingMode
	}
	opts, err := missingOptions(mode)
	if err != nil {
		return err
	}

	out, err := library.Render(tmpl, values, opts)
	if err != nil {
		return err
	}
	writeRendered(os.Stdout, out)

	if !renderWatch {
		return nil
	}
	return watchAndRender(arg, tmpl, values, opts)
}

// promptValues asks for each declared variable that has no binding
// yet. Empty input leaves the variable unbound so defaults and the
// missing policy still apply.
func promptValues(in io.Reader, out io.Writer, variables []template.Variable, values map[string]any) error {
	reader := bufio.NewReader(in)
	for _, variable := range variables {
		if _, ok := values[variable.Name]; ok {
			continue
		}

		hint := variable.Placeholder
		if hint == "" && !variable.Default.IsUndefined() {
			hint = template.Format(variable.Default, "")
		}
		if hint != "" {
			fmt.Fprintf(out, "%s [%s]: ", variable.Name, hint)
		} else {
			fmt.Fprintf(out, "%s: ", variable.Name)
		}

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			if err == io.EOF {
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		coerced, err := coerceValue(line, variable.Type)
		if err != nil {
			return fmt.Errorf("%s: %w", variable.Name, err)
		}
		values[variable.Name] = coerced
	}
	return nil
}

// watchAndRender re-renders on every template file change until
// interrupted. Render failures are logged rather than fatal so a bad
// intermediate save does not end the session.
func watchAndRender(arg string, tmpl *library.Template, values map[string]any, opts *template.Options) error {
	dirs := watchDirs(tmpl)
	watcher, err := library.NewWatcher(dirs, logger)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().Strs("dirs", dirs).Msg("watching for template changes")
	for {
		select {
		case <-ctx.Done():
			return nil
		case path := <-watcher.Changed():
			logger.Info().Str("file", path).Msg("template changed")
			fresh, err := resolveTemplate(arg)
			if err != nil {
				logger.Error().Err(err).Msg("failed to reload template")
				continue
			}
			out, err := library.Render(fresh, values, opts)
			if err != nil {
				logger.Error().Err(err).Msg("failed to render template")
				continue
			}
			writeRendered(os.Stdout, out)
		}
	}
}

func watchDirs(tmpl *library.Template) []string {
	if tmpl.Source != "" && tmpl.Source != library.SourceBuiltin {
		return []string{filepath.Dir(tmpl.Source)}
	}
	wd, err := os.Getwd()
	if err != nil {
		wd = ""
	}
	return appConfig.Paths(wd)
}

func writeRendered(out io.Writer, rendered string) {
	io.WriteString(out, rendered)
	if !strings.HasSuffix(rendered, "\n") {
		io.WriteString(out, "\n")
	}
}
