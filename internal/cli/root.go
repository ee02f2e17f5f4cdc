// Package cli implements the promptkit command line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/promptkit/promptkit/internal/config"
	"github.com/promptkit/promptkit/library"
)

var (
	cfgFile        string
	logLevel       string
	nonInteractive bool

	appConfig = config.DefaultConfig()
	logger    = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "promptkit",
	Short: "Prompt template toolkit",
	Long: `Promptkit renders prompt templates with typed placeholders,
conditional blocks, and loops. Templates load from YAML or Markdown
files and from library search paths.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		appConfig = cfg
		logger = newLogger(cfg.LogLevel, cfg.Color)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.config/promptkit/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "never prompt; fail when input would be required")
}

// Execute runs the root command and returns its error for main to report.
func Execute() error {
	return rootCmd.Execute()
}

// newLogger builds the CLI logger: console format on a terminal (or
// when color is forced), JSON otherwise.
func newLogger(level, color string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}

	var out io.Writer = os.Stderr
	if color == "always" || term.IsTerminal(int(os.Stderr.Fd())) {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen, NoColor: color == "never"}
	}
	return zerolog.New(out).Level(parsed).With().Timestamp().Logger()
}

// loadLibrary collects templates from the configured search paths plus
// the builtin pack.
func loadLibrary() ([]*library.Template, error) {
	wd, err := os.Getwd()
	if err != nil {
		wd = ""
	}
	return library.LoadFromSearchPaths(appConfig.Paths(wd))
}

// resolveTemplate treats the argument as a file path when one exists,
// otherwise as a library template name.
func resolveTemplate(arg string) (*library.Template, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		return library.LoadTemplate(arg)
	}

	templates, err := loadLibrary()
	if err != nil {
		return nil, fmt.Errorf("failed to load template library: %w", err)
	}
	return library.FindByName(templates, arg)
}
