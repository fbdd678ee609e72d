// Package cmd provides the Cobra commands for the sqlrest CLI.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cliconfig "github.com/sqlrest-cli/sqlrest/cli/config"
	"github.com/sqlrest-cli/sqlrest/cli/output"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"

	// Global flags
	outputFmt string
	baseURL   string
	lang      string
	quiet     bool
	debug     bool

	// Shared across commands
	cfg       *cliconfig.Config
	formatter *output.Formatter
)

var rootCmd = &cobra.Command{
	Use:   "sqlrest",
	Short: "sqlrest - translate SQL into PostgREST HTTP requests",
	Long: `sqlrest translates a single SQL statement into the HTTP request a
PostgREST server would need to produce the equivalent result: method,
path, query parameters, and (for INSERT/UPDATE) a JSON body.

Get started:
  sqlrest translate "select id, name from books where id = 1"
  sqlrest --help        Show available commands`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cmd.SilenceErrors = quiet
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "http",
		"output format: http, curl, code, json, yaml")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "",
		"base URL prepended to the rendered request (default from config)")
	rootCmd.PersistentFlags().StringVar(&lang, "lang", "",
		"client-code language for -o code (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "minimal output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")

	viper.SetEnvPrefix("SQLREST")
	_ = viper.BindEnv("base_url")
	_ = viper.BindEnv("default_lang")
	_ = viper.BindEnv("debug")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(completionCmd)
}

func initConfig() {
	var err error
	cfg, err = cliconfig.Load()
	if err != nil {
		cfg = &cliconfig.Config{BaseURL: "http://localhost:3000", DefaultLang: "javascript"}
	}
	if baseURL == "" {
		baseURL = cfg.BaseURL
	}
	if lang == "" {
		lang = cfg.DefaultLang
	}
	if viper.GetBool("debug") {
		debug = true
	}

	format, ferr := output.ParseFormat(outputFmt)
	if ferr != nil {
		format = output.FormatHTTPWire
	}
	formatter = output.NewFormatter(format, quiet)
}

// GetFormatter returns the output formatter shared across subcommands.
func GetFormatter() *output.Formatter {
	if formatter == nil {
		formatter = output.NewFormatter(output.FormatHTTPWire, quiet)
	}
	return formatter
}

// GetBaseURL returns the effective base URL for request rendering.
func GetBaseURL() string { return baseURL }

// GetLang returns the effective client-code language for -o code.
func GetLang() string { return lang }

// IsDebug returns true if debug mode is enabled.
func IsDebug() bool { return debug }
