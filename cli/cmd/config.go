package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the CLI's resolved configuration",
	Long:  `Display the base URL and default client-code language sqlrest resolved from config file, environment, and flags.`,
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Display the resolved configuration",
	RunE:  runConfigView,
}

func init() {
	configCmd.AddCommand(configViewCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigView(cmd *cobra.Command, args []string) error {
	fmt.Printf("base_url: %s\n", GetBaseURL())
	fmt.Printf("default_lang: %s\n", GetLang())
	return nil
}
