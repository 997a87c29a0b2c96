package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/LacunaOmnibus/Chat-Envolve/internal/config"
)

var cfgFile string
var jsonOutput bool
var apiKeyFlag string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chat-envolve",
	Short: "Sign Envolve chat commands and render embed snippets",
	Long: `Produces the signed, time-stamped command strings the Envolve chat
widget uses to log users in and out, plus the HTML snippet that embeds
the widget in a page.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() { config.InitConfig(cfgFile) })

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.chat-envolve.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiKeyFlag, "api-key", "", "Envolve API key (overrides the saved one)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
}
