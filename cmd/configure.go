package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/LacunaOmnibus/Chat-Envolve/internal/config"
	"github.com/LacunaOmnibus/Chat-Envolve/pkg/envolve"
)

// Variables to hold flag values
var (
	cfgAPIKey    string
	cfgDefaultIP string
)

// configureCmd represents the configure command
var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Validate and save an Envolve API key",
	Long: `Validates the API key format, derives the site ID, and saves the key
(and an optional default client IP) so other commands can run without flags.

Example:
  chat-envolve configure --api-key "123-abcSECRETxyz" --ip 10.0.0.1`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Validate by constructing a signer; a bad key never gets saved.
		signer, err := envolve.New(cfgAPIKey)
		if err != nil {
			log.Fatalf("Fatal: %v", err)
		}

		fmt.Printf("API key valid for site %s. Saving configuration...\n", signer.SiteID)

		// 2. Persist key and default IP to file
		if err := config.SaveCredential(cfgAPIKey, cfgDefaultIP); err != nil {
			log.Fatalf("Failed to save configuration file: %v", err)
		}

		fmt.Println("Saved. You can now run commands like 'chat-envolve login --first-name Joe'.")
	},
}

func init() {
	rootCmd.AddCommand(configureCmd)

	configureCmd.Flags().StringVar(&cfgAPIKey, "api-key", "", "Envolve API key (<digits>-<secret>)")
	configureCmd.Flags().StringVar(&cfgDefaultIP, "ip", "", "Default client IP for signed commands (optional)")

	_ = configureCmd.MarkFlagRequired("api-key")
}
