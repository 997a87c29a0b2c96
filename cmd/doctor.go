package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/LacunaOmnibus/Chat-Envolve/internal/client"
)

var doctorBootstrapURL string

// doctorCmd represents the doctor command
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the saved credential and widget reachability",
	Long: `Validates the configured API key and fetches the widget bootstrap
script to confirm the hosting page will be able to load it.`,
	Run: func(cmd *cobra.Command, args []string) {
		signer := loadSigner()
		fmt.Printf("API key OK (site %s)\n", signer.SiteID)

		status, err := client.New().FetchBootstrap(doctorBootstrapURL)
		if err != nil {
			fmt.Printf("Error: widget bootstrap check failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Widget bootstrap reachable: %s (HTTP %d, %d bytes)\n",
			status.URL, status.StatusCode, status.Bytes)
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)

	doctorCmd.Flags().StringVar(&doctorBootstrapURL, "bootstrap-url", "", "Override the bootstrap script URL (for testing)")
}
