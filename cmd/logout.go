package cmd

import (
	"github.com/spf13/cobra"
)

var logoutIP string

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Build a signed logout command",
	Long: `Builds the signed command string that logs the current user out of
the chat widget. Logout carries no user attributes.`,
	Run: func(cmd *cobra.Command, args []string) {
		signer := loadSigner()
		printCommand(signer, signer.BuildLogoutCommand(resolveIP(logoutIP)))
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)

	logoutCmd.Flags().StringVar(&logoutIP, "ip", "", "Client IP to bind the command to (default: none)")
}
