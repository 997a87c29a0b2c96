package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/LacunaOmnibus/Chat-Envolve/pkg/envolve"
)

// Variables to hold flag values
var (
	embedFirstName  string
	embedLastName   string
	embedPictureURL string
	embedAdmin      bool
	embedIP         string
)

// embedCmd represents the embed command
var embedCmd = &cobra.Command{
	Use:   "embed",
	Short: "Render the HTML snippet that embeds the chat widget",
	Long: `Renders the two script tags a hosting page needs to start the chat
widget. With --first-name the snippet logs that user in; without it the
snippet logs the current user out.

Example:
  chat-envolve embed --first-name Joe --ip 10.0.0.1 > snippet.html`,
	Run: func(cmd *cobra.Command, args []string) {
		signer := loadSigner()

		html := signer.RenderEmbedTags(resolveIP(embedIP), embedFirstName, &envolve.LoginOptions{
			LastName:   embedLastName,
			PictureURL: embedPictureURL,
			IsAdmin:    embedAdmin,
		})

		fmt.Println(html)
	},
}

func init() {
	rootCmd.AddCommand(embedCmd)

	embedCmd.Flags().StringVarP(&embedFirstName, "first-name", "f", "", "User's first name (omit to render a logout snippet)")
	embedCmd.Flags().StringVarP(&embedLastName, "last-name", "l", "", "User's last name (optional)")
	embedCmd.Flags().StringVar(&embedPictureURL, "picture-url", "", "URL of the user's avatar (optional)")
	embedCmd.Flags().BoolVar(&embedAdmin, "admin", false, "Mark the user as a chat admin")
	embedCmd.Flags().StringVar(&embedIP, "ip", "", "Client IP to bind the command to (default: none)")
}
