package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/LacunaOmnibus/Chat-Envolve/pkg/envolve"
)

// Variables to hold flag values
var (
	loginFirstName  string
	loginLastName   string
	loginPictureURL string
	loginAdmin      bool
	loginIP         string
)

// Helper to build a signer from the --api-key flag or the saved config.
// Shared by every command that signs.
func loadSigner() *envolve.Signer {
	key := apiKeyFlag
	if key == "" {
		key = viper.GetString("api_key")
	}
	if key == "" {
		fmt.Println("Error: No API key configured. Run 'chat-envolve configure' first or pass --api-key.")
		os.Exit(1)
	}

	signer, err := envolve.New(key)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	return signer
}

// Helper to resolve the client IP slot: flag, then saved default, then the
// "none" sentinel that disables IP binding.
func resolveIP(flagIP string) string {
	if flagIP != "" {
		return flagIP
	}
	if ip := viper.GetString("default_ip"); ip != "" {
		return ip
	}
	return envolve.NoClientIP
}

// commandResult is the --json shape shared by login and logout.
type commandResult struct {
	SiteID  string `json:"site_id"`
	Command string `json:"command"`
}

func printCommand(signer *envolve.Signer, signed string) {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(commandResult{SiteID: signer.SiteID, Command: signed}); err != nil {
			fmt.Printf("Error encoding JSON: %v\n", err)
			os.Exit(1)
		}
		return
	}
	fmt.Println(signed)
}

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Build a signed login command for a user",
	Long: `Builds the signed command string that logs a user into the chat
widget. The string is stamped with today's date and the client IP, so it
must be generated per request, not cached.

Example:
  chat-envolve login --first-name Joe --last-name Bloggs --admin --ip 10.0.0.1`,
	Run: func(cmd *cobra.Command, args []string) {
		signer := loadSigner()

		signed := signer.BuildLoginCommand(resolveIP(loginIP), loginFirstName, &envolve.LoginOptions{
			LastName:   loginLastName,
			PictureURL: loginPictureURL,
			IsAdmin:    loginAdmin,
		})

		printCommand(signer, signed)
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringVarP(&loginFirstName, "first-name", "f", "", "User's first name")
	loginCmd.Flags().StringVarP(&loginLastName, "last-name", "l", "", "User's last name (optional)")
	loginCmd.Flags().StringVar(&loginPictureURL, "picture-url", "", "URL of the user's avatar (optional)")
	loginCmd.Flags().BoolVar(&loginAdmin, "admin", false, "Mark the user as a chat admin")
	loginCmd.Flags().StringVar(&loginIP, "ip", "", "Client IP to bind the command to (default: none)")

	_ = loginCmd.MarkFlagRequired("first-name")
}
