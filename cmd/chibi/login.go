package cmd

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Log in and store the session",
	Long:  "Authenticate with your account. The session is stored locally and reused by every other command.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		email := args[0]
		password, _ := cmd.Flags().GetString("password")

		if password == "" {
			fmt.Print("Password: ")
			raw, err := term.ReadPassword(int(syscall.Stdin))
			fmt.Println()
			if err != nil {
				cobra.CheckErr(fmt.Errorf("failed to read password: %w", err))
			}
			password = string(raw)
		}
		if password == "" {
			cobra.CheckErr(fmt.Errorf("password is required"))
		}

		ctrl, err := newController()
		cobra.CheckErr(err)
		defer ctrl.Close()

		if err := ctrl.Login(context.Background(), email, password); err != nil {
			fmt.Println("❌ Login failed. Check your email and password.")
			os.Exit(1)
		}

		sess := ctrl.State.Session()
		fmt.Printf("✅ Logged in as %s\n", sess.User.DisplayName())
	},
}

func init() {
	loginCmd.Flags().StringP("password", "p", "", "Password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
}
