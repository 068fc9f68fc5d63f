package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and wipe the stored session",
	Run: func(cmd *cobra.Command, args []string) {
		ctrl, err := newController()
		cobra.CheckErr(err)
		defer ctrl.Close()

		cobra.CheckErr(ctrl.Logout(context.Background()))
		fmt.Println("✅ Logged out")
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in account",
	Run: func(cmd *cobra.Command, args []string) {
		ctrl, err := newController()
		cobra.CheckErr(err)
		defer ctrl.Close()

		ctrl.RestoreSession(context.Background())
		sess := ctrl.State.Session()
		if sess.User == nil {
			fmt.Println("Not logged in. Use 'chibi login' first.")
			return
		}

		fmt.Printf("👤 %s\n", sess.User.DisplayName())
		fmt.Printf("   Email: %s\n", sess.User.Email)
		if sess.User.UserName != "" {
			fmt.Printf("   Username: %s\n", sess.User.UserName)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}
