package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/data"
	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register [email]",
	Short: "Create an account",
	Long:  "Create an account and log straight in. The new session is stored locally.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		password, _ := cmd.Flags().GetString("password")
		userName, _ := cmd.Flags().GetString("username")
		firstName, _ := cmd.Flags().GetString("first-name")
		lastName, _ := cmd.Flags().GetString("last-name")

		if password == "" || userName == "" {
			cobra.CheckErr(fmt.Errorf("--password and --username are required"))
		}

		ctrl, err := newController()
		cobra.CheckErr(err)
		defer ctrl.Close()

		req := data.SignupRequest{
			Email:     args[0],
			Password:  password,
			UserName:  userName,
			FirstName: firstName,
			LastName:  lastName,
		}
		if err := ctrl.Register(context.Background(), req); err != nil {
			fmt.Println("❌ Registration failed.")
			os.Exit(1)
		}

		sess := ctrl.State.Session()
		fmt.Printf("✅ Account created. Logged in as %s\n", sess.User.DisplayName())
	},
}

func init() {
	registerCmd.Flags().StringP("password", "p", "", "Password")
	registerCmd.Flags().StringP("username", "u", "", "Username")
	registerCmd.Flags().String("first-name", "", "First name")
	registerCmd.Flags().String("last-name", "", "Last name")
	rootCmd.AddCommand(registerCmd)
}
