package cmd

import (
	"os"

	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/app"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/config"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/services"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chibi",
	Short: "A comic reader for your terminal",
	Long:  "Browse, read and track comics from the Truyen Chibi catalog with a TUI and CLI",
	Run: func(cmd *cobra.Command, args []string) {
		// Launch TUI by default
		ctrl, err := newController()
		cobra.CheckErr(err)
		defer ctrl.Close()

		a := app.NewApp(ctrl)
		if err := a.Run(); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newController() (*services.Controller, error) {
	return services.NewController(config.FromEnv())
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
