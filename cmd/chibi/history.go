package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show your reading history",
	Long:  "Display your reading records. Requires a stored session (see 'chibi login').",
	Run: func(cmd *cobra.Command, args []string) {
		page, _ := cmd.Flags().GetInt("page")

		ctrl, err := newController()
		cobra.CheckErr(err)
		defer ctrl.Close()

		ctx := context.Background()
		ctrl.RestoreSession(ctx)
		if !ctrl.State.Authenticated() {
			fmt.Println("Not logged in. Use 'chibi login' first.")
			return
		}

		resp, err := ctrl.Client.GetHistories(ctx, page)
		if err != nil {
			cobra.CheckErr(fmt.Errorf("history fetch failed: %w", err))
		}

		if len(resp.Rows) == 0 {
			fmt.Println("📚 Nothing read yet.")
			return
		}

		columns := []table.Column{
			{Title: "Name", Width: 40},
			{Title: "Last read", Width: 14},
			{Title: "Slug", Width: 30},
		}

		rows := []table.Row{}
		for _, h := range resp.Rows {
			rows = append(rows, table.Row{
				truncateString(h.Name, 38),
				h.LatestReadChapter,
				h.Slug,
			})
		}

		t := table.New(
			table.WithColumns(columns),
			table.WithRows(rows),
			table.WithFocused(false),
			table.WithHeight(len(rows)),
		)

		s := table.DefaultStyles()
		s.Header = s.Header.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true)
		s.Selected = s.Selected.
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(false)
		t.SetStyles(s)

		fmt.Printf("\n📖 Reading history (%d of %d records)\n\n", len(resp.Rows), resp.Count)
		fmt.Println(t.View())
	},
}

func init() {
	historyCmd.Flags().IntP("page", "p", 1, "Page number")
	rootCmd.AddCommand(historyCmd)
}
