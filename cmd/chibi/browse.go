package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/data"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "List comics by type or category",
	Long:  "Display one page of a comic listing. Pick a type (new, coming-soon, ongoing, completed) or a category slug.",
	Run: func(cmd *cobra.Command, args []string) {
		comicType, _ := cmd.Flags().GetString("type")
		category, _ := cmd.Flags().GetString("category")
		page, _ := cmd.Flags().GetInt("page")

		ctrl, err := newController()
		cobra.CheckErr(err)
		defer ctrl.Close()

		ctx := context.Background()
		var (
			comics []data.Comic
			label  string
		)
		if category != "" {
			comics, err = ctrl.Client.GetComicsByCategory(ctx, category, page)
			label = fmt.Sprintf("category '%s'", category)
		} else {
			comics, err = ctrl.Client.GetComicsByType(ctx, comicType, page)
			label = fmt.Sprintf("type '%s'", comicType)
		}
		if err != nil {
			cobra.CheckErr(fmt.Errorf("listing failed: %w", err))
		}

		if len(comics) == 0 {
			fmt.Printf("No comics for %s on page %d.\n", label, page)
			return
		}

		columns := []table.Column{
			{Title: "Name", Width: 40},
			{Title: "Status", Width: 12},
			{Title: "Latest", Width: 10},
			{Title: "Slug", Width: 30},
		}

		rows := []table.Row{}
		for _, comic := range comics {
			rows = append(rows, table.Row{
				truncateString(comic.Name, 38),
				comic.Status,
				comic.LatestChapterName(),
				comic.Slug,
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

		fmt.Printf("\n📚 %d comics for %s (page %d)\n\n", len(comics), label, page)
		fmt.Println(t.View())
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List all categories",
	Run: func(cmd *cobra.Command, args []string) {
		ctrl, err := newController()
		cobra.CheckErr(err)
		defer ctrl.Close()

		categories, err := ctrl.Client.GetCategories(context.Background())
		if err != nil {
			cobra.CheckErr(fmt.Errorf("categories fetch failed: %w", err))
		}

		for _, cat := range categories {
			fmt.Printf("%-30s %s\n", cat.Name, cat.Slug)
		}
	},
}

func init() {
	browseCmd.Flags().StringP("type", "t", data.TypeNew, "Comic type (new, coming-soon, ongoing, completed)")
	browseCmd.Flags().StringP("category", "c", "", "Category slug (overrides --type)")
	browseCmd.Flags().IntP("page", "p", 1, "Page number")
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(categoriesCmd)
}
