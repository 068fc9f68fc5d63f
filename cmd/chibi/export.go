package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [slug] [chapter-name]",
	Short: "Export a chapter as EPUB",
	Long:  "Download all pages of a chapter and compile them into an EPUB file in the export directory.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		slug, chapterName := args[0], args[1]

		ctrl, err := newController()
		cobra.CheckErr(err)
		defer ctrl.Close()

		ctx := context.Background()
		ctrl.RestoreSession(ctx)

		comic, err := ctrl.OpenComic(ctx, slug)
		if err != nil {
			cobra.CheckErr(fmt.Errorf("comic fetch failed: %w", err))
		}

		var chapterID string
		for _, ch := range ctrl.State.ChapterList() {
			if ch.ChapterName == chapterName {
				chapterID = ch.ChapterID
				break
			}
		}
		if chapterID == "" {
			cobra.CheckErr(fmt.Errorf("chapter '%s' not found in '%s'", chapterName, comic.Name))
		}

		fmt.Printf("📥 Exporting %s chapter %s...\n", comic.Name, chapterName)
		path, err := ctrl.ExportChapter(ctx, comic, chapterID)
		if err != nil {
			cobra.CheckErr(fmt.Errorf("export failed: %w", err))
		}

		fmt.Printf("📖 EPUB created: %s\n", path)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
