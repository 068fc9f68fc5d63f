package screens

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/app/components"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/app/styles"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/data"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/services"
)

// ReaderScreen walks through a chapter page by page. Loading a chapter
// records it in the viewer's history.
type ReaderScreen struct {
	ctrl      *services.Controller
	chapterID string
	chapter   *data.ChapterResponse
	page      int
	progress  *components.PageProgress
	loading   bool
	exporting bool
	width     int
	height    int
	err       error
}

func NewReaderScreen(ctrl *services.Controller, chapterID string) *ReaderScreen {
	return &ReaderScreen{
		ctrl:      ctrl,
		chapterID: chapterID,
		progress:  components.NewPageProgress(60),
		loading:   true,
	}
}

func (s *ReaderScreen) Init() tea.Cmd {
	return s.loadChapter(s.chapterID)
}

func (s *ReaderScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.progress.Width = msg.Width - 20

	case tea.KeyMsg:
		switch msg.String() {
		case "right", "l", " ":
			if s.chapter != nil && s.page < len(s.chapter.ChapterImages)-1 {
				s.page++
			}
		case "left", "h":
			if s.page > 0 {
				s.page--
			}
		case "n":
			if id := s.adjacentChapterID(1); id != "" {
				return s, s.loadChapter(id)
			}
		case "p":
			if id := s.adjacentChapterID(-1); id != "" {
				return s, s.loadChapter(id)
			}
		case "r":
			// Retry after a failed load.
			return s, s.loadChapter(s.chapterID)
		case "e":
			if !s.exporting && s.chapter != nil {
				s.exporting = true
				return s, s.exportChapter()
			}
		case "esc", "backspace":
			slug := s.ctrl.State.CurrentComic().Slug
			return s, func() tea.Msg {
				return SwitchScreenMsg{Screen: "details", Data: slug}
			}
		}

	case chapterLoadedMsg:
		s.loading = false
		s.err = msg.err
		if msg.err == nil {
			s.chapterID = msg.chapterID
			s.chapter = &msg.chapter
			s.page = 0
		}

	case chapterExportedMsg:
		s.exporting = false
		if msg.err != nil {
			s.err = msg.err
		}
	}

	return s, nil
}

// adjacentChapterID walks the comic's chapter list from the current
// chapter. Returns "" at either end of the list.
func (s *ReaderScreen) adjacentChapterID(delta int) string {
	chapters := s.ctrl.State.ChapterList()
	for i, ch := range chapters {
		if ch.ChapterID == s.chapterID {
			next := i + delta
			if next < 0 || next >= len(chapters) {
				return ""
			}
			return chapters[next].ChapterID
		}
	}
	return ""
}

func (s *ReaderScreen) View() string {
	if s.width == 0 || s.loading {
		return styles.StatusLoading.Render("Loading chapter...")
	}

	if s.err != nil {
		errorMsg := styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err))
		help := styles.HelpStyle.Render("r: retry • esc: back")
		return fmt.Sprintf("%s\n\n%s", errorMsg, help)
	}

	if s.chapter == nil || len(s.chapter.ChapterImages) == 0 {
		return styles.MutedStyle.Render("This chapter has no pages")
	}

	header := styles.TitleStyle.Render(
		fmt.Sprintf("%s - Chapter %s", s.chapter.ComicName, s.chapter.ChapterName),
	)

	image := s.chapter.ChapterImages[s.page]
	pageView := styles.CardStyle.Width(s.width - 4).Render(
		styles.TextStyle.Render(s.ctrl.ThumbnailURL(image.ImageFile)),
	)

	s.progress.Set(s.page+1, len(s.chapter.ChapterImages))

	var status string
	if s.exporting {
		status = styles.StatusLoading.Render("Exporting...")
	}

	help := styles.HelpStyle.Render(
		"←/h →/l: page • p/n: prev/next chapter • e: export EPUB • esc: back • q: quit",
	)

	parts := []string{header, pageView, s.progress.View(), status, help}
	return strings.Join(parts, "\n")
}

// Messages
type chapterLoadedMsg struct {
	chapterID string
	chapter   data.ChapterResponse
	err       error
}

// Commands
func (s *ReaderScreen) loadChapter(chapterID string) tea.Cmd {
	s.loading = true
	return func() tea.Msg {
		chapter, err := s.ctrl.LoadChapter(context.Background(), chapterID)
		return chapterLoadedMsg{chapterID: chapterID, chapter: chapter, err: err}
	}
}

func (s *ReaderScreen) exportChapter() tea.Cmd {
	return func() tea.Msg {
		comic := s.ctrl.State.CurrentComic()
		path, err := s.ctrl.ExportChapter(context.Background(), comic, s.chapterID)
		return chapterExportedMsg{path: path, err: err}
	}
}
