package screens

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/app/styles"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/data"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/services"
)

type DetailsScreen struct {
	ctrl            *services.Controller
	slug            string
	comic           *data.Comic
	chapters        []data.ChapterData
	selectedChapter int
	exporting       bool
	exportedPath    string
	width           int
	height          int
	err             error
}

func NewDetailsScreen(ctrl *services.Controller, slug string) *DetailsScreen {
	return &DetailsScreen{
		ctrl: ctrl,
		slug: slug,
	}
}

func (s *DetailsScreen) Init() tea.Cmd {
	return s.loadDetails
}

func (s *DetailsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selectedChapter > 0 {
				s.selectedChapter--
			}
		case "down", "j":
			if s.selectedChapter < len(s.chapters)-1 {
				s.selectedChapter++
			}
		case "r":
			return s, s.loadDetails
		case "e":
			if !s.exporting && s.selectedChapter < len(s.chapters) {
				s.exporting = true
				s.exportedPath = ""
				return s, s.exportChapter(s.chapters[s.selectedChapter].ChapterID)
			}
		case "enter":
			if s.selectedChapter < len(s.chapters) {
				chapterID := s.chapters[s.selectedChapter].ChapterID
				return s, func() tea.Msg {
					return SwitchScreenMsg{Screen: "reader", Data: chapterID}
				}
			}
		case "esc", "backspace":
			return s, func() tea.Msg {
				return SwitchScreenMsg{Screen: "back"}
			}
		}

	case detailsLoadedMsg:
		s.comic = msg.comic
		s.chapters = msg.chapters
		s.err = msg.err

	case chapterExportedMsg:
		s.exporting = false
		s.err = msg.err
		s.exportedPath = msg.path
	}

	return s, nil
}

func (s *DetailsScreen) View() string {
	if s.width == 0 || s.comic == nil {
		return "Loading..."
	}

	header := styles.TitleStyle.Render(s.comic.Name)

	var errorMsg string
	if s.err != nil {
		errorMsg = styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err))
		errorMsg += "\n\n"
	}

	info := s.renderComicInfo()
	chaptersList := s.renderChaptersList()

	var status string
	if s.exporting {
		status = styles.StatusLoading.Render("Exporting...")
	} else if s.exportedPath != "" {
		status = styles.StatusCompleted.Render(fmt.Sprintf("Exported to %s", s.exportedPath))
	}

	help := styles.HelpStyle.Render(
		"↑/k ↓/j: navigate • enter: read • e: export EPUB • r: refresh • esc: back • q: quit",
	)

	return fmt.Sprintf("%s\n\n%s%s\n%s\n%s\n%s", header, errorMsg, info, chaptersList, status, help)
}

func (s *DetailsScreen) renderComicInfo() string {
	status := styles.StatusStyle(s.comic.Status).Render(s.comic.Status)

	content := s.comic.Content
	if len(content) > 200 {
		content = content[:197] + "..."
	}

	var meta []string
	if len(s.comic.Author) > 0 {
		meta = append(meta, fmt.Sprintf("Author: %s", strings.Join(s.comic.Author, ", ")))
	}
	if len(s.comic.Category) > 0 {
		names := make([]string, 0, len(s.comic.Category))
		for _, cat := range s.comic.Category {
			names = append(names, cat.Name)
		}
		meta = append(meta, strings.Join(names, ", "))
	}

	info := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.TextStyle.Render(content),
		"",
		styles.MutedStyle.Render(strings.Join(meta, " | ")),
		status,
		"",
	)

	return styles.CardStyle.Width(s.width - 4).Render(info)
}

func (s *DetailsScreen) renderChaptersList() string {
	if len(s.chapters) == 0 {
		return styles.MutedStyle.Render("No chapters available")
	}

	var b strings.Builder
	b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("Chapters (%d total):", len(s.chapters))))
	b.WriteString("\n\n")

	// Window around the selection
	start := 0
	end := len(s.chapters)
	if end > 10 {
		start = s.selectedChapter - 5
		if start < 0 {
			start = 0
		}
		end = start + 10
		if end > len(s.chapters) {
			end = len(s.chapters)
			start = end - 10
			if start < 0 {
				start = 0
			}
		}
	}

	readID := latestRead(s.ctrl.State.Histories(), s.slug)
	for i := start; i < end; i++ {
		ch := s.chapters[i]
		chapterText := fmt.Sprintf("Ch. %s", ch.ChapterName)
		if ch.ChapterTitle != "" {
			chapterText = fmt.Sprintf("%s: %s", chapterText, ch.ChapterTitle)
		}

		statusIcon := "○"
		statusColor := styles.MutedStyle
		if readID != "" && ch.ChapterID == readID {
			statusIcon = "●"
			statusColor = styles.StatusCompleted
		}

		line := fmt.Sprintf("%s %s", statusIcon, chapterText)
		if i == s.selectedChapter {
			line = styles.SelectedStyle.Render(line)
		} else {
			line = statusColor.Render(line)
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(s.chapters) > 10 {
		b.WriteString("\n")
		b.WriteString(styles.MutedStyle.Render(
			fmt.Sprintf("Showing %d-%d of %d chapters", start+1, end, len(s.chapters)),
		))
	}

	return b.String()
}

// latestRead finds the last chapter the viewer read in this comic.
func latestRead(histories []data.History, slug string) string {
	for _, h := range histories {
		if h.Slug == slug {
			return h.LatestReadChapterID
		}
	}
	return ""
}

// Messages
type detailsLoadedMsg struct {
	comic    *data.Comic
	chapters []data.ChapterData
	err      error
}

type chapterExportedMsg struct {
	path string
	err  error
}

// Commands
func (s *DetailsScreen) loadDetails() tea.Msg {
	comic, err := s.ctrl.OpenComic(context.Background(), s.slug)
	if err != nil {
		return detailsLoadedMsg{err: err}
	}
	return detailsLoadedMsg{comic: &comic, chapters: s.ctrl.State.ChapterList()}
}

func (s *DetailsScreen) exportChapter(chapterID string) tea.Cmd {
	return func() tea.Msg {
		comic := s.ctrl.State.CurrentComic()
		path, err := s.ctrl.ExportChapter(context.Background(), comic, chapterID)
		return chapterExportedMsg{path: path, err: err}
	}
}
