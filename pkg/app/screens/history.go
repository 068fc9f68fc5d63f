package screens

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/app/styles"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/data"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/services"
)

// HistoryScreen lists the viewer's reading records, newest first.
type HistoryScreen struct {
	ctrl     *services.Controller
	selected int
	page     int
	total    int
	loading  bool
	width    int
	height   int
	err      error
}

func NewHistoryScreen(ctrl *services.Controller) *HistoryScreen {
	return &HistoryScreen{ctrl: ctrl}
}

func (s *HistoryScreen) Init() tea.Cmd {
	// Refetch when a background save made the cached list stale.
	if len(s.ctrl.State.Histories()) > 0 && !s.ctrl.State.HistoriesStale() {
		return nil
	}
	s.loading = true
	s.page = 0
	return s.loadPage(1)
}

func (s *HistoryScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	histories := s.ctrl.State.Histories()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(histories)-1 {
				s.selected++
			} else if len(histories) < s.total && !s.loading {
				s.loading = true
				return s, s.loadPage(s.page + 1)
			}
		case "r":
			s.loading = true
			s.page = 0
			return s, s.loadPage(1)
		case "enter":
			if s.selected < len(histories) {
				slug := histories[s.selected].Slug
				return s, func() tea.Msg {
					return SwitchScreenMsg{Screen: "details", Data: slug}
				}
			}
		case "x":
			return s, s.logout
		}

	case historiesLoadedMsg:
		s.loading = false
		s.err = msg.err
		if msg.err == nil {
			s.page = msg.page
			s.total = msg.total
			if msg.page == 1 {
				s.ctrl.State.SetHistories(msg.rows)
				s.selected = 0
			} else {
				for _, h := range msg.rows {
					s.ctrl.State.UpsertHistory(h)
				}
			}
		}

	case loggedOutMsg:
		return s, func() tea.Msg {
			return SwitchScreenMsg{Screen: "home"}
		}
	}

	return s, nil
}

func (s *HistoryScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}

	header := styles.TitleStyle.Render("Reading History")

	var errorMsg string
	if s.err != nil {
		errorMsg = styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err))
		errorMsg += "\n\n"
	}

	var listView string
	if s.loading {
		listView = styles.StatusLoading.Render("Loading...")
	} else {
		listView = s.renderHistories()
	}

	help := styles.HelpStyle.Render(
		"↑/k ↓/j: navigate • enter: open comic • r: refresh • x: log out • tab: switch view • q: quit",
	)

	return fmt.Sprintf("%s\n\n%s%s\n%s", header, errorMsg, listView, help)
}

func (s *HistoryScreen) renderHistories() string {
	histories := s.ctrl.State.Histories()
	if len(histories) == 0 {
		return styles.MutedStyle.Render("Nothing read yet")
	}

	var b strings.Builder
	for i, h := range histories {
		line := h.Name
		if h.LatestReadChapter != "" {
			line = fmt.Sprintf("%s (last read: %s)", line, h.LatestReadChapter)
		}
		if i == s.selected {
			line = styles.SelectedStyle.Render(line)
		} else {
			line = styles.TextStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if s.total > len(histories) {
		b.WriteString(styles.MutedStyle.Render(
			fmt.Sprintf("%d of %d records", len(histories), s.total),
		))
		b.WriteString("\n")
	}

	return b.String()
}

// Messages
type historiesLoadedMsg struct {
	page  int
	rows  []data.History
	total int
	err   error
}

type loggedOutMsg struct{}

// Commands
func (s *HistoryScreen) loadPage(page int) tea.Cmd {
	return func() tea.Msg {
		resp, err := s.ctrl.Client.GetHistories(context.Background(), page)
		return historiesLoadedMsg{page: page, rows: resp.Rows, total: resp.Count, err: err}
	}
}

func (s *HistoryScreen) logout() tea.Msg {
	s.ctrl.Logout(context.Background())
	return loggedOutMsg{}
}
