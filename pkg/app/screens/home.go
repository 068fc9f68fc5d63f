package screens

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/app/components"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/app/styles"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/data"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/services"
)

type HomeScreen struct {
	ctrl    *services.Controller
	list    *components.ComicList
	loading bool
	width   int
	height  int
	err     error
}

func NewHomeScreen(ctrl *services.Controller) *HomeScreen {
	list := components.NewComicList()
	list.EmptyMessage = "Nothing on the home feed yet"
	return &HomeScreen{
		ctrl: ctrl,
		list: list,
	}
}

func (s *HomeScreen) Init() tea.Cmd {
	// The feed survives tab switches; fetch only on first entry.
	if cached := s.ctrl.State.HomeComics(); len(cached) > 0 {
		s.list.SetItems(cached)
		return nil
	}
	s.loading = true
	return s.loadHome
}

func (s *HomeScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.list.Width = msg.Width - 4
		s.list.Height = msg.Height - 10

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			s.list.Prev()
		case "down", "j":
			s.list.Next()
		case "r":
			s.loading = true
			return s, s.loadHome
		case "enter":
			if selected := s.list.Selected(); selected != nil {
				slug := selected.Slug
				return s, func() tea.Msg {
					return SwitchScreenMsg{Screen: "details", Data: slug}
				}
			}
		}

	case homeLoadedMsg:
		s.loading = false
		s.err = msg.err
		if msg.err == nil {
			s.ctrl.State.SetHomeComics(msg.comics)
			s.list.SetItems(msg.comics)
		}
	}

	return s, nil
}

func (s *HomeScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}

	header := styles.TitleStyle.Render("Trending Comics")

	var errorMsg string
	if s.err != nil {
		errorMsg = styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err))
		errorMsg += "\n\n"
	}

	var listView string
	if s.loading {
		listView = styles.StatusLoading.Render("Loading...")
	} else {
		listView = s.list.View()
	}

	help := styles.HelpStyle.Render(
		"↑/k ↓/j: navigate • enter: details • r: refresh • tab: switch view • q: quit",
	)

	return fmt.Sprintf("%s\n\n%s%s\n%s", header, errorMsg, listView, help)
}

// Messages
type homeLoadedMsg struct {
	comics []data.Comic
	err    error
}

// Commands
func (s *HomeScreen) loadHome() tea.Msg {
	comics, err := s.ctrl.Client.GetHome(context.Background())
	return homeLoadedMsg{comics: comics, err: err}
}
