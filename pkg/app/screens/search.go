package screens

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/app/components"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/app/styles"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/data"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/services"
)

type SearchScreen struct {
	ctrl      *services.Controller
	input     textinput.Model
	list      *components.ComicList
	searching bool
	searched  bool
	width     int
	height    int
	err       error
}

func NewSearchScreen(ctrl *services.Controller) *SearchScreen {
	ti := textinput.New()
	ti.Placeholder = "Search comics..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 50

	list := components.NewComicList()
	list.EmptyMessage = "No results found"

	return &SearchScreen{
		ctrl:  ctrl,
		input: ti,
		list:  list,
	}
}

func (s *SearchScreen) Init() tea.Cmd {
	return textinput.Blink
}

// InputFocused reports whether keystrokes currently go to the search box.
func (s *SearchScreen) InputFocused() bool {
	return s.input.Focused()
}

func (s *SearchScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.list.Width = msg.Width - 4
		s.list.Height = msg.Height - 12

	case tea.KeyMsg:
		if s.searching {
			return s, nil
		}

		switch msg.String() {
		case "enter":
			if s.input.Focused() {
				keyword := s.input.Value()
				if keyword != "" {
					s.searching = true
					return s, s.performSearch(keyword)
				}
			} else if selected := s.list.Selected(); selected != nil {
				slug := selected.Slug
				return s, func() tea.Msg {
					return SwitchScreenMsg{Screen: "details", Data: slug}
				}
			}

		case "esc":
			// Switch focus between input and results
			if s.input.Focused() {
				s.input.Blur()
			} else {
				s.input.Focus()
				cmd = textinput.Blink
			}

		case "up", "k":
			if !s.input.Focused() {
				s.list.Prev()
			}

		case "down", "j":
			if !s.input.Focused() {
				s.list.Next()
			}
		}

	case searchResultMsg:
		s.searching = false
		s.searched = true
		s.err = msg.err
		s.list.SetItems(msg.results)
		if len(msg.results) > 0 {
			s.input.Blur()
		}
	}

	// Update text input
	if s.input.Focused() {
		s.input, cmd = s.input.Update(msg)
	}

	return s, cmd
}

func (s *SearchScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}

	header := styles.TitleStyle.Render("Search Comics")

	inputStyle := styles.InputStyle
	if s.input.Focused() {
		inputStyle = styles.FocusedInputStyle
	}
	inputView := inputStyle.Render(s.input.View())

	var errorMsg string
	if s.err != nil {
		errorMsg = styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err))
		errorMsg += "\n\n"
	}

	var resultsView string
	if s.searching {
		resultsView = styles.StatusLoading.Render("Searching...")
	} else if s.searched {
		resultsView = s.list.View()
	}

	help := styles.HelpStyle.Render(
		"enter: search/open • esc: switch focus • ↑/k ↓/j: navigate • tab: switch view",
	)

	return fmt.Sprintf("%s\n\n%s\n\n%s%s\n\n%s", header, inputView, errorMsg, resultsView, help)
}

// Messages
type searchResultMsg struct {
	results []data.Comic
	err     error
}

// Commands
func (s *SearchScreen) performSearch(keyword string) tea.Cmd {
	return func() tea.Msg {
		results, err := s.ctrl.Client.SearchComics(context.Background(), keyword)
		return searchResultMsg{results: results, err: err}
	}
}
