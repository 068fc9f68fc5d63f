package screens

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/app/styles"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/services"
)

type LoginScreen struct {
	ctrl       *services.Controller
	email      textinput.Model
	password   textinput.Model
	focus      int
	submitting bool
	width      int
	height     int
}

func NewLoginScreen(ctrl *services.Controller) *LoginScreen {
	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 100
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 100
	password.Width = 40
	password.EchoMode = textinput.EchoPassword

	return &LoginScreen{
		ctrl:     ctrl,
		email:    email,
		password: password,
	}
}

func (s *LoginScreen) Init() tea.Cmd {
	s.submitting = false
	s.focus = 0
	s.email.Focus()
	s.password.Blur()
	return textinput.Blink
}

func (s *LoginScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height

	case tea.KeyMsg:
		if s.submitting {
			return s, nil
		}

		switch msg.String() {
		case "tab", "shift+tab":
			s.focus = (s.focus + 1) % 2
			if s.focus == 0 {
				s.email.Focus()
				s.password.Blur()
			} else {
				s.email.Blur()
				s.password.Focus()
			}
			return s, textinput.Blink

		case "enter":
			if s.focus == 0 {
				s.focus = 1
				s.email.Blur()
				s.password.Focus()
				return s, textinput.Blink
			}
			if s.email.Value() != "" && s.password.Value() != "" {
				s.submitting = true
				return s, s.submit(s.email.Value(), s.password.Value())
			}

		case "ctrl+r":
			return s, func() tea.Msg {
				return SwitchScreenMsg{Screen: "register"}
			}

		case "esc":
			return s, func() tea.Msg {
				return SwitchScreenMsg{Screen: "back"}
			}
		}

	case authDoneMsg:
		s.submitting = false
		if msg.err == nil {
			s.password.SetValue("")
			return s, func() tea.Msg {
				return SwitchScreenMsg{Screen: "history"}
			}
		}
	}

	if s.focus == 0 {
		s.email, cmd = s.email.Update(msg)
	} else {
		s.password, cmd = s.password.Update(msg)
	}

	return s, cmd
}

func (s *LoginScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}

	header := styles.TitleStyle.Render("Log In")

	var errorMsg string
	if authErr := s.ctrl.State.Session().Err; authErr != "" {
		errorMsg = styles.StatusError.Render(authErr)
		errorMsg += "\n\n"
	}

	emailStyle := styles.InputStyle
	passwordStyle := styles.InputStyle
	if s.focus == 0 {
		emailStyle = styles.FocusedInputStyle
	} else {
		passwordStyle = styles.FocusedInputStyle
	}

	var status string
	if s.submitting {
		status = styles.StatusLoading.Render("Logging in...")
	}

	help := styles.HelpStyle.Render(
		"enter: next/submit • tab: switch field • ctrl+r: create account • esc: back",
	)

	return fmt.Sprintf("%s\n\n%s%s\n%s\n\n%s\n%s",
		header,
		errorMsg,
		emailStyle.Render(s.email.View()),
		passwordStyle.Render(s.password.View()),
		status,
		help,
	)
}

// Messages
type authDoneMsg struct {
	err error
}

// Commands
func (s *LoginScreen) submit(email, password string) tea.Cmd {
	return func() tea.Msg {
		err := s.ctrl.Login(context.Background(), email, password)
		return authDoneMsg{err: err}
	}
}
