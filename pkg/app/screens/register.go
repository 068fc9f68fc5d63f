package screens

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/app/styles"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/data"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/services"
)

type RegisterScreen struct {
	ctrl       *services.Controller
	inputs     []textinput.Model
	focus      int
	submitting bool
	width      int
	height     int
}

const (
	regEmail = iota
	regPassword
	regUserName
	regFirstName
	regLastName
	regFieldCount
)

func NewRegisterScreen(ctrl *services.Controller) *RegisterScreen {
	placeholders := []string{"Email", "Password", "Username", "First name (optional)", "Last name (optional)"}

	inputs := make([]textinput.Model, regFieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 100
		ti.Width = 40
		if i == regPassword {
			ti.EchoMode = textinput.EchoPassword
		}
		inputs[i] = ti
	}
	inputs[regEmail].Focus()

	return &RegisterScreen{
		ctrl:   ctrl,
		inputs: inputs,
	}
}

func (s *RegisterScreen) Init() tea.Cmd {
	s.submitting = false
	s.setFocus(0)
	return textinput.Blink
}

func (s *RegisterScreen) setFocus(i int) {
	s.focus = i
	for j := range s.inputs {
		if j == i {
			s.inputs[j].Focus()
		} else {
			s.inputs[j].Blur()
		}
	}
}

func (s *RegisterScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		case "tab", "down":
			s.setFocus((s.focus + 1) % regFieldCount)
			return s, textinput.Blink

		case "shift+tab", "up":
			s.setFocus((s.focus + regFieldCount - 1) % regFieldCount)
			return s, textinput.Blink

		case "enter":
			if s.focus < regFieldCount-1 {
				s.setFocus(s.focus + 1)
				return s, textinput.Blink
			}
			if s.ready() {
				s.submitting = true
				return s, s.submit()
			}

		case "esc":
			return s, func() tea.Msg {
				return SwitchScreenMsg{Screen: "login"}
			}
		}

	case authDoneMsg:
		s.submitting = false
		if msg.err == nil {
			return s, func() tea.Msg {
				return SwitchScreenMsg{Screen: "home"}
			}
		}
	}

	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return s, cmd
}

func (s *RegisterScreen) ready() bool {
	return s.inputs[regEmail].Value() != "" &&
		s.inputs[regPassword].Value() != "" &&
		s.inputs[regUserName].Value() != ""
}

func (s *RegisterScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}

	header := styles.TitleStyle.Render("Create Account")

	var errorMsg string
	if authErr := s.ctrl.State.Session().Err; authErr != "" {
		errorMsg = styles.StatusError.Render(authErr)
		errorMsg += "\n\n"
	}

	var fields []string
	for i := range s.inputs {
		style := styles.InputStyle
		if i == s.focus {
			style = styles.FocusedInputStyle
		}
		fields = append(fields, style.Render(s.inputs[i].View()))
	}

	var status string
	if s.submitting {
		status = styles.StatusLoading.Render("Creating account...")
	}

	help := styles.HelpStyle.Render(
		"enter: next/submit • tab ↑ ↓: switch field • esc: back to login",
	)

	return fmt.Sprintf("%s\n\n%s%s\n\n%s\n%s",
		header,
		errorMsg,
		strings.Join(fields, "\n"),
		status,
		help,
	)
}

// Commands
func (s *RegisterScreen) submit() tea.Cmd {
	req := data.SignupRequest{
		Email:     s.inputs[regEmail].Value(),
		Password:  s.inputs[regPassword].Value(),
		UserName:  s.inputs[regUserName].Value(),
		FirstName: s.inputs[regFirstName].Value(),
		LastName:  s.inputs[regLastName].Value(),
	}
	return func() tea.Msg {
		err := s.ctrl.Register(context.Background(), req)
		return authDoneMsg{err: err}
	}
}
