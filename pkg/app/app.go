package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/app/screens"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/services"
)

type App struct {
	ctrl *services.Controller
}

func NewApp(ctrl *services.Controller) *App {
	return &App{ctrl: ctrl}
}

func (a *App) Run() error {
	// The terminal belongs to the TUI; send the log somewhere else.
	restore, err := redirectLog(a.ctrl.Config().LogPath())
	if err != nil {
		return err
	}
	defer restore()

	a.ctrl.RestoreSession(context.Background())

	model := screens.NewRootScreen(a.ctrl)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

func redirectLog(path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	prev := log.Writer()
	log.SetOutput(f)
	return func() {
		log.SetOutput(prev)
		f.Close()
	}, nil
}
