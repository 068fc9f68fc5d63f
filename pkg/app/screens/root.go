package screens

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/app/styles"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/services"
)

type screenType int

const (
	homeView screenType = iota
	browseView
	searchView
	historyView
	detailsView
	readerView
	loginView
	registerView
)

// SwitchScreenMsg asks the root screen to change the active view.
type SwitchScreenMsg struct {
	Screen string
	Data   interface{}
}

// tabViews are the screens reachable with tab, in display order.
var tabViews = []screenType{homeView, browseView, searchView, historyView}

var tabLabels = map[screenType]string{
	homeView:    "Home",
	browseView:  "Browse",
	searchView:  "Search",
	historyView: "History",
}

type RootScreen struct {
	ctrl *services.Controller

	currentView screenType
	lastTab     screenType

	home     *HomeScreen
	browse   *BrowseScreen
	search   *SearchScreen
	history  *HistoryScreen
	details  *DetailsScreen
	reader   *ReaderScreen
	login    *LoginScreen
	register *RegisterScreen

	width  int
	height int
}

func NewRootScreen(ctrl *services.Controller) *RootScreen {
	return &RootScreen{
		ctrl:        ctrl,
		currentView: homeView,
		lastTab:     homeView,
		home:        NewHomeScreen(ctrl),
		browse:      NewBrowseScreen(ctrl),
		search:      NewSearchScreen(ctrl),
		history:     NewHistoryScreen(ctrl),
		login:       NewLoginScreen(ctrl),
		register:    NewRegisterScreen(ctrl),
	}
}

func (r *RootScreen) Init() tea.Cmd {
	return r.home.Init()
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return r, tea.Quit
		case "q":
			if !r.inputActive() {
				return r, tea.Quit
			}
		case "tab":
			if r.onTab() {
				next := (r.tabIndex() + 1) % len(tabViews)
				return r, r.switchTo(tabViews[next], nil)
			}
		}

	case SwitchScreenMsg:
		switch msg.Screen {
		case "home":
			cmd = r.switchTo(homeView, nil)
		case "browse":
			cmd = r.switchTo(browseView, nil)
		case "search":
			cmd = r.switchTo(searchView, nil)
		case "history":
			cmd = r.switchTo(historyView, nil)
		case "details":
			cmd = r.switchTo(detailsView, msg.Data)
		case "reader":
			cmd = r.switchTo(readerView, msg.Data)
		case "login":
			cmd = r.switchTo(loginView, nil)
		case "register":
			cmd = r.switchTo(registerView, nil)
		case "back":
			cmd = r.switchTo(r.lastTab, nil)
		}
		return r, cmd
	}

	// Forward message to active screen
	switch r.currentView {
	case homeView:
		model, cmd := r.home.Update(msg)
		r.home = model.(*HomeScreen)
		return r, cmd
	case browseView:
		model, cmd := r.browse.Update(msg)
		r.browse = model.(*BrowseScreen)
		return r, cmd
	case searchView:
		model, cmd := r.search.Update(msg)
		r.search = model.(*SearchScreen)
		return r, cmd
	case historyView:
		model, cmd := r.history.Update(msg)
		r.history = model.(*HistoryScreen)
		return r, cmd
	case detailsView:
		if r.details != nil {
			model, cmd := r.details.Update(msg)
			r.details = model.(*DetailsScreen)
			return r, cmd
		}
	case readerView:
		if r.reader != nil {
			model, cmd := r.reader.Update(msg)
			r.reader = model.(*ReaderScreen)
			return r, cmd
		}
	case loginView:
		model, cmd := r.login.Update(msg)
		r.login = model.(*LoginScreen)
		return r, cmd
	case registerView:
		model, cmd := r.register.Update(msg)
		r.register = model.(*RegisterScreen)
		return r, cmd
	}

	return r, cmd
}

func (r *RootScreen) switchTo(view screenType, payload interface{}) tea.Cmd {
	if r.onTab() {
		r.lastTab = r.currentView
	}

	// History needs a session; bounce to login instead.
	if view == historyView && !r.ctrl.State.Authenticated() {
		r.currentView = loginView
		return r.login.Init()
	}

	r.currentView = view
	switch view {
	case homeView:
		return r.home.Init()
	case browseView:
		return r.browse.Init()
	case searchView:
		return r.search.Init()
	case historyView:
		return r.history.Init()
	case detailsView:
		slug, ok := payload.(string)
		if !ok {
			r.currentView = r.lastTab
			return nil
		}
		r.details = NewDetailsScreen(r.ctrl, slug)
		return r.details.Init()
	case readerView:
		chapterID, ok := payload.(string)
		if !ok {
			r.currentView = r.lastTab
			return nil
		}
		r.reader = NewReaderScreen(r.ctrl, chapterID)
		return r.reader.Init()
	case loginView:
		return r.login.Init()
	case registerView:
		return r.register.Init()
	}
	return nil
}

func (r *RootScreen) onTab() bool {
	for _, v := range tabViews {
		if r.currentView == v {
			return true
		}
	}
	return false
}

func (r *RootScreen) tabIndex() int {
	for i, v := range tabViews {
		if r.currentView == v {
			return i
		}
	}
	return 0
}

// inputActive reports whether the active screen is capturing text, in
// which case plain keys must reach it instead of the global bindings.
func (r *RootScreen) inputActive() bool {
	switch r.currentView {
	case loginView, registerView:
		return true
	case searchView:
		return r.search.InputFocused()
	}
	return false
}

func (r *RootScreen) View() string {
	tabs := r.renderTabs()

	var content string
	switch r.currentView {
	case homeView:
		content = r.home.View()
	case browseView:
		content = r.browse.View()
	case searchView:
		content = r.search.View()
	case historyView:
		content = r.history.View()
	case detailsView:
		if r.details != nil {
			content = r.details.View()
		}
	case readerView:
		if r.reader != nil {
			content = r.reader.View()
		}
	case loginView:
		content = r.login.View()
	case registerView:
		content = r.register.View()
	}

	if tabs == "" {
		return content
	}
	return fmt.Sprintf("%s\n\n%s", tabs, content)
}

func (r *RootScreen) renderTabs() string {
	if !r.onTab() {
		return ""
	}

	rendered := make([]string, 0, len(tabViews)+1)
	for _, v := range tabViews {
		label := tabLabels[v]
		if v == r.currentView {
			rendered = append(rendered, styles.ActiveTabStyle.Render(label))
		} else {
			rendered = append(rendered, styles.InactiveTabStyle.Render(label))
		}
	}

	if sess := r.ctrl.State.Session(); sess.User != nil {
		rendered = append(rendered, styles.MutedStyle.Render(fmt.Sprintf("  %s", sess.User.DisplayName())))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
