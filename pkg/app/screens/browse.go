package screens

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/app/components"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/app/styles"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/data"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/services"
)

// BrowseScreen is the infinite listing: one paginated context at a
// time, keyed either by comic type or by category slug.
type BrowseScreen struct {
	ctrl  *services.Controller
	pager *services.Paginator
	list  *components.ComicList

	typeIndex int

	pickingCategory  bool
	categoryIndex    int
	selectedCategory *data.Category

	width  int
	height int
	err    error
}

func NewBrowseScreen(ctrl *services.Controller) *BrowseScreen {
	list := components.NewComicList()
	list.EmptyMessage = "No comics in this listing"
	return &BrowseScreen{
		ctrl:  ctrl,
		pager: services.NewPaginator(),
		list:  list,
	}
}

func (s *BrowseScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{s.loadCategories}
	if s.pager.Len() == 0 {
		cmds = append(cmds, s.restart())
	}
	return tea.Batch(cmds...)
}

func (s *BrowseScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.list.Width = msg.Width - 4
		s.list.Height = msg.Height - 12

	case tea.KeyMsg:
		if s.pickingCategory {
			return s, s.updateCategoryPicker(msg)
		}

		switch msg.String() {
		case "up", "k":
			s.list.Prev()
		case "down", "j":
			s.list.Next()
			if s.list.NearEnd() {
				return s, s.loadNextPage()
			}
		case "left", "h":
			s.typeIndex--
			if s.typeIndex < 0 {
				s.typeIndex = len(data.ListingTypes) - 1
			}
			s.selectedCategory = nil
			return s, s.restart()
		case "right", "l":
			s.typeIndex = (s.typeIndex + 1) % len(data.ListingTypes)
			s.selectedCategory = nil
			return s, s.restart()
		case "c":
			if len(s.ctrl.State.Categories()) > 0 {
				s.pickingCategory = true
				s.categoryIndex = 0
			}
		case "r":
			return s, s.restart()
		case "enter":
			if selected := s.list.Selected(); selected != nil {
				slug := selected.Slug
				return s, func() tea.Msg {
					return SwitchScreenMsg{Screen: "details", Data: slug}
				}
			}
		}

	case browsePageMsg:
		if msg.err != nil {
			s.pager.Fail(msg.epoch)
			s.err = msg.err
			return s, nil
		}
		s.err = nil
		s.pager.Apply(msg.epoch, msg.page, msg.comics)
		s.list.SetItems(s.pager.Comics())
	}

	return s, nil
}

func (s *BrowseScreen) updateCategoryPicker(msg tea.KeyMsg) tea.Cmd {
	categories := s.ctrl.State.Categories()

	switch msg.String() {
	case "up", "k":
		s.categoryIndex--
		if s.categoryIndex < 0 {
			s.categoryIndex = len(categories) - 1
		}
	case "down", "j":
		s.categoryIndex = (s.categoryIndex + 1) % len(categories)
	case "enter":
		if s.categoryIndex < len(categories) {
			cat := categories[s.categoryIndex]
			s.selectedCategory = &cat
			s.ctrl.State.SetCategory(cat)
		}
		s.pickingCategory = false
		return s.restart()
	case "esc", "c":
		s.pickingCategory = false
	}
	return nil
}

// restart resets the paginated context to its current key and fetches
// page one.
func (s *BrowseScreen) restart() tea.Cmd {
	s.pager.Reset(s.contextKey())
	s.list.SetItems(nil)
	return s.loadNextPage()
}

func (s *BrowseScreen) contextKey() string {
	if s.selectedCategory != nil {
		return "category:" + s.selectedCategory.Slug
	}
	return "type:" + data.ListingTypes[s.typeIndex]
}

func (s *BrowseScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}

	header := styles.TitleStyle.Render("Browse Comics")
	tabs := s.renderTypeTabs()

	if s.pickingCategory {
		return fmt.Sprintf("%s\n\n%s", header, s.renderCategoryPicker())
	}

	var errorMsg string
	if s.err != nil {
		errorMsg = styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err))
		errorMsg += "\n\n"
	}

	var footer string
	switch {
	case s.pager.Loading():
		footer = styles.StatusLoading.Render("Loading...")
	case !s.pager.HasMore():
		footer = styles.MutedStyle.Render("End of listing")
	}

	help := styles.HelpStyle.Render(
		"↑/k ↓/j: navigate • ←/h →/l: comic type • c: categories • enter: details • r: refresh • tab: switch view • q: quit",
	)

	return fmt.Sprintf("%s\n%s\n\n%s%s\n%s\n%s", header, tabs, errorMsg, s.list.View(), footer, help)
}

func (s *BrowseScreen) renderTypeTabs() string {
	if s.selectedCategory != nil {
		return styles.SubtitleStyle.Render(fmt.Sprintf("Category: %s", s.selectedCategory.Name))
	}

	rendered := make([]string, 0, len(data.ListingTypes))
	for i, listingType := range data.ListingTypes {
		if i == s.typeIndex {
			rendered = append(rendered, styles.ActiveTabStyle.Render(listingType))
		} else {
			rendered = append(rendered, styles.InactiveTabStyle.Render(listingType))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (s *BrowseScreen) renderCategoryPicker() string {
	categories := s.ctrl.State.Categories()
	if len(categories) == 0 {
		return styles.MutedStyle.Render("No categories available")
	}

	var b strings.Builder
	b.WriteString(styles.SubtitleStyle.Render("Pick a category:"))
	b.WriteString("\n\n")

	for i, cat := range categories {
		line := cat.Name
		if i == s.categoryIndex {
			line = styles.SelectedStyle.Render(line)
		} else {
			line = styles.TextStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(styles.HelpStyle.Render("↑/k ↓/j: navigate • enter: select • esc: cancel"))
	return b.String()
}

// Messages
type browsePageMsg struct {
	epoch  int
	page   int
	comics []data.Comic
	err    error
}

// Commands
func (s *BrowseScreen) loadCategories() tea.Msg {
	s.ctrl.LoadCategories(context.Background())
	return nil
}

func (s *BrowseScreen) loadNextPage() tea.Cmd {
	page, epoch, ok := s.pager.Begin()
	if !ok {
		return nil
	}

	key := s.pager.Key()
	return func() tea.Msg {
		ctx := context.Background()
		var (
			comics []data.Comic
			err    error
		)
		if slug, found := strings.CutPrefix(key, "category:"); found {
			comics, err = s.ctrl.Client.GetComicsByCategory(ctx, slug, page)
		} else {
			comics, err = s.ctrl.Client.GetComicsByType(ctx, strings.TrimPrefix(key, "type:"), page)
		}
		return browsePageMsg{epoch: epoch, page: page, comics: comics, err: err}
	}
}
