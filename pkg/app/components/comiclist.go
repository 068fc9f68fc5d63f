package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/app/styles"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/data"
)

// loadMoreMargin is how close to the end the selection must be before
// the list reports that the next page should load.
const loadMoreMargin = 3

type ComicList struct {
	Items         []data.Comic
	SelectedIndex int
	Width         int
	Height        int
	EmptyMessage  string
}

func NewComicList() *ComicList {
	return &ComicList{
		Items:         []data.Comic{},
		SelectedIndex: 0,
		Width:         80,
		Height:        20,
		EmptyMessage:  "Nothing here yet",
	}
}

func (c *ComicList) SetItems(items []data.Comic) {
	c.Items = items
	if c.SelectedIndex >= len(items) && len(items) > 0 {
		c.SelectedIndex = len(items) - 1
	}
	if len(items) == 0 {
		c.SelectedIndex = 0
	}
}

func (c *ComicList) Next() {
	if len(c.Items) == 0 {
		return
	}
	c.SelectedIndex++
	if c.SelectedIndex >= len(c.Items) {
		c.SelectedIndex = 0
	}
}

func (c *ComicList) Prev() {
	if len(c.Items) == 0 {
		return
	}
	c.SelectedIndex--
	if c.SelectedIndex < 0 {
		c.SelectedIndex = len(c.Items) - 1
	}
}

func (c *ComicList) Selected() *data.Comic {
	if len(c.Items) == 0 || c.SelectedIndex >= len(c.Items) {
		return nil
	}
	return &c.Items[c.SelectedIndex]
}

// NearEnd reports whether the selection sits in the last few rows,
// the point where an infinite listing should fetch its next page.
func (c *ComicList) NearEnd() bool {
	if len(c.Items) == 0 {
		return false
	}
	return c.SelectedIndex >= len(c.Items)-loadMoreMargin
}

func (c *ComicList) View() string {
	if len(c.Items) == 0 {
		emptyMsg := styles.MutedStyle.Render(c.EmptyMessage)
		return lipgloss.Place(c.Width, c.Height, lipgloss.Center, lipgloss.Center, emptyMsg)
	}

	// Window the cards around the selection so long listings stay
	// within the terminal height.
	perCard := 6
	visible := c.Height / perCard
	if visible < 1 {
		visible = 1
	}
	start := c.SelectedIndex - visible/2
	if start < 0 {
		start = 0
	}
	end := start + visible
	if end > len(c.Items) {
		end = len(c.Items)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		comic := c.Items[i]
		cardStyle := styles.CardStyle
		if i == c.SelectedIndex {
			cardStyle = styles.ActiveCardStyle
		}

		title := styles.TitleStyle.Render(comic.Name)
		status := styles.StatusStyle(comic.Status).Render(fmt.Sprintf("Status: %s", comic.Status))

		var meta []string
		if latest := comic.LatestChapterName(); latest != "" {
			meta = append(meta, fmt.Sprintf("Latest: Ch. %s", latest))
		}
		if len(comic.Category) > 0 {
			names := make([]string, 0, len(comic.Category))
			for _, cat := range comic.Category {
				names = append(names, cat.Name)
			}
			meta = append(meta, strings.Join(names, ", "))
		}
		metaLine := styles.MutedStyle.Render(strings.Join(meta, " | "))

		cardContent := lipgloss.JoinVertical(
			lipgloss.Left,
			title,
			status,
			metaLine,
		)

		card := cardStyle.Width(c.Width - 4).Render(cardContent)
		b.WriteString(card)
		b.WriteString("\n")
	}

	if len(c.Items) > visible {
		b.WriteString(styles.MutedStyle.Render(
			fmt.Sprintf("Showing %d-%d of %d", start+1, end, len(c.Items)),
		))
		b.WriteString("\n")
	}

	return b.String()
}
