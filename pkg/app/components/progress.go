package components

import (
	"fmt"
	"strings"

	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/app/styles"
)

// PageProgress shows reading position within a chapter.
type PageProgress struct {
	Current int
	Total   int
	Width   int
}

func NewPageProgress(width int) *PageProgress {
	return &PageProgress{Width: width}
}

func (p *PageProgress) Set(current, total int) {
	p.Current = current
	p.Total = total
}

func (p *PageProgress) View() string {
	if p.Total == 0 {
		return ""
	}

	label := styles.MutedStyle.Render(fmt.Sprintf("Page %d/%d", p.Current, p.Total))
	bar := renderProgressBar(p.Current, p.Total, p.Width-len(fmt.Sprintf("Page %d/%d ", p.Current, p.Total)))
	return label + " " + bar
}

func renderProgressBar(current, total, width int) string {
	if total == 0 || width <= 0 {
		return ""
	}

	filled := int(float64(current) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return styles.ProgressBarStyle.Render(bar)
}

// SimpleProgress renders a standalone progress bar.
func SimpleProgress(current, total, width int) string {
	return renderProgressBar(current, total, width)
}
