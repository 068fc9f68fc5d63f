package components

import (
	"strings"
	"testing"

	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/data"
)

func TestNewComicList(t *testing.T) {
	list := NewComicList()

	if list == nil {
		t.Fatal("Expected comic list to be created")
	}

	if list.SelectedIndex != 0 {
		t.Errorf("Expected SelectedIndex 0, got %d", list.SelectedIndex)
	}

	if len(list.Items) != 0 {
		t.Errorf("Expected 0 items, got %d", len(list.Items))
	}
}

func TestSetItems(t *testing.T) {
	list := NewComicList()

	list.SetItems([]data.Comic{
		{ID: "1", Name: "Comic 1"},
		{ID: "2", Name: "Comic 2"},
	})

	if len(list.Items) != 2 {
		t.Errorf("Expected 2 items, got %d", len(list.Items))
	}

	if list.SelectedIndex != 0 {
		t.Errorf("Expected SelectedIndex 0, got %d", list.SelectedIndex)
	}
}

func TestSetItemsClampsSelection(t *testing.T) {
	list := NewComicList()

	list.SetItems([]data.Comic{
		{ID: "1", Name: "Comic 1"},
		{ID: "2", Name: "Comic 2"},
		{ID: "3", Name: "Comic 3"},
	})
	list.SelectedIndex = 2

	list.SetItems([]data.Comic{
		{ID: "1", Name: "Comic 1"},
	})

	if list.SelectedIndex != 0 {
		t.Errorf("Expected SelectedIndex to be clamped to 0, got %d", list.SelectedIndex)
	}
}

func TestNextPrevWrap(t *testing.T) {
	list := NewComicList()

	list.SetItems([]data.Comic{
		{ID: "1", Name: "Comic 1"},
		{ID: "2", Name: "Comic 2"},
		{ID: "3", Name: "Comic 3"},
	})

	list.Next()
	list.Next()
	if list.SelectedIndex != 2 {
		t.Errorf("Expected SelectedIndex 2, got %d", list.SelectedIndex)
	}

	// Wraps around
	list.Next()
	if list.SelectedIndex != 0 {
		t.Errorf("Expected SelectedIndex to wrap to 0, got %d", list.SelectedIndex)
	}

	list.Prev()
	if list.SelectedIndex != 2 {
		t.Errorf("Expected SelectedIndex to wrap to 2, got %d", list.SelectedIndex)
	}
}

func TestNextPrevEmptyList(t *testing.T) {
	list := NewComicList()

	// Should not panic with empty list
	list.Next()
	list.Prev()

	if list.SelectedIndex != 0 {
		t.Errorf("Expected SelectedIndex to remain 0, got %d", list.SelectedIndex)
	}
}

func TestSelected(t *testing.T) {
	list := NewComicList()

	if list.Selected() != nil {
		t.Error("Expected nil for empty list")
	}

	list.SetItems([]data.Comic{
		{ID: "1", Name: "Comic 1"},
		{ID: "2", Name: "Comic 2"},
	})

	selected := list.Selected()
	if selected == nil {
		t.Fatal("Expected selected item")
	}
	if selected.ID != "1" {
		t.Errorf("Expected selected comic ID '1', got '%s'", selected.ID)
	}

	list.Next()
	selected = list.Selected()
	if selected.ID != "2" {
		t.Errorf("Expected selected comic ID '2', got '%s'", selected.ID)
	}
}

func TestNearEnd(t *testing.T) {
	list := NewComicList()

	if list.NearEnd() {
		t.Error("Empty list should not be near end")
	}

	items := make([]data.Comic, 10)
	for i := range items {
		items[i] = data.Comic{ID: string(rune('a' + i))}
	}
	list.SetItems(items)

	if list.NearEnd() {
		t.Error("Selection at start should not be near end")
	}

	list.SelectedIndex = 7
	if !list.NearEnd() {
		t.Error("Selection within the margin should be near end")
	}
}

func TestViewEmptyList(t *testing.T) {
	list := NewComicList()
	list.Width = 80
	list.Height = 20
	list.EmptyMessage = "No comics found"

	view := list.View()

	if !strings.Contains(view, "No comics found") {
		t.Error("Expected empty message in view")
	}
}

func TestViewWithItems(t *testing.T) {
	list := NewComicList()
	list.Width = 80
	list.Height = 20

	list.SetItems([]data.Comic{
		{
			ID:             "1",
			Name:           "Test Comic",
			Status:         "completed",
			ChaptersLatest: []data.ChapterData{{ChapterName: "42"}},
		},
	})

	view := list.View()

	if !strings.Contains(view, "Test Comic") {
		t.Error("Expected comic name in view")
	}

	if !strings.Contains(view, "Ch. 42") {
		t.Error("Expected latest chapter in view")
	}
}
