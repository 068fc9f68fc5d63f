package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/data"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/store"
)

type fakeSaver struct {
	mu   sync.Mutex
	reqs []data.HistorySaveRequest
	err  error
}

func (f *fakeSaver) SaveHistory(ctx context.Context, req data.HistorySaveRequest) (data.History, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return data.History{}, f.err
	}
	return data.History{
		Slug:                req.Slug,
		Name:                req.Name,
		Thumbnail:           req.Thumbnail,
		ReadChapterIDs:      []string{req.LatestReadChapterID},
		LatestReadChapter:   req.LatestReadChapter,
		LatestReadChapterID: req.LatestReadChapterID,
	}, nil
}

func (f *fakeSaver) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reqs)
}

func authedStore() *store.Store {
	s := store.New()
	s.SetSession(&data.User{ID: "u1"}, data.Token{AccessToken: "at", RefreshToken: "rt"})
	return s
}

func TestChapterViewedSavesAndUpserts(t *testing.T) {
	saver := &fakeSaver{}
	state := authedStore()
	tracker := NewTracker(saver, state)

	comic := data.Comic{Slug: "naruto", Name: "Naruto", ThumbURL: "naruto.jpg"}
	tracker.ChapterViewed(comic, "ch-12", "Chapter 12")
	tracker.Flush()

	if saver.calls() != 1 {
		t.Fatalf("Expected 1 save, got %d", saver.calls())
	}
	if saver.reqs[0].LatestReadChapterID != "ch-12" {
		t.Errorf("Unexpected request: %+v", saver.reqs[0])
	}

	histories := state.Histories()
	if len(histories) != 1 || histories[0].Slug != "naruto" {
		t.Errorf("History not upserted into store: %+v", histories)
	}
	if !state.HistoriesStale() {
		t.Error("Save should mark the history screen stale")
	}
}

func TestChapterViewedSkipsUnauthenticated(t *testing.T) {
	saver := &fakeSaver{}
	tracker := NewTracker(saver, store.New())

	tracker.ChapterViewed(data.Comic{Slug: "naruto"}, "ch-1", "1")
	tracker.Flush()

	if saver.calls() != 0 {
		t.Errorf("Unauthenticated viewers must not persist history, got %d saves", saver.calls())
	}
}

func TestChapterViewedFailureIsSilent(t *testing.T) {
	saver := &fakeSaver{err: errors.New("backend down")}
	state := authedStore()
	tracker := NewTracker(saver, state)

	tracker.ChapterViewed(data.Comic{Slug: "naruto"}, "ch-1", "1")
	tracker.Flush()

	// Failure is logged only: no state change, no panic.
	if len(state.Histories()) != 0 {
		t.Error("Failed save must not touch the store")
	}
	if state.HistoriesStale() {
		t.Error("Failed save must not mark histories stale")
	}
}
