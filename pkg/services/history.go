package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/data"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/store"
)

// HistorySaver is the slice of the API client the tracker needs.
type HistorySaver interface {
	SaveHistory(ctx context.Context, req data.HistorySaveRequest) (data.History, error)
}

// saveTimeout bounds a background history write; it must never hold a
// goroutine forever.
const saveTimeout = 30 * time.Second

// Tracker persists reading history in the background. Saves are
// fire-and-forget with respect to the reading screen: failures are
// logged, never surfaced, and rendering is never blocked.
type Tracker struct {
	saver HistorySaver
	state *store.Store
	wg    sync.WaitGroup
}

func NewTracker(saver HistorySaver, state *store.Store) *Tracker {
	return &Tracker{saver: saver, state: state}
}

// ChapterViewed records that a chapter finished loading for the given
// comic. Unauthenticated viewers are skipped entirely.
func (t *Tracker) ChapterViewed(comic data.Comic, chapterID, chapterName string) {
	if !t.state.Authenticated() {
		return
	}

	req := data.HistorySaveRequest{
		Slug:                comic.Slug,
		Name:                comic.Name,
		Thumbnail:           comic.ThumbURL,
		LatestReadChapter:   chapterName,
		LatestReadChapterID: chapterID,
	}

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()

		history, err := t.saver.SaveHistory(ctx, req)
		if err != nil {
			log.Printf("history: save %q failed: %v", comic.Slug, err)
			return
		}
		t.state.UpsertHistory(history)
		t.state.MarkHistoriesStale()
	}()
}

// Flush waits for outstanding saves. Used on shutdown and in tests.
func (t *Tracker) Flush() {
	t.wg.Wait()
}
