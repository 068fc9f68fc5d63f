package services

import (
	"sync"

	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/data"
)

// Paginator drives page-by-page fetches for one listing context (a
// comic type, a category slug or a search term) and merges results
// into an ordered, deduplicated collection.
//
// One fetch may be outstanding at a time; Begin refuses a second.
// Every fetch carries the epoch it was started under, and a merge from
// an older epoch is dropped, so a context switch can never be
// overwritten by a stale response.
type Paginator struct {
	mu      sync.Mutex
	key     string
	epoch   int
	page    int
	loading bool
	hasMore bool
	comics  []data.Comic
	seen    map[string]struct{}
}

func NewPaginator() *Paginator {
	return &Paginator{
		page:    1,
		hasMore: true,
		seen:    map[string]struct{}{},
	}
}

// Reset switches to a new listing context, discarding all prior state.
func (p *Paginator) Reset(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.key = key
	p.epoch++
	p.page = 1
	p.loading = false
	p.hasMore = true
	p.comics = nil
	p.seen = map[string]struct{}{}
}

// Begin claims the in-flight slot for the next page fetch and returns
// the page number plus the epoch stamp to hand back to Apply or Fail.
// ok is false when a fetch is already outstanding or no more data is
// believed available; the caller's trigger is then a no-op.
func (p *Paginator) Begin() (page, epoch int, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.loading || !p.hasMore {
		return 0, 0, false
	}
	p.loading = true
	return p.page, p.epoch, true
}

// Apply merges one fetched page. Page 1 replaces the collection
// wholesale; later pages append only entries whose id is not already
// present, preserving arrival order. hasMoreData becomes true iff the
// page was non-empty. A stale epoch stamp makes the merge a no-op.
func (p *Paginator) Apply(epoch, page int, items []data.Comic) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if epoch != p.epoch {
		return false
	}
	p.loading = false

	if page == 1 {
		p.comics = nil
		p.seen = map[string]struct{}{}
	}
	for _, c := range items {
		if _, dup := p.seen[c.ID]; dup {
			continue
		}
		p.seen[c.ID] = struct{}{}
		p.comics = append(p.comics, c)
	}

	p.hasMore = len(items) > 0
	p.page = page + 1
	return true
}

// Fail releases the in-flight slot after a fetch error. The collection
// and hasMoreData are untouched; listing failures read as "stopped
// loading", not as an error state.
func (p *Paginator) Fail(epoch int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if epoch != p.epoch {
		return
	}
	p.loading = false
}

// Comics returns the merged collection. The slice is a copy; callers
// may keep it across updates.
func (p *Paginator) Comics() []data.Comic {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]data.Comic, len(p.comics))
	copy(out, p.comics)
	return out
}

func (p *Paginator) Key() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.key
}

func (p *Paginator) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// HasMore reports whether the most recently fetched page was
// non-empty. An empty page is the sole end-of-data signal.
func (p *Paginator) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasMore
}

// Len reports the current collection size without copying.
func (p *Paginator) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.comics)
}
