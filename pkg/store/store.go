// Package store holds the app-lifetime client state: session,
// categories, chapter list, current comic and reading history. It is
// an explicitly owned, injectable container; every mutation goes
// through a named action and applies atomically.
package store

import (
	"sync"

	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/data"
)

// SessionState is the in-memory identity plus token pair.
type SessionState struct {
	User         *data.User
	AccessToken  string
	RefreshToken string
	Err          string
}

// Store owns all shared client state. Screens hold no copies, only
// values read through selectors.
type Store struct {
	mu sync.RWMutex

	session SessionState

	categories      []data.Category
	currentCategory *data.Category

	chapters         []data.ChapterData
	currentChapterID string

	currentComic data.Comic
	homeComics   []data.Comic

	histories      []data.History
	historiesStale bool
}

func New() *Store {
	return &Store{}
}

// --- session actions ---

// SetSession replaces the session after login, register or app-start
// restore, clearing any previous auth error.
func (s *Store) SetSession(user *data.User, token data.Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = SessionState{
		User:         user,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}
}

// SetAuthError records a user-visible auth failure message.
func (s *Store) SetAuthError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Err = msg
}

// Logout clears the in-memory session.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = SessionState{}
	s.histories = nil
	s.historiesStale = false
}

func (s *Store) Session() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Authenticated reports whether a viewer session is present.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.AccessToken != ""
}

// --- category actions ---

// SetCategories stores the category list, fetched once per session.
func (s *Store) SetCategories(items []data.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = items
}

// SetCategory selects the current category.
func (s *Store) SetCategory(c data.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentCategory = &c
}

func (s *Store) Categories() []data.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categories
}

func (s *Store) Category() *data.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentCategory
}

// --- chapter actions ---

// SetChapters replaces the chapter list with the first server group of
// the comic, stamping each entry with its derived identifier.
func (s *Store) SetChapters(groups []data.ChapterGroup) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(groups) == 0 {
		s.chapters = nil
		return
	}
	s.chapters = data.ResolveChapterIDs(groups[0])
}

// SetCurrentChapterID selects the chapter being read.
func (s *Store) SetCurrentChapterID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentChapterID = id
}

func (s *Store) ChapterList() []data.ChapterData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chapters
}

func (s *Store) CurrentChapterID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentChapterID
}

// --- comic actions ---

func (s *Store) SetCurrentComic(c data.Comic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentComic = c
}

func (s *Store) CurrentComic() data.Comic {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentComic
}

func (s *Store) SetHomeComics(items []data.Comic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.homeComics = items
}

func (s *Store) HomeComics() []data.Comic {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.homeComics
}

// --- history actions ---

// SetHistories replaces the whole history collection.
func (s *Store) SetHistories(items []data.History) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.histories = items
	s.historiesStale = false
}

// UpsertHistory updates the record with the same slug, or appends a
// new one. Slug is the uniqueness key.
func (s *Store) UpsertHistory(h data.History) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.histories {
		if s.histories[i].Slug == h.Slug {
			s.histories[i] = h
			return
		}
	}
	s.histories = append(s.histories, h)
}

// RemoveHistory drops the record with the given id.
func (s *Store) RemoveHistory(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.histories[:0]
	for _, h := range s.histories {
		if h.ID != id {
			kept = append(kept, h)
		}
	}
	s.histories = kept
}

// MarkHistoriesStale flags that the history screen should refetch.
func (s *Store) MarkHistoriesStale() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.historiesStale = true
}

func (s *Store) Histories() []data.History {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.histories
}

func (s *Store) HistoriesStale() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.historiesStale
}
