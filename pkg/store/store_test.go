package store

import (
	"testing"

	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/data"
)

func TestSessionLifecycle(t *testing.T) {
	s := New()

	if s.Authenticated() {
		t.Error("Fresh store should not be authenticated")
	}

	s.SetSession(&data.User{ID: "u1", UserName: "reader"}, data.Token{AccessToken: "at", RefreshToken: "rt"})

	if !s.Authenticated() {
		t.Error("Expected authenticated after SetSession")
	}
	sess := s.Session()
	if sess.User == nil || sess.User.UserName != "reader" {
		t.Errorf("Unexpected user: %+v", sess.User)
	}
	if sess.AccessToken != "at" || sess.RefreshToken != "rt" {
		t.Errorf("Unexpected tokens: %+v", sess)
	}

	s.Logout()
	sess = s.Session()
	if sess.User != nil || sess.AccessToken != "" || sess.RefreshToken != "" {
		t.Errorf("Logout should clear everything, got %+v", sess)
	}
}

func TestSetSessionClearsAuthError(t *testing.T) {
	s := New()
	s.SetAuthError("Login failed")

	if s.Session().Err != "Login failed" {
		t.Error("Auth error not recorded")
	}

	s.SetSession(&data.User{ID: "u1"}, data.Token{AccessToken: "at"})
	if s.Session().Err != "" {
		t.Error("Successful login should clear the auth error")
	}
}

func TestSetChaptersDerivesIDs(t *testing.T) {
	s := New()

	s.SetChapters([]data.ChapterGroup{
		{
			ServerName: "Server #1",
			ServerData: []data.ChapterData{
				{ChapterName: "1", ChapterAPIData: "https://cdn/chapter/aaa"},
				{ChapterName: "2", ChapterAPIData: "https://cdn/chapter/bbb"},
			},
		},
		{
			ServerName: "Server #2",
			ServerData: []data.ChapterData{
				{ChapterName: "1", ChapterAPIData: "https://mirror/chapter/zzz"},
			},
		},
	})

	list := s.ChapterList()
	if len(list) != 2 {
		t.Fatalf("Expected first server group only (2 chapters), got %d", len(list))
	}
	if list[0].ChapterID != "aaa" || list[1].ChapterID != "bbb" {
		t.Errorf("Unexpected ids: %q, %q", list[0].ChapterID, list[1].ChapterID)
	}
}

func TestSetChaptersEmpty(t *testing.T) {
	s := New()
	s.SetChapters(nil)
	if got := s.ChapterList(); len(got) != 0 {
		t.Errorf("Expected empty chapter list, got %v", got)
	}
}

func TestUpsertHistory(t *testing.T) {
	s := New()

	s.UpsertHistory(data.History{Slug: "naruto", Name: "Naruto", LatestReadChapterID: "a"})
	s.UpsertHistory(data.History{Slug: "bleach", Name: "Bleach", LatestReadChapterID: "x"})

	if len(s.Histories()) != 2 {
		t.Fatalf("Expected 2 histories, got %d", len(s.Histories()))
	}

	// Same slug updates in place, no duplicate.
	s.UpsertHistory(data.History{Slug: "naruto", Name: "Naruto", LatestReadChapterID: "b", ReadChapterIDs: []string{"a", "b"}})

	histories := s.Histories()
	if len(histories) != 2 {
		t.Fatalf("Upsert duplicated a slug: %d records", len(histories))
	}
	if histories[0].Slug != "naruto" || histories[0].LatestReadChapterID != "b" {
		t.Errorf("Upsert did not update in place: %+v", histories[0])
	}
}

func TestRemoveHistory(t *testing.T) {
	s := New()
	s.SetHistories([]data.History{
		{ID: 1, Slug: "a"},
		{ID: 2, Slug: "b"},
	})

	s.RemoveHistory(1)

	histories := s.Histories()
	if len(histories) != 1 || histories[0].ID != 2 {
		t.Errorf("Unexpected histories after remove: %+v", histories)
	}
}

func TestHistoriesStaleFlag(t *testing.T) {
	s := New()

	s.MarkHistoriesStale()
	if !s.HistoriesStale() {
		t.Error("Expected stale flag set")
	}

	s.SetHistories(nil)
	if s.HistoriesStale() {
		t.Error("SetHistories should clear the stale flag")
	}
}

func TestLogoutDropsHistories(t *testing.T) {
	s := New()
	s.SetSession(&data.User{ID: "u1"}, data.Token{AccessToken: "at"})
	s.SetHistories([]data.History{{ID: 1, Slug: "a"}})

	s.Logout()

	if len(s.Histories()) != 0 {
		t.Error("Logout should drop the history collection")
	}
}

func TestCategorySelection(t *testing.T) {
	s := New()

	if s.Category() != nil {
		t.Error("Fresh store should have no current category")
	}

	s.SetCategories([]data.Category{{Name: "Action", Slug: "action"}})
	s.SetCategory(data.Category{Name: "Action", Slug: "action"})

	if got := s.Category(); got == nil || got.Slug != "action" {
		t.Errorf("Unexpected current category: %+v", got)
	}
	if len(s.Categories()) != 1 {
		t.Errorf("Unexpected categories: %+v", s.Categories())
	}
}
