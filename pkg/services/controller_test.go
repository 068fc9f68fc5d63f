package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/config"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/data"
)

// newTestController backs a Controller with a fake API and a temp
// secrets database.
func newTestController(t *testing.T, handler http.Handler) *Controller {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	ctrl, err := NewController(config.Config{
		BaseURL: srv.URL,
		CDNURL:  "https://cdn.example/uploads/comics",
		DataDir: t.TempDir(),
		Timeout: time.Second,
	})
	if err != nil {
		t.Fatalf("NewController failed: %v", err)
	}
	t.Cleanup(func() { ctrl.Close() })
	return ctrl
}

func authMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "pw" {
			http.Error(w, "nope", http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"id":"u1","email":"a@b.c","user_name":"reader","access_token":"at","refresh_token":"rt"}`))
	})
	return mux
}

func TestControllerLoginPersistsSession(t *testing.T) {
	ctrl := newTestController(t, authMux())
	ctx := context.Background()

	if err := ctrl.Login(ctx, "a@b.c", "pw"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if !ctrl.State.Authenticated() {
		t.Error("State store should be authenticated")
	}
	sess := ctrl.State.Session()
	if sess.User == nil || sess.User.UserName != "reader" {
		t.Errorf("Unexpected user in state: %+v", sess.User)
	}

	// Secret store carries everything for the next app start.
	user, token, err := ctrl.Session.Load(ctx)
	if err != nil {
		t.Fatalf("Session load failed: %v", err)
	}
	if user == nil || user.UserName != "reader" {
		t.Errorf("Persisted user wrong: %+v", user)
	}
	if token.AccessToken != "at" || token.RefreshToken != "rt" {
		t.Errorf("Persisted tokens wrong: %+v", token)
	}
}

func TestControllerLoginFailureSetsInlineError(t *testing.T) {
	ctrl := newTestController(t, authMux())

	err := ctrl.Login(context.Background(), "a@b.c", "wrong")
	if err == nil {
		t.Fatal("Expected login error")
	}
	if ctrl.State.Session().Err != "Login failed" {
		t.Errorf("Expected inline error, got %q", ctrl.State.Session().Err)
	}
	if ctrl.State.Authenticated() {
		t.Error("Failed login must not authenticate")
	}
}

func TestControllerRestoreSession(t *testing.T) {
	ctrl := newTestController(t, http.NewServeMux())
	ctx := context.Background()

	ctrl.Session.Save(ctx, &data.User{ID: "u1", UserName: "reader"}, data.Token{AccessToken: "at", RefreshToken: "rt"})

	ctrl.RestoreSession(ctx)

	if !ctrl.State.Authenticated() {
		t.Error("RestoreSession should adopt stored credentials")
	}
}

func TestControllerRestoreSessionEmptyStore(t *testing.T) {
	ctrl := newTestController(t, http.NewServeMux())

	ctrl.RestoreSession(context.Background())

	if ctrl.State.Authenticated() {
		t.Error("Empty secret store must not authenticate")
	}
}

func TestControllerLogout(t *testing.T) {
	ctrl := newTestController(t, authMux())
	ctx := context.Background()

	ctrl.Login(ctx, "a@b.c", "pw")
	if err := ctrl.Logout(ctx); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	if ctrl.State.Authenticated() {
		t.Error("Logout should clear state")
	}
	_, token, _ := ctrl.Session.Load(ctx)
	if token.AccessToken != "" || token.RefreshToken != "" {
		t.Error("Logout should clear the secret store")
	}
}

func TestControllerOpenComic(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /comics/{slug}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"_id":"c1","name":"Naruto","slug":"naruto","chapters":[{"server_name":"S1","server_data":[{"chapter_name":"1","chapter_api_data":"https://cdn/chapter/aaa"}]}]}`))
	})
	ctrl := newTestController(t, mux)

	comic, err := ctrl.OpenComic(context.Background(), "naruto")
	if err != nil {
		t.Fatalf("OpenComic failed: %v", err)
	}
	if comic.Name != "Naruto" {
		t.Errorf("Unexpected comic: %+v", comic)
	}
	if ctrl.State.CurrentComic().ID != "c1" {
		t.Error("Current comic not set in state")
	}
	chapters := ctrl.State.ChapterList()
	if len(chapters) != 1 || chapters[0].ChapterID != "aaa" {
		t.Errorf("Chapter list not derived: %+v", chapters)
	}
}

func TestControllerLoadChapterSavesHistory(t *testing.T) {
	mux := authMux()
	mux.HandleFunc("GET /comics/chapter/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chapter_name":"12","comic_name":"Naruto","chapter_images":[{"image_page":1,"image_file":"p1.jpg"}]}`))
	})
	saved := make(chan data.HistorySaveRequest, 1)
	mux.HandleFunc("POST /history/save", func(w http.ResponseWriter, r *http.Request) {
		var req data.HistorySaveRequest
		json.NewDecoder(r.Body).Decode(&req)
		saved <- req
		json.NewEncoder(w).Encode(data.History{Slug: req.Slug, Name: req.Name, LatestReadChapterID: req.LatestReadChapterID})
	})
	ctrl := newTestController(t, mux)
	ctx := context.Background()

	ctrl.Login(ctx, "a@b.c", "pw")
	ctrl.State.SetCurrentComic(data.Comic{ID: "c1", Name: "Naruto", Slug: "naruto", ThumbURL: "naruto.jpg"})

	chapter, err := ctrl.LoadChapter(ctx, "ch-12")
	if err != nil {
		t.Fatalf("LoadChapter failed: %v", err)
	}
	if chapter.ChapterName != "12" {
		t.Errorf("Unexpected chapter: %+v", chapter)
	}
	if ctrl.State.CurrentChapterID() != "ch-12" {
		t.Error("Current chapter id not set")
	}

	ctrl.Tracker.Flush()
	select {
	case req := <-saved:
		if req.Slug != "naruto" || req.LatestReadChapterID != "ch-12" {
			t.Errorf("Unexpected history request: %+v", req)
		}
	default:
		t.Fatal("History save never reached the backend")
	}
}

func TestControllerLoadChapterUnauthenticatedSkipsHistory(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /comics/chapter/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chapter_name":"12","comic_name":"Naruto","chapter_images":[]}`))
	})
	historyCalled := false
	mux.HandleFunc("POST /history/save", func(w http.ResponseWriter, r *http.Request) {
		historyCalled = true
	})
	ctrl := newTestController(t, mux)

	_, err := ctrl.LoadChapter(context.Background(), "ch-12")
	if err != nil {
		t.Fatalf("LoadChapter failed: %v", err)
	}
	ctrl.Tracker.Flush()
	if historyCalled {
		t.Error("Unauthenticated read must not persist history")
	}
}

func TestControllerThumbnailURL(t *testing.T) {
	ctrl := newTestController(t, http.NewServeMux())

	if got := ctrl.ThumbnailURL("naruto.jpg"); got != "https://cdn.example/uploads/comics/naruto.jpg" {
		t.Errorf("Unexpected CDN join: %s", got)
	}
	if got := ctrl.ThumbnailURL("https://elsewhere/x.jpg"); got != "https://elsewhere/x.jpg" {
		t.Errorf("Absolute URL must pass through: %s", got)
	}
	if got := ctrl.ThumbnailURL(""); got != "" {
		t.Errorf("Empty thumb must stay empty: %s", got)
	}
}

func TestControllerLoadCategoriesOnce(t *testing.T) {
	fetches := 0
	mux := http.NewServeMux()
	mux.HandleFunc("GET /comics/categories", func(w http.ResponseWriter, r *http.Request) {
		fetches++
		w.Write([]byte(`[{"id":"1","name":"Action","slug":"action"}]`))
	})
	ctrl := newTestController(t, mux)
	ctx := context.Background()

	ctrl.LoadCategories(ctx)
	ctrl.LoadCategories(ctx)

	if fetches != 1 {
		t.Errorf("Categories should be fetched once, got %d", fetches)
	}
	if len(ctrl.State.Categories()) != 1 {
		t.Errorf("Categories not stored: %+v", ctrl.State.Categories())
	}
}
