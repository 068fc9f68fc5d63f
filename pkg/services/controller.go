package services

import (
	"context"
	"log"
	"strings"

	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/api"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/auth"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/config"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/data"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/integrations"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/secrets"
	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/store"
)

// Controller wires the client together: transport, request pipeline,
// secret store, state store and history tracker. Screens and CLI
// commands receive one Controller and nothing else.
type Controller struct {
	Client  *api.Client
	State   *store.Store
	Session *secrets.Session
	Tracker *Tracker

	cfg       config.Config
	transport *api.Transport
	secretsDB *secrets.DB
}

func NewController(cfg config.Config) (*Controller, error) {
	db, err := secrets.Open(cfg.SecretsPath())
	if err != nil {
		return nil, err
	}

	session := secrets.NewSession(db)
	transport := api.NewTransport(cfg.BaseURL, cfg.Timeout)
	refresher := auth.NewRefresher(transport, session)
	client := api.NewClient(transport, session, refresher)
	state := store.New()

	return &Controller{
		Client:    client,
		State:     state,
		Session:   session,
		Tracker:   NewTracker(client, state),
		cfg:       cfg,
		transport: transport,
		secretsDB: db,
	}, nil
}

func (c *Controller) Close() error {
	c.Tracker.Flush()
	return c.secretsDB.Close()
}

func (c *Controller) Config() config.Config {
	return c.cfg
}

// RestoreSession loads stored credentials into the state store at app
// start. A missing session is not an error.
func (c *Controller) RestoreSession(ctx context.Context) {
	user, token, err := c.Session.Load(ctx)
	if err != nil {
		log.Printf("session restore failed: %v", err)
		return
	}
	if token.AccessToken == "" {
		return
	}
	c.State.SetSession(user, token)
}

// Login authenticates, persists the session and updates the state
// store. On failure the state store carries a user-visible message and
// the error comes back for the caller.
func (c *Controller) Login(ctx context.Context, email, password string) error {
	resp, err := c.Client.Login(ctx, email, password)
	if err != nil {
		c.State.SetAuthError("Login failed")
		return err
	}
	return c.adoptSession(ctx, resp)
}

// Register creates an account and logs the viewer straight in.
func (c *Controller) Register(ctx context.Context, req data.SignupRequest) error {
	resp, err := c.Client.Register(ctx, req)
	if err != nil {
		c.State.SetAuthError("Registration failed")
		return err
	}
	return c.adoptSession(ctx, resp)
}

func (c *Controller) adoptSession(ctx context.Context, resp data.AuthResponse) error {
	user := resp.User
	if err := c.Session.Save(ctx, &user, resp.Token); err != nil {
		// The session still works for this run; persistence failed.
		log.Printf("session persist failed: %v", err)
	}
	c.State.SetSession(&user, resp.Token)
	return nil
}

// Logout wipes the stored and in-memory session.
func (c *Controller) Logout(ctx context.Context) error {
	err := c.Session.Clear(ctx)
	c.State.Logout()
	return err
}

// LoadCategories fetches the category list once per session. Failures
// are logged only; the UI renders without the category filter.
func (c *Controller) LoadCategories(ctx context.Context) {
	if len(c.State.Categories()) > 0 {
		return
	}
	cats, err := c.Client.GetCategories(ctx)
	if err != nil {
		log.Printf("categories fetch failed: %v", err)
		return
	}
	c.State.SetCategories(cats)
}

// OpenComic fetches the full detail and makes it the current comic,
// replacing the chapter list with the comic's first server group.
func (c *Controller) OpenComic(ctx context.Context, slug string) (data.Comic, error) {
	comic, err := c.Client.GetComicBySlug(ctx, slug)
	if err != nil {
		return data.Comic{}, err
	}
	c.State.SetCurrentComic(comic)
	c.State.SetChapters(comic.Chapters)
	return comic, nil
}

// LoadChapter resolves one chapter and, once its content is loaded,
// records the read in the background.
func (c *Controller) LoadChapter(ctx context.Context, chapterID string) (data.ChapterResponse, error) {
	c.State.SetCurrentChapterID(chapterID)
	chapter, err := c.Client.GetChapterByID(ctx, chapterID)
	if err != nil {
		return data.ChapterResponse{}, err
	}
	c.Tracker.ChapterViewed(c.State.CurrentComic(), chapterID, chapter.ChapterName)
	return chapter, nil
}

// ThumbnailURL resolves a possibly relative thumbnail path against the
// image CDN.
func (c *Controller) ThumbnailURL(thumb string) string {
	if thumb == "" || strings.HasPrefix(thumb, "http://") || strings.HasPrefix(thumb, "https://") {
		return thumb
	}
	return strings.TrimRight(c.cfg.CDNURL, "/") + "/" + thumb
}

// ExportChapter fetches a chapter and compiles it into an EPUB under
// the export directory, returning the file path. Exports do not count
// as reads, so no history is recorded.
func (c *Controller) ExportChapter(ctx context.Context, comic data.Comic, chapterID string) (string, error) {
	chapter, err := c.Client.GetChapterByID(ctx, chapterID)
	if err != nil {
		return "", err
	}
	exporter := integrations.NewExporter(c.cfg.ExportDir())
	return exporter.ExportChapter(ctx, comic, chapter, c.ThumbnailURL)
}
