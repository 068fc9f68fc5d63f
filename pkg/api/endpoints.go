package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/locnguyenhuu0024/truyen-chibi-app/pkg/data"
)

// listEnvelope wraps the listing payloads of /comics?type= and
// /comics/home.
type listEnvelope struct {
	Data struct {
		Items []data.Comic `json:"items"`
	} `json:"data"`
}

// GetComicsByType fetches one page of a listing context keyed by comic
// type ("new", "ongoing", ...).
func (c *Client) GetComicsByType(ctx context.Context, comicType string, page int) ([]data.Comic, error) {
	var env listEnvelope
	route := fmt.Sprintf("/comics?type=%s&page=%d", url.QueryEscape(comicType), page)
	if err := c.Get(ctx, route, &env); err != nil {
		return nil, err
	}
	return env.Data.Items, nil
}

// GetHome fetches the curated home feed.
func (c *Client) GetHome(ctx context.Context) ([]data.Comic, error) {
	var env listEnvelope
	if err := c.Get(ctx, "/comics/home", &env); err != nil {
		return nil, err
	}
	return env.Data.Items, nil
}

// GetCategories fetches the category list. Fetched once per session,
// read-only thereafter.
func (c *Client) GetCategories(ctx context.Context) ([]data.Category, error) {
	var cats []data.Category
	if err := c.Get(ctx, "/comics/categories", &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// SearchComics fetches comics matching the keyword.
func (c *Client) SearchComics(ctx context.Context, keyword string) ([]data.Comic, error) {
	var comics []data.Comic
	route := fmt.Sprintf("/comics/search?keyword=%s", url.QueryEscape(keyword))
	if err := c.Get(ctx, route, &comics); err != nil {
		return nil, err
	}
	return comics, nil
}

// GetComicsByCategory fetches one page of a category listing context.
func (c *Client) GetComicsByCategory(ctx context.Context, slug string, page int) ([]data.Comic, error) {
	var comics []data.Comic
	route := fmt.Sprintf("/comics/categories/%s?page=%d", url.PathEscape(slug), page)
	if err := c.Get(ctx, route, &comics); err != nil {
		return nil, err
	}
	return comics, nil
}

// GetComicBySlug fetches the full comic detail including chapter
// server groups.
func (c *Client) GetComicBySlug(ctx context.Context, slug string) (data.Comic, error) {
	var comic data.Comic
	if err := c.Get(ctx, "/comics/"+url.PathEscape(slug), &comic); err != nil {
		return data.Comic{}, err
	}
	return comic, nil
}

// GetChapterByID resolves one chapter: page images plus names.
func (c *Client) GetChapterByID(ctx context.Context, chapterID string) (data.ChapterResponse, error) {
	var chapter data.ChapterResponse
	if err := c.Get(ctx, "/comics/chapter/"+url.PathEscape(chapterID), &chapter); err != nil {
		return data.ChapterResponse{}, err
	}
	return chapter, nil
}

// GetHistories fetches one page of the viewer's reading history.
func (c *Client) GetHistories(ctx context.Context, page int) (data.HistoriesResponse, error) {
	var histories data.HistoriesResponse
	if err := c.Get(ctx, fmt.Sprintf("/history?page=%d", page), &histories); err != nil {
		return data.HistoriesResponse{}, err
	}
	return histories, nil
}

// SaveHistory upserts a reading record for the current viewer.
func (c *Client) SaveHistory(ctx context.Context, req data.HistorySaveRequest) (data.History, error) {
	var history data.History
	if err := c.Post(ctx, "/history/save", req, &history); err != nil {
		return data.History{}, err
	}
	return history, nil
}

// Register creates an account and returns the profile with a token pair.
func (c *Client) Register(ctx context.Context, req data.SignupRequest) (data.AuthResponse, error) {
	var resp data.AuthResponse
	if err := c.Post(ctx, "/auth/signup", req, &resp); err != nil {
		return data.AuthResponse{}, err
	}
	return resp, nil
}

// Login authenticates by email and password.
func (c *Client) Login(ctx context.Context, email, password string) (data.AuthResponse, error) {
	var resp data.AuthResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.Post(ctx, "/auth/login", body, &resp); err != nil {
		return data.AuthResponse{}, err
	}
	return resp, nil
}
