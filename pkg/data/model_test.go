package data

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserDisplayName(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{"full name", User{FirstName: "Loc", LastName: "Nguyen", UserName: "loc"}, "Loc Nguyen"},
		{"username fallback", User{UserName: "loc", Email: "loc@x.y"}, "loc"},
		{"email fallback", User{Email: "loc@x.y"}, "loc@x.y"},
		{"first name alone is not enough", User{FirstName: "Loc", UserName: "loc"}, "loc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.DisplayName())
		})
	}
}

func TestComicLatestChapterName(t *testing.T) {
	assert.Equal(t, "", Comic{}.LatestChapterName())

	c := Comic{ChaptersLatest: []ChapterData{{ChapterName: "120"}, {ChapterName: "119"}}}
	assert.Equal(t, "120", c.LatestChapterName())
}

func TestAuthResponseFlattens(t *testing.T) {
	// Login and signup return the profile and the token pair in one
	// flat object.
	payload := `{"id":"u1","email":"a@b.c","user_name":"reader","access_token":"at","refresh_token":"rt"}`

	var resp AuthResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &resp))

	assert.Equal(t, "u1", resp.User.ID)
	assert.Equal(t, "reader", resp.User.UserName)
	assert.Equal(t, "at", resp.Token.AccessToken)
	assert.Equal(t, "rt", resp.Token.RefreshToken)
}

func TestComicOptionalFieldsStayZero(t *testing.T) {
	payload := `{"_id":"c1","name":"Naruto","slug":"naruto"}`

	var comic Comic
	require.NoError(t, json.Unmarshal([]byte(payload), &comic))

	assert.Empty(t, comic.ChaptersLatest)
	assert.Empty(t, comic.Category)
	assert.Empty(t, comic.Chapters)
}
