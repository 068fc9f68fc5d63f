package data

// User is the authenticated account profile as the API returns it.
// Opaque to the client: no field is validated, absent optionals stay zero.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	UserName    string `json:"user_name"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Birth       string `json:"birth,omitempty"`
	Gender      string `json:"gender,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// DisplayName prefers the full name, falling back to the username.
func (u User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.UserName != "":
		return u.UserName
	default:
		return u.Email
	}
}

// Token is an access/refresh pair. Both are opaque strings.
type Token struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// SignupRequest is the body of POST /auth/signup.
type SignupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	UserName    string `json:"user_name"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Birth       string `json:"birth,omitempty"`
	Gender      string `json:"gender,omitempty"`
}

// AuthResponse is what login and signup return: the profile flattened
// together with a fresh token pair.
type AuthResponse struct {
	User
	Token
}

type Category struct {
	ID      string `json:"id"`
	MongoID string `json:"_id"`
	Name    string `json:"name"`
	Slug    string `json:"slug"`
}

// ChapterData is one chapter entry inside a server group. ChapterID is
// derived from ChapterAPIData on arrival, never sent by the API.
type ChapterData struct {
	Filename       string `json:"filename"`
	ChapterName    string `json:"chapter_name"`
	ChapterTitle   string `json:"chapter_title"`
	ChapterAPIData string `json:"chapter_api_data"`
	ChapterID      string `json:"chapter_id,omitempty"`
}

// ChapterGroup is one "server" holding an ordered chapter list.
type ChapterGroup struct {
	ServerName string        `json:"server_name"`
	ServerData []ChapterData `json:"server_data"`
}

type Comic struct {
	ID             string         `json:"_id"`
	Name           string         `json:"name"`
	Slug           string         `json:"slug"`
	OriginName     []string       `json:"origin_name"`
	Content        string         `json:"content"`
	Status         string         `json:"status"`
	ThumbURL       string         `json:"thumb_url"`
	SubDocquyen    bool           `json:"sub_docquyen"`
	Author         []string       `json:"author"`
	Category       []Category     `json:"category"`
	Chapters       []ChapterGroup `json:"chapters"`
	ChaptersLatest []ChapterData  `json:"chaptersLatest,omitempty"`
	UpdatedAt      string         `json:"updatedAt"`
}

// LatestChapterName returns the newest chapter name the listing payload
// carries, or "" when the API omitted chaptersLatest.
func (c Comic) LatestChapterName() string {
	if len(c.ChaptersLatest) == 0 {
		return ""
	}
	return c.ChaptersLatest[0].ChapterName
}

// ChapterImage is one resolved page of a chapter.
type ChapterImage struct {
	ImagePage int    `json:"image_page"`
	ImageFile string `json:"image_file"`
}

// ChapterResponse is the resolved chapter detail.
type ChapterResponse struct {
	ChapterImages []ChapterImage `json:"chapter_images"`
	ChapterName   string         `json:"chapter_name"`
	ComicName     string         `json:"comic_name"`
}

// History is one per-(user, comic) reading record. Slug is the
// uniqueness key within a user's collection.
type History struct {
	ID                  int64    `json:"id,omitempty"`
	UserID              int64    `json:"user_id,omitempty"`
	Slug                string   `json:"slug"`
	Name                string   `json:"name"`
	Thumbnail           string   `json:"thumbnail,omitempty"`
	ReadChapterIDs      []string `json:"read_chapter_ids"`
	LatestReadChapter   string   `json:"latest_read_chapter,omitempty"`
	LatestReadChapterID string   `json:"latest_read_chapter_id,omitempty"`
}

// HistorySaveRequest is the body of POST /history/save.
type HistorySaveRequest struct {
	UserID              int64  `json:"user_id,omitempty"`
	Slug                string `json:"slug"`
	Name                string `json:"name"`
	Thumbnail           string `json:"thumbnail,omitempty"`
	LatestReadChapter   string `json:"latest_read_chapter,omitempty"`
	LatestReadChapterID string `json:"latest_read_chapter_id"`
}

// HistoriesResponse is the paged history payload.
type HistoriesResponse struct {
	Rows  []History `json:"rows"`
	Count int       `json:"count"`
}

// Listing types understood by GET /comics?type=.
const (
	TypeNew       = "new"
	TypeComing    = "coming-soon"
	TypeOngoing   = "ongoing"
	TypeCompleted = "completed"
)

// ListingTypes enumerates the browse tabs in display order.
var ListingTypes = []string{TypeNew, TypeComing, TypeOngoing, TypeCompleted}
