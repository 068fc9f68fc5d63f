package data

import "strings"

// ChapterID extracts the final path segment of a chapter's API-data URL.
// The segment is the chapter's stable identifier, used for navigation,
// mark-as-read and history linkage. Returns "" when the URL has no path
// segment; never errors.
func ChapterID(apiDataURL string) string {
	idx := strings.LastIndex(apiDataURL, "/")
	if idx < 0 {
		return ""
	}
	return apiDataURL[idx+1:]
}

// ResolveChapterIDs stamps every entry of a server group with its
// derived identifier. The input order is preserved.
func ResolveChapterIDs(group ChapterGroup) []ChapterData {
	out := make([]ChapterData, len(group.ServerData))
	for i, c := range group.ServerData {
		c.ChapterID = ChapterID(c.ChapterAPIData)
		out[i] = c
	}
	return out
}
