package validation

import (
	"strings"
	"unicode"
)

// IsBlank reports whether s is empty or only whitespace.
// This is the only input check the UI makes before calling the backend.
func IsBlank(s string) bool {
	return strings.TrimFunc(s, unicode.IsSpace) == ""
}

// NormalizeChatQuery lower-cases and trims a chat message before it is sent as an area query.
func NormalizeChatQuery(query string) string {
	return strings.TrimSpace(strings.ToLower(query))
}

// DownloadFilename derives the CSV filename from the typed area. The area is used as-is.
func DownloadFilename(area string) string {
	return "filtered_" + area + ".csv"
}

// UploadNotice is the transcript line recorded when the user uploads a file.
func UploadNotice(filename string) string {
	return "📄 Uploaded: " + filename
}
