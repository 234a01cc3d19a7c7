// Package media stores uploaded tweet attachments and resolves them to
// public URLs.
package media

import (
	"io"
	"path"
	"strings"

	"github.com/chirpnet/chirp/model"
)

// Shared Func type for file stores
type CustomizeUploadedUrlType func(string) string

// FileStore persists an uploaded file under a generated key and maps keys
// back to serving URLs.
type FileStore interface {
	Store(body io.Reader, fileName string) (key string, err error)
	GetUrlFromKey(key string) string
	CleanUp()
}

var imageExts = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
var videoExts = []string{".mp4", ".mov", ".webm", ".m3u8"}

// TypeFromFileName maps a file extension to a media type. The second return
// is false for extensions that are neither image nor video.
func TypeFromFileName(fileName string) (model.MediaType, bool) {
	ext := strings.ToLower(path.Ext(fileName))
	for _, e := range imageExts {
		if ext == e {
			return model.MediaTypeImage, true
		}
	}
	for _, e := range videoExts {
		if ext == e {
			return model.MediaTypeVideo, true
		}
	}
	return model.MediaTypeImage, false
}
