package server

import (
	"net/http"

	"github.com/chirpnet/chirp/media"
	"github.com/chirpnet/chirp/model"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// UploadMedia accepts one multipart file under the "media" field, stores it
// and returns the media descriptor to attach to a tweet.
func (s *Server) UploadMedia(c *gin.Context) {
	fileHeader, err := c.FormFile("media")
	if err != nil {
		respondError(c, model.NewValidationError("media file is required"))
		return
	}

	mediaType, ok := media.TypeFromFileName(fileHeader.Filename)
	if !ok {
		respondError(c, model.NewValidationError("file type is not supported"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, errors.Wrap(err, "fail to open uploaded file"))
		return
	}
	defer file.Close()

	key, err := s.fileStore.Store(file, fileHeader.Filename)
	if err != nil {
		respondError(c, errors.Wrap(err, "fail to store uploaded file"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "upload media success",
		"result": model.Media{
			Url:  s.fileStore.GetUrlFromKey(key),
			Type: mediaType,
		},
	})
}
