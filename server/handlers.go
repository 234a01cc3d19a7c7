package server

import (
	"net/http"

	"github.com/chirpnet/chirp/model"
	Logger "github.com/chirpnet/chirp/utils/log"
	"github.com/gin-gonic/gin"
)

// respondError maps an error to its client-facing status. Dependency
// failures are logged and collapsed to an opaque 500.
func respondError(c *gin.Context, err error) {
	status := model.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		Logger.Log.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(status, gin.H{"message": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"message": err.Error()})
}

// bindPagination reads page/limit query params with the documented
// defaults. Out-of-range values are rejected downstream by Validate.
func bindPagination(c *gin.Context) model.Pagination {
	p := model.Pagination{Page: 1, Limit: 10}
	if err := c.ShouldBindQuery(&p); err != nil {
		// Non-numeric input, let Validate reject it.
		return model.Pagination{Page: -1, Limit: -1}
	}
	return p
}

// bindMediaType reads the optional media_type query param. Nil means no
// media filtering.
func bindMediaType(c *gin.Context) (*model.MediaType, error) {
	switch c.Query("media_type") {
	case "":
		return nil, nil
	case "image":
		t := model.MediaTypeImage
		return &t, nil
	case "video":
		t := model.MediaTypeVideo
		return &t, nil
	default:
		return nil, model.NewValidationError("media_type must be image or video")
	}
}
