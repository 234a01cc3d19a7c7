package server

import (
	"net/http"

	"github.com/chirpnet/chirp/model"
	"github.com/chirpnet/chirp/server/middlewares"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateComment(c *gin.Context) {
	var req model.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, model.NewValidationError(err.Error()))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	userID := middlewares.UserID(c)
	tweet, err := s.authorizeTweet(c.Param("tweet_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	comment, err := s.store.CreateComment(userID, tweet.Id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "create comment success", "result": comment})
}

// ListComments pages through a tweet's top-level comments with one level of
// replies inlined.
func (s *Server) ListComments(c *gin.Context) {
	viewerID := middlewares.UserID(c)

	tweet, err := s.store.GetTweet(c.Param("tweet_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := s.composer.Policy().Authorize(tweet, viewerID); err != nil {
		respondError(c, err)
		return
	}

	p := bindPagination(c)
	if err := p.Validate(); err != nil {
		respondError(c, err)
		return
	}
	comments, total, err := s.store.ListComments(tweet.Id, p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "get comments success",
		"result": gin.H{
			"comments":   comments,
			"limit":      p.Limit,
			"page":       p.Page,
			"total_page": model.TotalPages(total, p.Limit),
		},
	})
}
