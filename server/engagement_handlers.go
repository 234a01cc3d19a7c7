package server

import (
	"net/http"

	"github.com/chirpnet/chirp/model"
	"github.com/chirpnet/chirp/server/middlewares"
	"github.com/gin-gonic/gin"
)

// authorizeTweet loads a tweet and runs the terminal audience gate for the
// viewer. Engagement writes go through it so nobody can like or bookmark a
// Circle tweet they cannot read.
func (s *Server) authorizeTweet(tweetID string, viewerID string) (*model.Tweet, error) {
	tweet, err := s.store.GetTweet(tweetID)
	if err != nil {
		return nil, err
	}
	if err := s.composer.Policy().Authorize(tweet, viewerID); err != nil {
		return nil, err
	}
	return tweet, nil
}

func (s *Server) Like(c *gin.Context) {
	var req struct {
		TweetID string `json:"tweet_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, model.NewValidationError(err.Error()))
		return
	}

	userID := middlewares.UserID(c)
	if _, err := s.authorizeTweet(req.TweetID, userID); err != nil {
		respondError(c, err)
		return
	}
	like, err := s.store.LikeTweet(userID, req.TweetID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "like tweet success", "result": like})
}

func (s *Server) Unlike(c *gin.Context) {
	if err := s.store.UnlikeTweet(middlewares.UserID(c), c.Param("tweet_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "unlike tweet success"})
}

func (s *Server) Bookmark(c *gin.Context) {
	var req struct {
		TweetID string `json:"tweet_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, model.NewValidationError(err.Error()))
		return
	}

	userID := middlewares.UserID(c)
	if _, err := s.authorizeTweet(req.TweetID, userID); err != nil {
		respondError(c, err)
		return
	}
	bookmark, err := s.store.BookmarkTweet(userID, req.TweetID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "bookmark tweet success", "result": bookmark})
}

func (s *Server) Unbookmark(c *gin.Context) {
	if err := s.store.UnbookmarkTweet(middlewares.UserID(c), c.Param("tweet_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "unbookmark tweet success"})
}

// ListBookmarks returns the viewer's bookmarked tweets, decorated.
// Bookmarks whose tweet has since gone out of visibility are omitted.
func (s *Server) ListBookmarks(c *gin.Context) {
	userID := middlewares.UserID(c)

	tweets, err := s.store.BookmarkedTweets(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	views, err := s.composer.Visible(tweets, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "get bookmarks success", "result": views})
}
