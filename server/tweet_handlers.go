package server

import (
	"net/http"
	"strconv"

	"github.com/chirpnet/chirp/feed"
	"github.com/chirpnet/chirp/model"
	"github.com/chirpnet/chirp/server/middlewares"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateTweet(c *gin.Context) {
	var req model.CreateTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, model.NewValidationError(err.Error()))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	tweet, err := s.store.CreateTweet(middlewares.UserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "create tweet success", "result": tweet})
}

// GetTweet is the single-tweet read: terminal audience gate, then the
// decorated view with this read already counted.
func (s *Server) GetTweet(c *gin.Context) {
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

	view, err := s.composer.One(tweet, viewerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "get tweet success", "result": view})
}

func (s *Server) DeleteTweet(c *gin.Context) {
	if err := s.store.DeleteTweet(middlewares.UserID(c), c.Param("tweet_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "delete tweet success"})
}

// TweetChildren lists one page of a tweet's children of the requested type.
// The parent's audience gates the whole thread.
func (s *Server) TweetChildren(c *gin.Context) {
	viewerID := middlewares.UserID(c)

	parent, err := s.store.GetTweet(c.Param("tweet_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := s.composer.Policy().Authorize(parent, viewerID); err != nil {
		respondError(c, err)
		return
	}

	rawType, err := strconv.Atoi(c.Query("tweet_type"))
	childType := model.TweetType(rawType)
	if err != nil || !childType.IsValid() || !childType.RequiresParent() {
		respondError(c, model.NewValidationError("tweet_type must be retweet, comment or quote tweet"))
		return
	}

	page, err := s.composer.Compose(feed.ThreadScope{
		ParentID:  parent.Id,
		ChildType: childType,
	}, viewerID, bindPagination(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "get tweet children success", "result": page})
}

// HomeFeed serves tweets from the viewer and everyone they follow,
// optionally narrowed to tweets carrying a given media type.
func (s *Server) HomeFeed(c *gin.Context) {
	viewerID := middlewares.UserID(c)

	mediaType, err := bindMediaType(c)
	if err != nil {
		respondError(c, err)
		return
	}
	followedIDs, err := s.store.FollowedUserIDs(viewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	page, err := s.composer.Compose(feed.HomeScope{
		ViewerID:    viewerID,
		FollowedIDs: followedIDs,
		MediaType:   mediaType,
	}, viewerID, bindPagination(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "get new feeds success", "result": page})
}

// DiscoveryFeed samples tweets from authors outside the viewer's follow
// graph. Anonymous viewers sample from everyone.
func (s *Server) DiscoveryFeed(c *gin.Context) {
	viewerID := middlewares.UserID(c)

	mediaType, err := bindMediaType(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var excludedIDs []string
	if viewerID != "" {
		followedIDs, err := s.store.FollowedUserIDs(viewerID)
		if err != nil {
			respondError(c, err)
			return
		}
		excludedIDs = append(followedIDs, viewerID)
	}

	page, err := s.composer.Compose(feed.DiscoveryScope{
		ViewerID:    viewerID,
		ExcludedIDs: excludedIDs,
		MediaType:   mediaType,
	}, viewerID, bindPagination(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "get random tweets success", "result": page})
}

// ProfileFeed lists one author's tweets as seen by the viewer. Browsing a
// profile does not count views.
func (s *Server) ProfileFeed(c *gin.Context) {
	viewerID := middlewares.UserID(c)

	profileID := c.Param("user_id")
	if _, err := s.store.GetUser(profileID); err != nil {
		respondError(c, err)
		return
	}

	page, err := s.composer.Compose(feed.ProfileScope{
		ProfileID: profileID,
	}, viewerID, bindPagination(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "get profile tweets success", "result": page})
}
