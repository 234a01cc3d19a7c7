// Package server exposes the HTTP surface: route registration and the gin
// handlers that sit between the wire and the store/feed layers.
package server

import (
	"github.com/chirpnet/chirp/auth"
	"github.com/chirpnet/chirp/feed"
	"github.com/chirpnet/chirp/media"
	"github.com/chirpnet/chirp/realtime"
	"github.com/chirpnet/chirp/server/middlewares"
	"github.com/chirpnet/chirp/store"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Server struct {
	store     *store.Store
	composer  *feed.Composer
	auth      *auth.Service
	relay     *realtime.Relay
	fileStore media.FileStore
}

func NewServer(db *gorm.DB, authService *auth.Service, fileStore media.FileStore) *Server {
	s := store.NewStore(db)
	registry := realtime.NewRegistry()
	return &Server{
		store:     s,
		composer:  feed.NewComposer(db, s),
		auth:      authService,
		relay:     realtime.NewRelay(registry, s, authService),
		fileStore: fileStore,
	}
}

// RegisterRoutes mounts every endpoint on the router. Public reads go
// behind OptionalJWT so the visibility policy can distinguish anonymous
// viewers; everything that writes goes behind JWT.
func (s *Server) RegisterRoutes(router *gin.Engine) {
	users := router.Group("/users")
	{
		users.POST("/register", s.Register)
		users.POST("/login", s.Login)
		users.POST("/logout", s.Logout)
		users.POST("/refresh-token", s.RefreshToken)
		users.POST("/verify-email", s.VerifyEmail)
		users.POST("/forgot-password", s.ForgotPassword)
		users.POST("/reset-password", s.ResetPassword)
		users.GET("/me", middlewares.JWT(), s.GetMe)
		users.PATCH("/me", middlewares.JWT(), s.UpdateMe)
		users.GET("/:username", s.GetProfile)
		users.POST("/follow", middlewares.JWT(), s.Follow)
		users.DELETE("/follow/:user_id", middlewares.JWT(), s.Unfollow)
		users.POST("/circle", middlewares.JWT(), s.AddCircleMember)
		users.DELETE("/circle/:user_id", middlewares.JWT(), s.RemoveCircleMember)
	}

	tweets := router.Group("/tweets")
	{
		tweets.POST("", middlewares.JWT(), s.CreateTweet)
		tweets.GET("", middlewares.JWT(), s.HomeFeed)
		tweets.GET("/random", middlewares.OptionalJWT(), s.DiscoveryFeed)
		tweets.GET("/:tweet_id", middlewares.OptionalJWT(), s.GetTweet)
		tweets.DELETE("/:tweet_id", middlewares.JWT(), s.DeleteTweet)
		tweets.GET("/:tweet_id/children", middlewares.OptionalJWT(), s.TweetChildren)
		tweets.POST("/:tweet_id/comments", middlewares.JWT(), s.CreateComment)
		tweets.GET("/:tweet_id/comments", middlewares.OptionalJWT(), s.ListComments)
	}

	router.GET("/profile/:user_id/tweets", middlewares.OptionalJWT(), s.ProfileFeed)

	likes := router.Group("/likes", middlewares.JWT())
	{
		likes.POST("", s.Like)
		likes.DELETE("/tweets/:tweet_id", s.Unlike)
	}

	bookmarks := router.Group("/bookmarks", middlewares.JWT())
	{
		bookmarks.POST("", s.Bookmark)
		bookmarks.DELETE("/tweets/:tweet_id", s.Unbookmark)
		bookmarks.GET("", s.ListBookmarks)
	}

	router.GET("/conversations/receivers/:receiver_id", middlewares.JWT(), s.ListConversations)

	router.POST("/medias/upload", middlewares.JWT(), s.UploadMedia)

	router.GET("/ws", s.relay.Handler())
}
