package server

import (
	"net/http"

	"github.com/chirpnet/chirp/model"
	"github.com/chirpnet/chirp/server/middlewares"
	"github.com/gin-gonic/gin"
)

// ListConversations pages through the message history between the caller
// and one peer, newest first.
func (s *Server) ListConversations(c *gin.Context) {
	userID := middlewares.UserID(c)

	peerID := c.Param("receiver_id")
	if _, err := s.store.GetUser(peerID); err != nil {
		respondError(c, err)
		return
	}

	p := bindPagination(c)
	if err := p.Validate(); err != nil {
		respondError(c, err)
		return
	}
	conversations, total, err := s.store.ListConversations(userID, peerID, p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "get conversations success",
		"result": gin.H{
			"conversations": conversations,
			"limit":         p.Limit,
			"page":          p.Page,
			"total_page":    model.TotalPages(total, p.Limit),
		},
	})
}
