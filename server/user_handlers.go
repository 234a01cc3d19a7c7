package server

import (
	"net/http"

	"github.com/chirpnet/chirp/model"
	"github.com/chirpnet/chirp/server/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

func (s *Server) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, model.NewValidationError(err.Error()))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	user, pair, err := s.auth.Register(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "register success",
		"result": gin.H{
			"user":          user,
			"access_token":  pair.AccessToken,
			"refresh_token": pair.RefreshToken,
		},
	})
}

func (s *Server) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, model.NewValidationError(err.Error()))
		return
	}

	user, pair, err := s.auth.Login(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "login success",
		"result": gin.H{
			"user":          user,
			"access_token":  pair.AccessToken,
			"refresh_token": pair.RefreshToken,
		},
	})
}

func (s *Server) Logout(c *gin.Context) {
	var req model.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, model.NewValidationError(err.Error()))
		return
	}
	if err := s.auth.Logout(req.RefreshToken); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logout success"})
}

func (s *Server) RefreshToken(c *gin.Context) {
	var req model.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, model.NewValidationError(err.Error()))
		return
	}
	pair, err := s.auth.Refresh(req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "refresh token success",
		"result": gin.H{
			"access_token":  pair.AccessToken,
			"refresh_token": pair.RefreshToken,
		},
	})
}

func (s *Server) VerifyEmail(c *gin.Context) {
	var req struct {
		EmailVerifyToken string `json:"email_verify_token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, model.NewValidationError(err.Error()))
		return
	}
	if err := s.auth.VerifyEmail(req.EmailVerifyToken); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "email verify success"})
}

// ForgotPassword responds the same for known and unknown emails so the
// endpoint cannot be used to enumerate accounts.
func (s *Server) ForgotPassword(c *gin.Context) {
	var req model.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, model.NewValidationError(err.Error()))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}
	if _, err := s.auth.ForgotPassword(req.Email); err != nil && !errors.Is(err, model.ErrUserNotFound) {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "check email to reset password"})
}

func (s *Server) ResetPassword(c *gin.Context) {
	var req model.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, model.NewValidationError(err.Error()))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}
	if err := s.auth.ResetPassword(&req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reset password success"})
}

func (s *Server) GetMe(c *gin.Context) {
	user, err := s.store.GetUser(middlewares.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "get me success", "result": user})
}

func (s *Server) UpdateMe(c *gin.Context) {
	var req model.UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, model.NewValidationError(err.Error()))
		return
	}

	// Only fields present in the payload are written.
	updates := map[string]interface{}{}
	setIfPresent := func(column string, value *string) {
		if value != nil {
			updates[column] = *value
		}
	}
	setIfPresent("name", req.Name)
	setIfPresent("bio", req.Bio)
	setIfPresent("location", req.Location)
	setIfPresent("website", req.Website)
	setIfPresent("username", req.Username)
	setIfPresent("avatar", req.Avatar)
	setIfPresent("cover_photo", req.CoverPhoto)
	if len(updates) == 0 {
		respondError(c, model.NewValidationError("no updatable fields in payload"))
		return
	}

	user, err := s.store.UpdateUser(middlewares.UserID(c), updates)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "update me success", "result": user})
}

// GetProfile serves a public profile with its follow counts.
func (s *Server) GetProfile(c *gin.Context) {
	user, err := s.store.GetUserByUsername(c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	followers, following, err := s.store.FollowStats(user.Id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "get profile success",
		"result": gin.H{
			"user":      user,
			"followers": followers,
			"following": following,
		},
	})
}

func (s *Server) Follow(c *gin.Context) {
	var req struct {
		FollowedUserID string `json:"followed_user_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, model.NewValidationError(err.Error()))
		return
	}
	if err := s.store.Follow(middlewares.UserID(c), req.FollowedUserID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "follow success"})
}

func (s *Server) Unfollow(c *gin.Context) {
	if err := s.store.Unfollow(middlewares.UserID(c), c.Param("user_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "unfollow success"})
}

func (s *Server) AddCircleMember(c *gin.Context) {
	var req struct {
		MemberID string `json:"member_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, model.NewValidationError(err.Error()))
		return
	}
	if err := s.store.AddCircleMember(middlewares.UserID(c), req.MemberID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "add circle member success"})
}

func (s *Server) RemoveCircleMember(c *gin.Context) {
	if err := s.store.RemoveCircleMember(middlewares.UserID(c), c.Param("user_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "remove circle member success"})
}
