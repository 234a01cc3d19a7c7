package model

import (
	"math"
)

// Pagination is the shared page/limit query contract for all feed endpoints.
// Page is 1-based, limit is bounded to [1, 100].
type Pagination struct {
	Page  int `form:"page" json:"page"`
	Limit int `form:"limit" json:"limit"`
}

func (p Pagination) Validate() error {
	if p.Limit < 1 || p.Limit > 100 {
		return NewValidationError("limit must be between 1 and 100")
	}
	if p.Page <= 0 {
		return NewValidationError("page must be >= 1")
	}
	return nil
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages computes ceil(total / limit) for the pagination metadata.
func TotalPages(total int64, limit int) int {
	return int(math.Ceil(float64(total) / float64(limit)))
}

// CreateTweetRequest is the tweet creation payload with its cross-field
// constraints.
type CreateTweetRequest struct {
	Type     TweetType     `json:"type"`
	Audience TweetAudience `json:"audience"`
	Content  string        `json:"content"`
	ParentID *string       `json:"parent_id"`
	Hashtags []string      `json:"hashtags"`
	Mentions []string      `json:"mentions"`
	Medias   []Media       `json:"medias"`
}

func (r *CreateTweetRequest) Validate() error {
	if !r.Type.IsValid() {
		return NewValidationError("invalid tweet type")
	}
	if !r.Audience.IsValid() {
		return NewValidationError("invalid tweet audience")
	}
	if r.Type.RequiresParent() {
		if r.ParentID == nil || *r.ParentID == "" {
			return NewValidationError("parent_id must be a valid tweet id")
		}
	} else if r.ParentID != nil {
		// Original tweets must not reference a parent.
		return NewValidationError("parent_id must be null")
	}
	if r.Type == TweetTypeRetweet {
		if r.Content != "" {
			return NewValidationError("content must be an empty string")
		}
	} else if r.Content == "" && len(r.Hashtags) == 0 && len(r.Mentions) == 0 {
		return NewValidationError("content must not be an empty string")
	}
	for _, media := range r.Medias {
		if !media.Type.IsValid() {
			return NewValidationError("medias must be an array of media objects")
		}
	}
	return nil
}

// RegisterRequest is the account registration payload.
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	DateOfBirth     string `json:"date_of_birth"`
}

func (r *RegisterRequest) Validate() error {
	if r.Email == "" {
		return NewValidationError("email is required")
	}
	if len(r.Password) < 6 {
		return NewValidationError("password must be at least 6 characters")
	}
	if r.Password != r.ConfirmPassword {
		return NewValidationError("confirm password must match password")
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

func (r *ForgotPasswordRequest) Validate() error {
	if r.Email == "" {
		return NewValidationError("email is required")
	}
	return nil
}

type ResetPasswordRequest struct {
	ForgotPasswordToken string `json:"forgot_password_token"`
	Password            string `json:"password"`
	ConfirmPassword     string `json:"confirm_password"`
}

func (r *ResetPasswordRequest) Validate() error {
	if r.ForgotPasswordToken == "" {
		return NewValidationError("forgot password token is required")
	}
	if len(r.Password) < 6 {
		return NewValidationError("password must be at least 6 characters")
	}
	if r.Password != r.ConfirmPassword {
		return NewValidationError("confirm password must match password")
	}
	return nil
}

type UpdateMeRequest struct {
	Name       *string `json:"name"`
	Bio        *string `json:"bio"`
	Location   *string `json:"location"`
	Website    *string `json:"website"`
	Username   *string `json:"username"`
	Avatar     *string `json:"avatar"`
	CoverPhoto *string `json:"cover_photo"`
}

type CreateCommentRequest struct {
	Content  string  `json:"content"`
	ParentID *string `json:"parent_id"`
}

func (r *CreateCommentRequest) Validate() error {
	if r.Content == "" {
		return NewValidationError("content must not be an empty string")
	}
	return nil
}
