package auth

import (
	"os"
	"time"

	"github.com/chirpnet/chirp/model"
	"github.com/chirpnet/chirp/store"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	accessTokenTTL         = 15 * time.Minute
	refreshTokenTTL        = 100 * 24 * time.Hour
	emailVerifyTokenTTL    = 7 * 24 * time.Hour
	forgotPasswordTokenTTL = 24 * time.Hour
)

// TokenPair is what login, register and refresh hand back to the client.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Service implements the identity operations on top of the user store and
// the refresh-token allowlist.
type Service struct {
	store  *store.Store
	tokens *TokenStore
	secret []byte
}

func NewService(s *store.Store, tokens *TokenStore) *Service {
	return &Service{
		store:  s,
		tokens: tokens,
		secret: []byte(os.Getenv("JWT_SECRET")),
	}
}

// Register creates an unverified account and logs it in. Email delivery of
// the verification token is out of scope; the token is persisted on the
// user record for the verification endpoint.
func (s *Service) Register(req *model.RegisterRequest) (*model.User, *TokenPair, error) {
	_, err := s.store.GetUserByEmail(req.Email)
	if err == nil {
		return nil, nil, model.NewValidationError("email already exists")
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, nil, err
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, nil, errors.Wrap(err, "fail to hash password")
	}

	userID := uuid.New().String()
	verifyToken, err := GenerateToken(userID, EmailVerifyToken, s.secret, emailVerifyTokenTTL)
	if err != nil {
		return nil, nil, errors.Wrap(err, "fail to issue email verify token")
	}

	dateOfBirth, _ := time.Parse(time.RFC3339, req.DateOfBirth)
	user := &model.User{
		Id:               userID,
		Name:             req.Name,
		Email:            req.Email,
		Username:         req.Username,
		Password:         hash,
		DateOfBirth:      dateOfBirth,
		Verify:           model.UserVerifyStatusUnverified,
		EmailVerifyToken: verifyToken,
	}
	if err := s.store.CreateUser(user); err != nil {
		return nil, nil, err
	}

	pair, err := s.issuePair(userID)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Login verifies credentials and issues a token pair.
func (s *Service) Login(req *model.LoginRequest) (*model.User, *TokenPair, error) {
	user, err := s.store.GetUserByEmail(req.Email)
	if errors.Is(err, model.ErrUserNotFound) {
		return nil, nil, model.NewValidationError("email or password is incorrect")
	}
	if err != nil {
		return nil, nil, err
	}
	if !CheckPassword(user.Password, req.Password) {
		return nil, nil, model.NewValidationError("email or password is incorrect")
	}

	pair, err := s.issuePair(user.Id)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh rotates a live refresh token into a fresh pair. The old token is
// revoked so it cannot be replayed.
func (s *Service) Refresh(refreshToken string) (*TokenPair, error) {
	claims, err := ParseToken(refreshToken, RefreshToken, s.secret)
	if err != nil {
		return nil, err
	}
	live, err := s.tokens.IsLive(claims.UserID, claims.ID)
	if err != nil {
		return nil, errors.Wrap(err, "fail to check refresh token")
	}
	if !live {
		return nil, model.ErrInvalidToken
	}
	if err := s.tokens.Revoke(claims.UserID, claims.ID); err != nil {
		return nil, errors.Wrap(err, "fail to rotate refresh token")
	}
	return s.issuePair(claims.UserID)
}

// Logout revokes the refresh token. The access token simply ages out.
func (s *Service) Logout(refreshToken string) error {
	claims, err := ParseToken(refreshToken, RefreshToken, s.secret)
	if err != nil {
		return err
	}
	return s.tokens.Revoke(claims.UserID, claims.ID)
}

// VerifyEmail confirms the account behind a verification token.
func (s *Service) VerifyEmail(token string) error {
	claims, err := ParseToken(token, EmailVerifyToken, s.secret)
	if err != nil {
		return err
	}
	return s.store.VerifyEmail(claims.UserID)
}

// ForgotPassword issues a one-time reset token for the account behind an
// email address. Email delivery is out of scope; the token is persisted on
// the user record and matched again on reset.
func (s *Service) ForgotPassword(email string) (string, error) {
	user, err := s.store.GetUserByEmail(email)
	if err != nil {
		return "", err
	}
	token, err := GenerateToken(user.Id, ForgotPasswordToken, s.secret, forgotPasswordTokenTTL)
	if err != nil {
		return "", errors.Wrap(err, "fail to issue forgot password token")
	}
	if _, err := s.store.UpdateUser(user.Id, map[string]interface{}{
		"forgot_password_token": token,
	}); err != nil {
		return "", err
	}
	return token, nil
}

// ResetPassword consumes a reset token and replaces the password. The token
// must match the one on record, so issuing a newer token or completing a
// reset invalidates older ones.
func (s *Service) ResetPassword(req *model.ResetPasswordRequest) error {
	claims, err := ParseToken(req.ForgotPasswordToken, ForgotPasswordToken, s.secret)
	if err != nil {
		return err
	}
	user, err := s.store.GetUser(claims.UserID)
	if err != nil {
		return err
	}
	if user.ForgotPasswordToken == "" || user.ForgotPasswordToken != req.ForgotPasswordToken {
		return model.ErrInvalidToken
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return errors.Wrap(err, "fail to hash password")
	}
	if _, err := s.store.UpdateUser(user.Id, map[string]interface{}{
		"password":              hash,
		"forgot_password_token": "",
	}); err != nil {
		return err
	}
	return nil
}

// Authenticate resolves an access token to a user id for the request
// middlewares.
func (s *Service) Authenticate(accessToken string) (string, error) {
	claims, err := ParseToken(accessToken, AccessToken, s.secret)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

func (s *Service) issuePair(userID string) (*TokenPair, error) {
	access, err := GenerateToken(userID, AccessToken, s.secret, accessTokenTTL)
	if err != nil {
		return nil, errors.Wrap(err, "fail to issue access token")
	}
	refresh, err := GenerateToken(userID, RefreshToken, s.secret, refreshTokenTTL)
	if err != nil {
		return nil, errors.Wrap(err, "fail to issue refresh token")
	}

	claims, err := ParseToken(refresh, RefreshToken, s.secret)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Save(userID, claims.ID, refreshTokenTTL); err != nil {
		return nil, errors.Wrap(err, "fail to allowlist refresh token")
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
