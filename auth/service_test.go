package auth

import (
	"os"
	"testing"

	"github.com/chirpnet/chirp/model"
	"github.com/chirpnet/chirp/store"
	"github.com/chirpnet/chirp/utils"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// The password reset path never touches the refresh-token allowlist, so a
// nil token store keeps these tests off redis.
func testService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	require.NoError(t, os.Setenv("JWT_SECRET", "service-test-secret"))
	db, _ := utils.CreateTempDB(t)
	return NewService(store.NewStore(db), nil), db
}

func TestForgotPasswordResetFlow(t *testing.T) {
	svc, db := testService(t)

	user := utils.TestCreateUser(t, db, "alice")
	oldHash, err := HashPassword("old-secret")
	require.NoError(t, err)
	require.NoError(t, db.Model(user).Update("password", oldHash).Error)

	token, err := svc.ForgotPassword("alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// The token is persisted so reset can match it.
	var stored model.User
	require.NoError(t, db.First(&stored, "id = ?", user.Id).Error)
	require.Equal(t, token, stored.ForgotPasswordToken)

	require.NoError(t, svc.ResetPassword(&model.ResetPasswordRequest{
		ForgotPasswordToken: token,
		Password:            "new-secret",
		ConfirmPassword:     "new-secret",
	}))

	require.NoError(t, db.First(&stored, "id = ?", user.Id).Error)
	require.True(t, CheckPassword(stored.Password, "new-secret"))
	require.False(t, CheckPassword(stored.Password, "old-secret"))
	require.Empty(t, stored.ForgotPasswordToken)

	// The token is one-time use.
	err = svc.ResetPassword(&model.ResetPasswordRequest{
		ForgotPasswordToken: token,
		Password:            "another-secret",
		ConfirmPassword:     "another-secret",
	})
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	svc, _ := testService(t)

	_, err := svc.ForgotPassword("nobody@example.com")
	require.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestResetPasswordRejectsSupersededToken(t *testing.T) {
	svc, db := testService(t)

	utils.TestCreateUser(t, db, "alice")

	first, err := svc.ForgotPassword("alice@example.com")
	require.NoError(t, err)
	second, err := svc.ForgotPassword("alice@example.com")
	require.NoError(t, err)

	// Only the latest issued token is on record.
	err = svc.ResetPassword(&model.ResetPasswordRequest{
		ForgotPasswordToken: first,
		Password:            "new-secret",
		ConfirmPassword:     "new-secret",
	})
	require.ErrorIs(t, err, model.ErrInvalidToken)

	require.NoError(t, svc.ResetPassword(&model.ResetPasswordRequest{
		ForgotPasswordToken: second,
		Password:            "new-secret",
		ConfirmPassword:     "new-secret",
	}))
}

func TestResetPasswordRejectsForeignToken(t *testing.T) {
	svc, db := testService(t)

	utils.TestCreateUser(t, db, "alice")

	// A token that was never handed out by ForgotPassword is refused even
	// when it is a structurally valid reset token for the user.
	forged, err := GenerateToken("some-user", ForgotPasswordToken, []byte("other-secret"), forgotPasswordTokenTTL)
	require.NoError(t, err)
	err = svc.ResetPassword(&model.ResetPasswordRequest{
		ForgotPasswordToken: forged,
		Password:            "new-secret",
		ConfirmPassword:     "new-secret",
	})
	require.ErrorIs(t, err, model.ErrInvalidToken)
}
