package store

import (
	"testing"

	"github.com/chirpnet/chirp/model"
	"github.com/chirpnet/chirp/utils"
	"github.com/stretchr/testify/require"
)

func TestGetUserByUsername(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	s := NewStore(db)

	created := utils.TestCreateUser(t, db, "alice")

	user, err := s.GetUserByUsername("alice")
	require.NoError(t, err)
	require.Equal(t, created.Id, user.Id)

	_, err = s.GetUserByUsername("nobody")
	require.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestGetUserByEmail(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	s := NewStore(db)

	created := utils.TestCreateUser(t, db, "alice")

	user, err := s.GetUserByEmail("alice@example.com")
	require.NoError(t, err)
	require.Equal(t, created.Id, user.Id)

	_, err = s.GetUserByEmail("nobody@example.com")
	require.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestGetUserByEmailQueryFailure(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	s := NewStore(db)

	require.NoError(t, db.Migrator().DropTable(&model.User{}))

	// A failing query must not masquerade as a missing user.
	_, err := s.GetUserByEmail("alice@example.com")
	require.Error(t, err)
	require.NotErrorIs(t, err, model.ErrUserNotFound)
}

func TestUpdateUserPartial(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	s := NewStore(db)

	created := utils.TestCreateUser(t, db, "alice")

	user, err := s.UpdateUser(created.Id, map[string]interface{}{
		"bio":      "gopher",
		"location": "berlin",
	})
	require.NoError(t, err)
	require.Equal(t, "gopher", user.Bio)
	require.Equal(t, "berlin", user.Location)
	require.Equal(t, "alice", user.Username)
}

func TestVerifyEmail(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	s := NewStore(db)

	created := utils.TestCreateUser(t, db, "alice")
	require.NoError(t, db.Model(created).Updates(map[string]interface{}{
		"verify":             model.UserVerifyStatusUnverified,
		"email_verify_token": "pending-token",
	}).Error)

	require.NoError(t, s.VerifyEmail(created.Id))

	user, err := s.GetUser(created.Id)
	require.NoError(t, err)
	require.Equal(t, model.UserVerifyStatusVerified, user.Verify)
	require.Empty(t, user.EmailVerifyToken)

	// The token is one-time use.
	require.ErrorIs(t, s.VerifyEmail(created.Id), model.ErrUserNotFound)
}
