package utils

import (
	"testing"

	"github.com/chirpnet/chirp/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// create user with name, do sanity checks and return it
func TestCreateUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	user := &model.User{
		Id:       uuid.New().String(),
		Name:     name,
		Email:    name + "@example.com",
		Username: name,
		Verify:   model.UserVerifyStatusVerified,
	}
	require.NoError(t, db.Create(user).Error)
	require.NotEmpty(t, user.Id)
	return user
}

// create a tweet for author, do sanity checks and return it
func TestCreateTweet(t *testing.T, db *gorm.DB, author *model.User, tweetType model.TweetType, audience model.TweetAudience, content string, parentID *string) *model.Tweet {
	t.Helper()
	tweet := &model.Tweet{
		Id:       uuid.New().String(),
		AuthorID: author.Id,
		Type:     tweetType,
		Audience: audience,
		Content:  content,
		ParentID: parentID,
		Medias:   model.MediasColumn([]model.Media{{Url: "https://cdn.example.com/" + uuid.New().String() + ".jpg", Type: model.MediaTypeImage}}),
	}
	require.NoError(t, db.Create(tweet).Error)
	return tweet
}

// create a follower relation
func TestFollow(t *testing.T, db *gorm.DB, follower *model.User, followed *model.User) {
	t.Helper()
	require.NoError(t, db.Create(&model.Follower{UserID: follower.Id, FollowedUserID: followed.Id}).Error)
}

// grant member access to owner's circle
func TestAddToCircle(t *testing.T, db *gorm.DB, owner *model.User, member *model.User) {
	t.Helper()
	require.NoError(t, db.Create(&model.CircleMembership{UserID: owner.Id, MemberID: member.Id}).Error)
}
