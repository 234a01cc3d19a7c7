package store

import (
	"testing"

	"github.com/chirpnet/chirp/model"
	"github.com/chirpnet/chirp/utils"
	"github.com/stretchr/testify/require"
)

func TestCreateCommentIsIdempotent(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	s := NewStore(db)

	author := utils.TestCreateUser(t, db, "author")
	commenter := utils.TestCreateUser(t, db, "commenter")
	tweet := utils.TestCreateTweet(t, db, author, model.TweetTypeOriginal, model.TweetAudienceEveryone, "hello", nil)

	first, err := s.CreateComment(commenter.Id, tweet.Id, &model.CreateCommentRequest{Content: "nice"})
	require.NoError(t, err)
	second, err := s.CreateComment(commenter.Id, tweet.Id, &model.CreateCommentRequest{Content: "nice"})
	require.NoError(t, err)
	require.Equal(t, first.Id, second.Id)

	// A different body is a new comment.
	third, err := s.CreateComment(commenter.Id, tweet.Id, &model.CreateCommentRequest{Content: "also nice"})
	require.NoError(t, err)
	require.NotEqual(t, first.Id, third.Id)
}

func TestCreateCommentValidatesParent(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	s := NewStore(db)

	author := utils.TestCreateUser(t, db, "author")
	commenter := utils.TestCreateUser(t, db, "commenter")
	tweet := utils.TestCreateTweet(t, db, author, model.TweetTypeOriginal, model.TweetAudienceEveryone, "hello", nil)

	missing := "no-such-comment"
	_, err := s.CreateComment(commenter.Id, tweet.Id, &model.CreateCommentRequest{
		Content:  "reply",
		ParentID: &missing,
	})
	require.Error(t, err)
	require.Equal(t, 422, model.HTTPStatus(err))

	_, err = s.CreateComment(commenter.Id, "no-such-tweet", &model.CreateCommentRequest{Content: "reply"})
	require.ErrorIs(t, err, model.ErrTweetNotFound)
}

func TestCreateCommentParentQueryFailure(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	s := NewStore(db)

	author := utils.TestCreateUser(t, db, "author")
	commenter := utils.TestCreateUser(t, db, "commenter")
	tweet := utils.TestCreateTweet(t, db, author, model.TweetTypeOriginal, model.TweetAudienceEveryone, "hello", nil)

	require.NoError(t, db.Migrator().DropTable(&model.Comment{}))

	// A failing parent lookup is a store error, not bad client input.
	parent := "some-parent"
	_, err := s.CreateComment(commenter.Id, tweet.Id, &model.CreateCommentRequest{
		Content:  "reply",
		ParentID: &parent,
	})
	require.Error(t, err)
	require.Equal(t, 500, model.HTTPStatus(err))
}

func TestListCommentsInlinesReplies(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	s := NewStore(db)

	author := utils.TestCreateUser(t, db, "author")
	commenter := utils.TestCreateUser(t, db, "commenter")
	replier := utils.TestCreateUser(t, db, "replier")
	tweet := utils.TestCreateTweet(t, db, author, model.TweetTypeOriginal, model.TweetAudienceEveryone, "hello", nil)

	top, err := s.CreateComment(commenter.Id, tweet.Id, &model.CreateCommentRequest{Content: "top level"})
	require.NoError(t, err)
	_, err = s.CreateComment(replier.Id, tweet.Id, &model.CreateCommentRequest{
		Content:  "a reply",
		ParentID: &top.Id,
	})
	require.NoError(t, err)

	views, total, err := s.ListComments(tweet.Id, model.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)

	// Replies do not count as top-level comments.
	require.Equal(t, int64(1), total)
	require.Len(t, views, 1)
	require.Equal(t, "top level", views[0].Content)
	require.Equal(t, "commenter", views[0].User.Username)
	require.Len(t, views[0].Replies, 1)
	require.Equal(t, "a reply", views[0].Replies[0].Content)
	require.Equal(t, "replier", views[0].Replies[0].User.Username)
}
