package feed

import (
	"testing"

	"github.com/chirpnet/chirp/model"
	"github.com/chirpnet/chirp/store"
	"github.com/chirpnet/chirp/utils"
	"github.com/stretchr/testify/require"
)

func TestDecorateEmptyPage(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	aggregator := NewAggregator(store.NewStore(db))

	views, err := aggregator.Decorate([]*model.Tweet{}, "")
	require.NoError(t, err)
	require.NotNil(t, views)
	require.Empty(t, views)
}

func TestDecorateCountsAndFlags(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	s := store.NewStore(db)
	aggregator := NewAggregator(s)

	author := utils.TestCreateUser(t, db, "author")
	liker := utils.TestCreateUser(t, db, "liker")
	other := utils.TestCreateUser(t, db, "other")
	tweet := utils.TestCreateTweet(t, db, author, model.TweetTypeOriginal, model.TweetAudienceEveryone, "hello", nil)

	// Two likes, one bookmark, and a mixed set of child tweets.
	_, err := s.LikeTweet(liker.Id, tweet.Id)
	require.NoError(t, err)
	_, err = s.LikeTweet(other.Id, tweet.Id)
	require.NoError(t, err)
	_, err = s.BookmarkTweet(liker.Id, tweet.Id)
	require.NoError(t, err)

	utils.TestCreateTweet(t, db, other, model.TweetTypeRetweet, model.TweetAudienceEveryone, "", &tweet.Id)
	utils.TestCreateTweet(t, db, other, model.TweetTypeComment, model.TweetAudienceEveryone, "first", &tweet.Id)
	utils.TestCreateTweet(t, db, liker, model.TweetTypeComment, model.TweetAudienceEveryone, "second", &tweet.Id)
	utils.TestCreateTweet(t, db, liker, model.TweetTypeQuoteTweet, model.TweetAudienceEveryone, "quoting", &tweet.Id)

	loaded, err := s.GetTweet(tweet.Id)
	require.NoError(t, err)

	views, err := aggregator.Decorate([]*model.Tweet{loaded}, liker.Id)
	require.NoError(t, err)
	require.Len(t, views, 1)

	view := views[0]
	require.Equal(t, int64(2), view.LikeCount)
	require.Equal(t, int64(1), view.BookmarkCount)
	require.Equal(t, int64(1), view.RetweetCount)
	require.Equal(t, int64(2), view.CommentCount)
	require.Equal(t, int64(1), view.QuoteCount)
	require.True(t, view.IsLiked)
	require.True(t, view.IsBookmarked)

	// A different viewer sees the same counts with both flags false.
	views, err = aggregator.Decorate([]*model.Tweet{loaded}, author.Id)
	require.NoError(t, err)
	require.False(t, views[0].IsLiked)
	require.False(t, views[0].IsBookmarked)

	// Anonymous viewers never carry per-viewer flags.
	views, err = aggregator.Decorate([]*model.Tweet{loaded}, "")
	require.NoError(t, err)
	require.False(t, views[0].IsLiked)
	require.False(t, views[0].IsBookmarked)
}

func TestDecorateHashtagsAndMentions(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	s := store.NewStore(db)
	aggregator := NewAggregator(s)

	author := utils.TestCreateUser(t, db, "author")
	mentioned := utils.TestCreateUser(t, db, "mentioned")

	parentID := (*string)(nil)
	tweet, err := s.CreateTweet(author.Id, &model.CreateTweetRequest{
		Type:     model.TweetTypeOriginal,
		Audience: model.TweetAudienceEveryone,
		Content:  "hello #Golang",
		ParentID: parentID,
		Hashtags: []string{"Golang"},
		Mentions: []string{mentioned.Id},
	})
	require.NoError(t, err)

	views, err := aggregator.Decorate([]*model.Tweet{tweet}, "")
	require.NoError(t, err)
	require.Len(t, views, 1)

	view := views[0]
	require.Equal(t, []string{"golang"}, view.Hashtags)
	require.Len(t, view.Mentions, 1)
	require.Equal(t, mentioned.Id, view.Mentions[0].Id)
	require.Equal(t, "mentioned", view.Mentions[0].Username)
}

func TestDecorateProjectsAuthorSummary(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	s := store.NewStore(db)
	aggregator := NewAggregator(s)

	author := utils.TestCreateUser(t, db, "author")
	tweet := utils.TestCreateTweet(t, db, author, model.TweetTypeOriginal, model.TweetAudienceEveryone, "hello", nil)

	loaded, err := s.GetTweet(tweet.Id)
	require.NoError(t, err)

	views, err := aggregator.Decorate([]*model.Tweet{loaded}, "")
	require.NoError(t, err)
	require.NotNil(t, views[0].Author)
	require.Equal(t, author.Id, views[0].Author.Id)
	require.Equal(t, author.Username, views[0].Author.Username)

	// The view always carries decoded media descriptors, never raw JSON.
	require.Len(t, views[0].Medias, 1)
	require.Equal(t, model.MediaTypeImage, views[0].Medias[0].Type)
}
