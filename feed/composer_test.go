package feed

import (
	"fmt"
	"testing"
	"time"

	"golang.org/x/exp/rand"

	"github.com/chirpnet/chirp/model"
	"github.com/chirpnet/chirp/store"
	"github.com/chirpnet/chirp/utils"
	"github.com/stretchr/testify/require"
)

func TestComposeHomePagination(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	s := store.NewStore(db)
	composer := NewComposer(db, s)

	viewer := utils.TestCreateUser(t, db, "viewer")
	author := utils.TestCreateUser(t, db, "author")
	utils.TestFollow(t, db, viewer, author)

	base := time.Now().Add(-25 * time.Minute)
	for i := 0; i < 25; i++ {
		tweet := utils.TestCreateTweet(t, db, author, model.TweetTypeOriginal, model.TweetAudienceEveryone, fmt.Sprintf("tweet %d", i), nil)
		require.NoError(t, db.Model(tweet).Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}

	scope := HomeScope{ViewerID: viewer.Id, FollowedIDs: []string{author.Id}}

	page, err := composer.Compose(scope, viewer.Id, model.Pagination{Page: 2, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Result, 10)
	require.Equal(t, 2, page.Page)
	require.Equal(t, 10, page.Limit)
	require.Equal(t, 3, page.TotalPage)

	// Newest first: page 2 starts at the 11th newest tweet.
	require.Equal(t, "tweet 14", page.Result[0].Content)
	require.Equal(t, "tweet 5", page.Result[9].Content)

	lastPage, err := composer.Compose(scope, viewer.Id, model.Pagination{Page: 3, Limit: 10})
	require.NoError(t, err)
	require.Len(t, lastPage.Result, 5)

	beyond, err := composer.Compose(scope, viewer.Id, model.Pagination{Page: 4, Limit: 10})
	require.NoError(t, err)
	require.Empty(t, beyond.Result)
	require.Equal(t, 3, beyond.TotalPage)
}

func TestComposeRejectsBadPagination(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	s := store.NewStore(db)
	composer := NewComposer(db, s)

	viewer := utils.TestCreateUser(t, db, "viewer")
	scope := HomeScope{ViewerID: viewer.Id}

	_, err := composer.Compose(scope, viewer.Id, model.Pagination{Page: 0, Limit: 10})
	require.Error(t, err)
	_, err = composer.Compose(scope, viewer.Id, model.Pagination{Page: 1, Limit: 101})
	require.Error(t, err)
}

func TestComposeOmitsInvisibleCircleTweets(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	s := store.NewStore(db)
	composer := NewComposer(db, s)

	viewer := utils.TestCreateUser(t, db, "viewer")
	author := utils.TestCreateUser(t, db, "author")
	utils.TestFollow(t, db, viewer, author)

	utils.TestCreateTweet(t, db, author, model.TweetTypeOriginal, model.TweetAudienceEveryone, "public", nil)
	utils.TestCreateTweet(t, db, author, model.TweetTypeOriginal, model.TweetAudienceCircle, "secret", nil)

	scope := HomeScope{ViewerID: viewer.Id, FollowedIDs: []string{author.Id}}

	page, err := composer.Compose(scope, viewer.Id, model.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Result, 1)
	require.Equal(t, "public", page.Result[0].Content)

	// Once inside the author's circle the same request surfaces both.
	utils.TestAddToCircle(t, db, author, viewer)
	page, err = composer.Compose(scope, viewer.Id, model.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Result, 2)
}

func TestComposeHomeMediaTypeFilter(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	s := store.NewStore(db)
	composer := NewComposer(db, s)

	viewer := utils.TestCreateUser(t, db, "viewer")
	author := utils.TestCreateUser(t, db, "author")
	utils.TestFollow(t, db, viewer, author)

	withVideo := utils.TestCreateTweet(t, db, author, model.TweetTypeOriginal, model.TweetAudienceEveryone, "clip", nil)
	require.NoError(t, db.Model(withVideo).Update("medias", model.MediasColumn([]model.Media{
		{Url: "https://media.example.com/a.mp4", Type: model.MediaTypeVideo},
	})).Error)
	withImage := utils.TestCreateTweet(t, db, author, model.TweetTypeOriginal, model.TweetAudienceEveryone, "photo", nil)
	require.NoError(t, db.Model(withImage).Update("medias", model.MediasColumn([]model.Media{
		{Url: "https://media.example.com/b.jpg", Type: model.MediaTypeImage},
	})).Error)
	utils.TestCreateTweet(t, db, author, model.TweetTypeOriginal, model.TweetAudienceEveryone, "text only", nil)

	video := model.MediaTypeVideo
	page, err := composer.Compose(HomeScope{
		ViewerID:    viewer.Id,
		FollowedIDs: []string{author.Id},
		MediaType:   &video,
	}, viewer.Id, model.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Result, 1)
	require.Equal(t, "clip", page.Result[0].Content)

	image := model.MediaTypeImage
	page, err = composer.Compose(HomeScope{
		ViewerID:    viewer.Id,
		FollowedIDs: []string{author.Id},
		MediaType:   &image,
	}, viewer.Id, model.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Result, 1)
	require.Equal(t, "photo", page.Result[0].Content)

	// No filter keeps text-only tweets in.
	page, err = composer.Compose(HomeScope{
		ViewerID:    viewer.Id,
		FollowedIDs: []string{author.Id},
	}, viewer.Id, model.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Result, 3)
}

func TestComposeHomeRecordsViews(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	s := store.NewStore(db)
	composer := NewComposer(db, s)

	viewer := utils.TestCreateUser(t, db, "viewer")
	author := utils.TestCreateUser(t, db, "author")
	utils.TestFollow(t, db, viewer, author)
	tweet := utils.TestCreateTweet(t, db, author, model.TweetTypeOriginal, model.TweetAudienceEveryone, "hello", nil)

	scope := HomeScope{ViewerID: viewer.Id, FollowedIDs: []string{author.Id}}

	page, err := composer.Compose(scope, viewer.Id, model.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Result, 1)

	// The response reads its own write.
	require.Equal(t, int64(1), page.Result[0].UserView)
	require.Equal(t, int64(1), page.Result[0].View)

	var stored model.Tweet
	require.NoError(t, db.First(&stored, "id = ?", tweet.Id).Error)
	require.Equal(t, int64(1), stored.UserView)
	require.Equal(t, int64(0), stored.GuestView)
}

func TestComposeProfileDoesNotRecordViews(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	s := store.NewStore(db)
	composer := NewComposer(db, s)

	viewer := utils.TestCreateUser(t, db, "viewer")
	author := utils.TestCreateUser(t, db, "author")
	tweet := utils.TestCreateTweet(t, db, author, model.TweetTypeOriginal, model.TweetAudienceEveryone, "hello", nil)

	page, err := composer.Compose(ProfileScope{ProfileID: author.Id}, viewer.Id, model.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Result, 1)

	var stored model.Tweet
	require.NoError(t, db.First(&stored, "id = ?", tweet.Id).Error)
	require.Equal(t, int64(0), stored.UserView)
	require.Equal(t, int64(0), stored.GuestView)
}

func TestComposeDiscoverySamplesOutsideFollowGraph(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	s := store.NewStore(db)
	composer := NewComposer(db, s)

	viewer := utils.TestCreateUser(t, db, "viewer")
	followed := utils.TestCreateUser(t, db, "followed")
	stranger := utils.TestCreateUser(t, db, "stranger")
	utils.TestFollow(t, db, viewer, followed)

	utils.TestCreateTweet(t, db, followed, model.TweetTypeOriginal, model.TweetAudienceEveryone, "followed tweet", nil)
	for i := 0; i < 5; i++ {
		utils.TestCreateTweet(t, db, stranger, model.TweetTypeOriginal, model.TweetAudienceEveryone, fmt.Sprintf("stranger %d", i), nil)
	}

	scope := DiscoveryScope{
		ViewerID:    viewer.Id,
		ExcludedIDs: []string{followed.Id, viewer.Id},
		Src:         rand.NewSource(42),
	}
	page, err := composer.Compose(scope, viewer.Id, model.Pagination{Page: 1, Limit: 3})
	require.NoError(t, err)
	require.Len(t, page.Result, 3)
	for _, view := range page.Result {
		require.Equal(t, stranger.Id, view.AuthorID)
	}
}

func TestComposeThreadScope(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	s := store.NewStore(db)
	composer := NewComposer(db, s)

	author := utils.TestCreateUser(t, db, "author")
	replier := utils.TestCreateUser(t, db, "replier")
	parent := utils.TestCreateTweet(t, db, author, model.TweetTypeOriginal, model.TweetAudienceEveryone, "parent", nil)

	base := time.Now().Add(-10 * time.Minute)
	for i := 0; i < 3; i++ {
		comment := utils.TestCreateTweet(t, db, replier, model.TweetTypeComment, model.TweetAudienceEveryone, fmt.Sprintf("comment %d", i), &parent.Id)
		require.NoError(t, db.Model(comment).Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}
	utils.TestCreateTweet(t, db, replier, model.TweetTypeRetweet, model.TweetAudienceEveryone, "", &parent.Id)

	page, err := composer.Compose(ThreadScope{
		ParentID:  parent.Id,
		ChildType: model.TweetTypeComment,
	}, "", model.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Result, 3)

	// Threads read oldest first.
	require.Equal(t, "comment 0", page.Result[0].Content)
	require.Equal(t, "comment 2", page.Result[2].Content)
}

func TestComposeOneReturnsPostIncrementCounters(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	s := store.NewStore(db)
	composer := NewComposer(db, s)

	author := utils.TestCreateUser(t, db, "author")
	viewer := utils.TestCreateUser(t, db, "viewer")
	tweet := utils.TestCreateTweet(t, db, author, model.TweetTypeOriginal, model.TweetAudienceEveryone, "hello", nil)

	view, err := composer.One(tweet, viewer.Id)
	require.NoError(t, err)
	require.Equal(t, int64(1), view.UserView)
	require.Equal(t, int64(0), view.GuestView)
	require.Equal(t, int64(1), view.View)

	// The stored row matches the response exactly, no double bump.
	var stored model.Tweet
	require.NoError(t, db.First(&stored, "id = ?", tweet.Id).Error)
	require.Equal(t, int64(1), stored.UserView)
	require.Equal(t, int64(0), stored.GuestView)
}
