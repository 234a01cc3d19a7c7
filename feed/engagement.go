package feed

import (
	"github.com/chirpnet/chirp/model"
	"github.com/chirpnet/chirp/store"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
)

// Aggregator decorates tweets with engagement counts, per-viewer flags and
// the resolved hashtag/mention embeddings. The batch form runs one grouped
// query per concern over the whole page instead of one query per tweet.
type Aggregator struct {
	store *store.Store
}

func NewAggregator(s *store.Store) *Aggregator {
	return &Aggregator{store: s}
}

// Decorate decorates a page of tweets for an optional viewer. An empty
// viewerID leaves both per-viewer flags false. A failure on any sub-query
// fails the whole page; partial decoration is never returned.
func (a *Aggregator) Decorate(tweets []*model.Tweet, viewerID string) ([]*model.TweetView, error) {
	views := make([]*model.TweetView, 0, len(tweets))
	if len(tweets) == 0 {
		return views, nil
	}

	ids := make([]string, 0, len(tweets))
	for _, tweet := range tweets {
		ids = append(ids, tweet.Id)
	}

	likeCounts, err := a.store.LikeCounts(ids)
	if err != nil {
		return nil, errors.Wrap(err, "fail to aggregate likes")
	}
	bookmarkCounts, err := a.store.BookmarkCounts(ids)
	if err != nil {
		return nil, errors.Wrap(err, "fail to aggregate bookmarks")
	}
	childCounts, err := a.store.ChildCounts(ids)
	if err != nil {
		return nil, errors.Wrap(err, "fail to aggregate child tweets")
	}
	hashtags, err := a.store.HashtagNames(ids)
	if err != nil {
		return nil, err
	}
	mentions, err := a.store.MentionsByTweet(ids)
	if err != nil {
		return nil, err
	}

	likedSet := map[string]bool{}
	bookmarkedSet := map[string]bool{}
	if viewerID != "" {
		if likedSet, err = a.store.LikedSet(ids, viewerID); err != nil {
			return nil, err
		}
		if bookmarkedSet, err = a.store.BookmarkedSet(ids, viewerID); err != nil {
			return nil, err
		}
	}

	for _, tweet := range tweets {
		view := &model.TweetView{}
		if err := copier.Copy(view, tweet); err != nil {
			return nil, errors.Wrap(err, "fail to copy tweet")
		}
		view.Medias = tweet.MediaList()
		view.Hashtags = emptyIfNil(hashtags[tweet.Id])
		view.Mentions = emptyMentionsIfNil(mentions[tweet.Id])
		view.LikeCount = likeCounts[tweet.Id]
		view.BookmarkCount = bookmarkCounts[tweet.Id]
		view.RetweetCount = childCounts[tweet.Id][model.TweetTypeRetweet]
		view.CommentCount = childCounts[tweet.Id][model.TweetTypeComment]
		view.QuoteCount = childCounts[tweet.Id][model.TweetTypeQuoteTweet]
		view.IsLiked = likedSet[tweet.Id]
		view.IsBookmarked = bookmarkedSet[tweet.Id]
		view.View = view.GuestView + view.UserView
		if tweet.Author != nil {
			// Summary projection only: the author's sensitive fields must
			// not reach the payload.
			summary := tweet.Author.Summary()
			view.Author = &summary
		}
		views = append(views, view)
	}
	return views, nil
}

func emptyIfNil(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}

func emptyMentionsIfNil(summaries []model.UserSummary) []model.UserSummary {
	if summaries == nil {
		return []model.UserSummary{}
	}
	return summaries
}
