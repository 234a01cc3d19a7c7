package store

import (
	"github.com/chirpnet/chirp/model"
	"github.com/pkg/errors"
)

// LikeTweet is idempotent: re-liking an already liked tweet returns the
// existing record.
func (s *Store) LikeTweet(userID string, tweetID string) (*model.Like, error) {
	if _, err := s.GetTweet(tweetID); err != nil {
		return nil, err
	}
	like := model.Like{UserID: userID, TweetID: tweetID}
	if err := s.db.Where(&model.Like{UserID: userID, TweetID: tweetID}).
		FirstOrCreate(&like).Error; err != nil {
		return nil, errors.Wrap(err, "fail to like tweet")
	}
	return &like, nil
}

func (s *Store) UnlikeTweet(userID string, tweetID string) error {
	if err := s.db.Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Delete(&model.Like{}).Error; err != nil {
		return errors.Wrap(err, "fail to unlike tweet")
	}
	return nil
}

// BookmarkTweet is idempotent the same way LikeTweet is.
func (s *Store) BookmarkTweet(userID string, tweetID string) (*model.Bookmark, error) {
	if _, err := s.GetTweet(tweetID); err != nil {
		return nil, err
	}
	bookmark := model.Bookmark{UserID: userID, TweetID: tweetID}
	if err := s.db.Where(&model.Bookmark{UserID: userID, TweetID: tweetID}).
		FirstOrCreate(&bookmark).Error; err != nil {
		return nil, errors.Wrap(err, "fail to bookmark tweet")
	}
	return &bookmark, nil
}

func (s *Store) UnbookmarkTweet(userID string, tweetID string) error {
	if err := s.db.Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Delete(&model.Bookmark{}).Error; err != nil {
		return errors.Wrap(err, "fail to unbookmark tweet")
	}
	return nil
}

// BookmarkedTweets returns every tweet the user has bookmarked.
func (s *Store) BookmarkedTweets(userID string) ([]*model.Tweet, error) {
	var tweetIDs []string
	if err := s.db.Model(&model.Bookmark{}).
		Where("user_id = ?", userID).
		Pluck("tweet_id", &tweetIDs).Error; err != nil {
		return nil, errors.Wrap(err, "fail to list bookmarks")
	}
	if len(tweetIDs) == 0 {
		return []*model.Tweet{}, nil
	}
	var tweets []*model.Tweet
	if err := s.db.Preload("Author").Preload("Author.Circle").
		Where("id IN ?", tweetIDs).Find(&tweets).Error; err != nil {
		return nil, errors.Wrap(err, "fail to load bookmarked tweets")
	}
	return tweets, nil
}

type countRow struct {
	TweetID string
	Count   int64
}

// LikeCounts groups like records per tweet id over the whole batch.
func (s *Store) LikeCounts(tweetIDs []string) (map[string]int64, error) {
	return s.pairCounts(&model.Like{}, tweetIDs)
}

// BookmarkCounts groups bookmark records per tweet id over the whole batch.
func (s *Store) BookmarkCounts(tweetIDs []string) (map[string]int64, error) {
	return s.pairCounts(&model.Bookmark{}, tweetIDs)
}

func (s *Store) pairCounts(pairModel interface{}, tweetIDs []string) (map[string]int64, error) {
	counts := map[string]int64{}
	if len(tweetIDs) == 0 {
		return counts, nil
	}
	var rows []countRow
	if err := s.db.Model(pairModel).
		Select("tweet_id, COUNT(*) AS count").
		Where("tweet_id IN ?", tweetIDs).
		Group("tweet_id").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "fail to count engagement")
	}
	for _, row := range rows {
		counts[row.TweetID] = row.Count
	}
	return counts, nil
}

// LikedSet returns the tweet ids among tweetIDs that userID has liked.
func (s *Store) LikedSet(tweetIDs []string, userID string) (map[string]bool, error) {
	return s.pairSet(&model.Like{}, tweetIDs, userID)
}

// BookmarkedSet returns the tweet ids among tweetIDs that userID has
// bookmarked.
func (s *Store) BookmarkedSet(tweetIDs []string, userID string) (map[string]bool, error) {
	return s.pairSet(&model.Bookmark{}, tweetIDs, userID)
}

func (s *Store) pairSet(pairModel interface{}, tweetIDs []string, userID string) (map[string]bool, error) {
	set := map[string]bool{}
	if len(tweetIDs) == 0 || userID == "" {
		return set, nil
	}
	var ids []string
	if err := s.db.Model(pairModel).
		Where("tweet_id IN ? AND user_id = ?", tweetIDs, userID).
		Pluck("tweet_id", &ids).Error; err != nil {
		return nil, errors.Wrap(err, "fail to load viewer engagement")
	}
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

type childCountRow struct {
	ParentID string
	Type     model.TweetType
	Count    int64
}

// ChildCounts groups child tweets by (parent, type) over the whole batch,
// the sizes of which become the retweet/comment/quote counters.
func (s *Store) ChildCounts(tweetIDs []string) (map[string]map[model.TweetType]int64, error) {
	counts := map[string]map[model.TweetType]int64{}
	if len(tweetIDs) == 0 {
		return counts, nil
	}
	var rows []childCountRow
	if err := s.db.Model(&model.Tweet{}).
		Select("parent_id, type, COUNT(*) AS count").
		Where("parent_id IN ?", tweetIDs).
		Group("parent_id, type").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "fail to count child tweets")
	}
	for _, row := range rows {
		if counts[row.ParentID] == nil {
			counts[row.ParentID] = map[model.TweetType]int64{}
		}
		counts[row.ParentID][row.Type] = row.Count
	}
	return counts, nil
}

type hashtagRow struct {
	TweetID string
	Name    string
}

// HashtagNames resolves the ordered hashtag name list per tweet over the
// whole batch.
func (s *Store) HashtagNames(tweetIDs []string) (map[string][]string, error) {
	names := map[string][]string{}
	if len(tweetIDs) == 0 {
		return names, nil
	}
	var rows []hashtagRow
	if err := s.db.Table("tweet_hashtags").
		Select("tweet_hashtags.tweet_id, hashtags.name").
		Joins("JOIN hashtags ON hashtags.id = tweet_hashtags.hashtag_id").
		Where("tweet_hashtags.tweet_id IN ?", tweetIDs).
		// Oldest hashtag identity first, so a tweet's tag list is stable
		// across reads.
		Order("hashtags.created_at asc").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "fail to load hashtags")
	}
	for _, row := range rows {
		names[row.TweetID] = append(names[row.TweetID], row.Name)
	}
	return names, nil
}

type mentionRow struct {
	TweetID  string
	Id       string
	Name     string
	Username string
	Avatar   string
}

// MentionsByTweet resolves mention user summaries per tweet over the whole
// batch. Only safe summary fields are selected; sensitive user columns
// never enter this query.
func (s *Store) MentionsByTweet(tweetIDs []string) (map[string][]model.UserSummary, error) {
	mentions := map[string][]model.UserSummary{}
	if len(tweetIDs) == 0 {
		return mentions, nil
	}
	var rows []mentionRow
	if err := s.db.Table("tweet_mentions").
		Select("tweet_mentions.tweet_id, users.id, users.name, users.username, users.avatar").
		Joins("JOIN users ON users.id = tweet_mentions.user_id").
		Where("tweet_mentions.tweet_id IN ?", tweetIDs).
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "fail to load mentions")
	}
	for _, row := range rows {
		mentions[row.TweetID] = append(mentions[row.TweetID], model.UserSummary{
			Id:       row.Id,
			Name:     row.Name,
			Username: row.Username,
			Avatar:   row.Avatar,
		})
	}
	return mentions, nil
}
