package model

import "time"

/*

TweetView is the decorated read shape of a tweet: the core record joined
with resolved hashtags, mention summaries, engagement counts and the
per-viewer flags. It is what every feed and single-tweet read returns.

View is always GuestView + UserView and reflects the post-increment state
of the request that produced it.

*/

type TweetView struct {
	Id            string        `json:"_id"`
	AuthorID      string        `json:"user_id"`
	Author        *UserSummary  `json:"user,omitempty" copier:"-"`
	Type          TweetType     `json:"type"`
	Audience      TweetAudience `json:"audience"`
	Content       string        `json:"content"`
	ParentID      *string       `json:"parent_id"`
	Hashtags      []string      `json:"hashtags" copier:"-"`
	Mentions      []UserSummary `json:"mentions" copier:"-"`
	Medias        []Media       `json:"medias" copier:"-"`
	LikeCount     int64         `json:"likes"`
	BookmarkCount int64         `json:"bookmarks"`
	RetweetCount  int64         `json:"retweet_count"`
	CommentCount  int64         `json:"comment_count"`
	QuoteCount    int64         `json:"quote_count"`
	IsLiked       bool          `json:"is_liked"`
	IsBookmarked  bool          `json:"is_bookmarked"`
	GuestView     int64         `json:"guest_view"`
	UserView      int64         `json:"user_view"`
	View          int64         `json:"view"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// FeedPage is one decorated, paginated page of tweets plus the metadata the
// client needs for page-count computation.
type FeedPage struct {
	Result    []*TweetView `json:"result"`
	Limit     int          `json:"limit"`
	Page      int          `json:"page"`
	TotalPage int          `json:"total_page"`
}
