package model

import "time"

/*

Comment is a standalone comment record attached to a tweet

Id: primary key
UserID:
User: comment author, "belongs-to" relation
TweetID: the commented tweet
ParentID: optional parent comment, forming a one-level reply tree
Content: comment text

Comment records power the threaded comment listing; the comment_count on a
tweet is derived from child tweets of type Comment instead.

*/

type Comment struct {
	Id        string    `gorm:"primaryKey" json:"_id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    string    `gorm:"index" json:"user_id"`
	User      *User     `json:"-"`
	TweetID   string    `gorm:"index" json:"tweet_id"`
	ParentID  *string   `gorm:"index" json:"parent_id"`
	Content   string    `json:"content"`
}

// CommentView is a top-level comment with its author summary and one level
// of replies, as returned by the comment listing.
type CommentView struct {
	Id        string        `json:"_id"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
	User      UserSummary   `json:"user"`
	Replies   []CommentView `json:"replies"`
}
