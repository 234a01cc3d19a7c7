package model

import "time"

/*

Bookmark is a "many-to-many" relation of user bookmarking a tweet

UserID: user id
TweetID: tweet id
CreatedAt: time when relation is created

At most one Bookmark exists per (user, tweet); creation is idempotent.

*/

type Bookmark struct {
	UserID    string `gorm:"primaryKey" json:"user_id"`
	TweetID   string `gorm:"primaryKey" json:"tweet_id"`
	CreatedAt time.Time
}
