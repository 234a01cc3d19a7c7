package model

import "time"

/*

Like is a "many-to-many" relation of user liking a tweet

UserID: user id
TweetID: tweet id
CreatedAt: time when relation is created

At most one Like exists per (user, tweet); creation is idempotent.

*/

type Like struct {
	UserID    string `gorm:"primaryKey" json:"user_id"`
	TweetID   string `gorm:"primaryKey" json:"tweet_id"`
	CreatedAt time.Time
}
