package model

import "time"

/*

Follower is a "many-to-many" relation of user following another user

UserID: the follower
FollowedUserID: the followed user
CreatedAt: time when relation is created

Unique per pair; follow and unfollow are both idempotent.

*/

type Follower struct {
	UserID         string `gorm:"primaryKey" json:"user_id"`
	FollowedUserID string `gorm:"primaryKey" json:"followed_user_id"`
	CreatedAt      time.Time
}
