package model

import (
	"time"

	"gorm.io/gorm"
)

/*

CircleMembership is a "many-to-many" relation granting MemberID access to
UserID's Circle-audience tweets

UserID: circle owner
MemberID: user granted access
CreatedAt: time when relation is created
DeletedAt: time when relation is deleted

*/

type CircleMembership struct {
	UserID    string `gorm:"primaryKey"`
	MemberID  string `gorm:"primaryKey"`
	CreatedAt time.Time
	DeletedAt gorm.DeletedAt
}

func (CircleMembership) TableName() string {
	return "user_circles"
}
