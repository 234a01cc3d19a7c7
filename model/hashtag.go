package model

import "time"

/*

Hashtag is a normalized hashtag identity

Id: primary key
Name: normalized tag text, unique; records are created lazily the first time
      a tweet references the name and are never updated or deleted here

*/

type Hashtag struct {
	Id        string `gorm:"primaryKey" json:"_id"`
	CreatedAt time.Time
	Name      string `gorm:"uniqueIndex" json:"name"`
}
