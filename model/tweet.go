package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/*

Tweet is a single posted message

Id: primary key
AuthorID:
Author: the posting user, "belongs-to" relation

Type: Original | Retweet | Comment | QuoteTweet
Audience: Everyone | Circle
Content: plain text, required for Original/Comment/QuoteTweet, empty for Retweet
ParentID: referenced tweet for Retweet/Comment/QuoteTweet, nil for Original

Hashtags: resolved hashtag records, "many-to-many" relation
Mentions: mentioned users, "many-to-many" relation
Medias: attached media descriptors, JSON column

GuestView/UserView: read counters, incremented atomically per qualifying read

*/

type Tweet struct {
	Id        string `gorm:"primaryKey" json:"_id"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `json:"-"`
	AuthorID  string         `gorm:"index" json:"user_id"`
	Author    *User          `gorm:"foreignKey:AuthorID" json:"-"`
	Type      TweetType      `json:"type"`
	Audience  TweetAudience  `json:"audience"`
	Content   string         `json:"content"`
	ParentID  *string        `gorm:"index" json:"parent_id"`
	Hashtags  []*Hashtag     `gorm:"many2many:tweet_hashtags;" json:"-"`
	Mentions  []*User        `gorm:"many2many:tweet_mentions;" json:"-"`
	Medias    datatypes.JSON `json:"medias"`
	GuestView int64          `json:"guest_view"`
	UserView  int64          `json:"user_view"`
}

// Media is a single attached media descriptor as stored in the Medias JSON
// column.
type Media struct {
	Url  string    `json:"url"`
	Type MediaType `json:"type"`
}

// MediaList decodes the Medias JSON column. A nil or empty column decodes to
// an empty list.
func (t *Tweet) MediaList() []Media {
	if len(t.Medias) == 0 {
		return []Media{}
	}
	var medias []Media
	if err := json.Unmarshal(t.Medias, &medias); err != nil {
		return []Media{}
	}
	return medias
}

// MediasColumn encodes media descriptors for the Medias JSON column.
func MediasColumn(medias []Media) datatypes.JSON {
	if medias == nil {
		medias = []Media{}
	}
	raw, _ := json.Marshal(medias)
	return datatypes.JSON(raw)
}
