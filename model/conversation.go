package model

import "time"

/*

Conversation is a persisted direct message between two users

Id: primary key
SenderID / ReceiverID: the two parties
Content: message text

Messages are persisted on send regardless of whether the receiver is
connected; delivery over the realtime channel is best-effort.

*/

type Conversation struct {
	Id         string    `gorm:"primaryKey" json:"_id"`
	CreatedAt  time.Time `json:"created_at"`
	SenderID   string    `gorm:"index" json:"sender_id"`
	ReceiverID string    `gorm:"index" json:"receiver_id"`
	Content    string    `json:"content"`
}
