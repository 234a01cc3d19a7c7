package model

import (
	"time"

	"gorm.io/gorm"
)

/*

User is a registered account

Id: primary key
CreatedAt: time when entity is created
DeletedAt: time when entity is deleted (explicit admin delete only)

Email/Username: unique login identities
Password: bcrypt hash, never serialized
Verify: Unverified -> Verified on email confirmation, -> Banned on moderation
Circle: users granted access to this user's Circle-audience tweets,
        "many-to-many" relation through user_circles

*/

type User struct {
	Id                  string `gorm:"primaryKey" json:"_id"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
	DeletedAt           gorm.DeletedAt   `json:"-"`
	Name                string           `json:"name"`
	Email               string           `gorm:"uniqueIndex" json:"email"`
	Username            string           `gorm:"uniqueIndex" json:"username"`
	Password            string           `json:"-"`
	DateOfBirth         time.Time        `json:"date_of_birth"`
	Bio                 string           `json:"bio"`
	Location            string           `json:"location"`
	Website             string           `json:"website"`
	Avatar              string           `json:"avatar"`
	CoverPhoto          string           `json:"cover_photo"`
	Verify              UserVerifyStatus `json:"verify"`
	EmailVerifyToken    string           `json:"-"`
	ForgotPasswordToken string           `json:"-"`
	Circle              []*User          `json:"-" gorm:"many2many:user_circles;joinForeignKey:UserID;joinReferences:MemberID"`
}

// Summary projects the user down to the fields that are safe to embed in
// tweet payloads. Sensitive fields (password, verify tokens, circle) must
// never travel through this path.
func (u *User) Summary() UserSummary {
	return UserSummary{
		Id:       u.Id,
		Name:     u.Name,
		Username: u.Username,
		Avatar:   u.Avatar,
	}
}

// UserSummary is the lightweight user embedding used for mentions and tweet
// authors.
type UserSummary struct {
	Id       string `json:"_id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}
