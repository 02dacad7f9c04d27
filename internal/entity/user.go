package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// User carries the wallet columns owned by the ledger. Level is derived from
// XP and is never written independently.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username  string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Role      string    `gorm:"size:20;not null;default:member" json:"role"`
	XP        int       `gorm:"not null;default:0" json:"xp"`
	Level     int       `gorm:"not null;default:1" json:"level"`
	Points    int       `gorm:"not null;default:0" json:"points"`
	AvatarURL *string   `gorm:"type:text" json:"avatar_url,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Level == 0 {
		u.Level = 1
	}
	return nil
}

type Friendship struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_friend_pair,priority:1" json:"user_id"`
	FriendID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_friend_pair,priority:2" json:"friend_id"`
	CreatedAt time.Time `json:"created_at"`
}
