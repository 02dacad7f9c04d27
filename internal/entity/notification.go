package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotifLevelUp        = "level_up"
	NotifBadgeEarned    = "badge_earned"
	NotifQuestCompleted = "quest_completed"
	NotifDuelChallenge  = "duel_challenge"
	NotifDuelAccepted   = "duel_accepted"
	NotifDuelRejected   = "duel_rejected"
	NotifDuelLost       = "duel_lost"
	NotifGiftReceived   = "gift_received"
	NotifGoalReached    = "goal_reached"
)

type Notification struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_notif_user,priority:1" json:"user_id"` // User who receives the notification
	ActorID    *uuid.UUID `gorm:"type:uuid" json:"actor_id,omitempty"`                               // User who triggered it, nil for system events
	EntityID   *uuid.UUID `gorm:"type:uuid" json:"entity_id,omitempty"`
	EntityType string     `gorm:"size:50;not null" json:"entity_type"` // 'duel', 'gift', 'quest', 'badge', 'user'
	Type       string     `gorm:"size:50;not null" json:"type"`
	Message    string     `gorm:"type:text" json:"message"`
	IsRead     bool       `gorm:"default:false" json:"is_read"`
	CreatedAt  time.Time  `gorm:"index:idx_notif_user,priority:2" json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
