package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityType string

const (
	ActivityFinishedReading ActivityType = "FINISHED_READING"
	ActivityTriviaCompleted ActivityType = "TRIVIA_COMPLETED"
	ActivityFriendAdded     ActivityType = "FRIEND_ADDED"
)

// ActivityRecord is append-only. It doubles as history and as the dedup guard
// for reward-granting actions.
type ActivityRecord struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID    `gorm:"type:uuid;not null;index:idx_activity_guard,priority:1" json:"user_id"`
	Type      ActivityType `gorm:"size:40;not null;index:idx_activity_guard,priority:2" json:"type"`
	TargetID  string       `gorm:"size:64;not null;index:idx_activity_guard,priority:3" json:"target_id"`
	CreatedAt time.Time    `gorm:"not null;index:idx_activity_guard,priority:4" json:"created_at"`
}

// XPLog is the append-only history of XP credits, summed for period leaderboards.
type XPLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;index:idx_xp_user_date,priority:1;not null" json:"user_id"`
	Amount      int       `gorm:"not null" json:"amount"`
	Source      string    `gorm:"size:50;not null" json:"source"` // 'book_completed', 'quest_claimed', 'duel_won', 'trivia'
	ReferenceID string    `gorm:"size:64" json:"reference_id"`
	CreatedAt   time.Time `gorm:"index:idx_xp_user_date,priority:2;index:idx_xp_date" json:"created_at"`
}

type QuestMetric string

const (
	MetricReadPages     QuestMetric = "READ_PAGES"
	MetricFinishBook    QuestMetric = "FINISH_BOOK"
	MetricAddFriend     QuestMetric = "ADD_FRIEND"
	MetricTriviaCorrect QuestMetric = "TRIVIA_CORRECT"
	MetricSendGift      QuestMetric = "SEND_GIFT"
	MetricWinDuel       QuestMetric = "WIN_DUEL"
)

// QuestProgress is created lazily per (user, quest, period). Target and reward
// are copied from the template so a catalog edit never changes a running quest.
type QuestProgress struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_quest_period,priority:1" json:"user_id"`
	QuestKey    string      `gorm:"size:64;not null;uniqueIndex:idx_quest_period,priority:2" json:"quest_key"`
	PeriodKey   string      `gorm:"size:16;not null;uniqueIndex:idx_quest_period,priority:3" json:"period_key"`
	Metric      QuestMetric `gorm:"size:32;not null;index" json:"metric"`
	PeriodEnd   time.Time   `gorm:"not null;index" json:"period_end"`
	Target      int         `gorm:"not null" json:"target"`
	XPReward    int         `gorm:"not null" json:"xp_reward"`
	Progress    int         `gorm:"not null;default:0" json:"progress"`
	Completed   bool        `gorm:"not null;default:false" json:"completed"`
	Claimed     bool        `gorm:"not null;default:false" json:"claimed"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
	ClaimedAt   *time.Time  `json:"claimed_at,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (q *QuestProgress) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

type Badge struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Icon        string `gorm:"size:32" json:"icon"`
}

type UserBadge struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_badge,priority:1" json:"user_id"`
	BadgeID  uint      `gorm:"not null;uniqueIndex:idx_user_badge,priority:2" json:"badge_id"`
	Badge    Badge     `gorm:"constraint:OnDelete:CASCADE" json:"badge"`
	EarnedAt time.Time `gorm:"not null" json:"earned_at"`
}

type DuelStatus string

const (
	DuelPending   DuelStatus = "PENDING"
	DuelActive    DuelStatus = "ACTIVE"
	DuelCompleted DuelStatus = "COMPLETED"
	DuelRejected  DuelStatus = "REJECTED"
)

// Duel.ActiveKey holds the unordered pair + book key while the duel is PENDING
// or ACTIVE and is NULL once terminal; its unique index allows one live duel
// per pair and book.
type Duel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ChallengerID uuid.UUID  `gorm:"type:uuid;not null;index" json:"challenger_id"`
	OpponentID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"opponent_id"`
	BookID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"book_id"`
	Status       DuelStatus `gorm:"size:16;not null;index" json:"status"`
	WinnerID     *uuid.UUID `gorm:"type:uuid" json:"winner_id,omitempty"`
	ActiveKey    *string    `gorm:"size:120;uniqueIndex" json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (d *Duel) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// Gift records a committed points transfer between two users.
type Gift struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SenderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"sender_id"`
	ReceiverID uuid.UUID `gorm:"type:uuid;not null;index" json:"receiver_id"`
	Amount     int       `gorm:"not null" json:"amount"`
	Note       string    `gorm:"size:280" json:"note"`
	CreatedAt  time.Time `json:"created_at"`
}

func (g *Gift) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

type TriviaQuestion struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Question    string    `gorm:"type:text;not null" json:"question"`
	Options     []string  `gorm:"serializer:json;type:text;not null" json:"options"`
	AnswerIndex int       `gorm:"not null" json:"-"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
