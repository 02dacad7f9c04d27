package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShelfStatus string

const (
	ShelfWantToRead ShelfStatus = "WANT_TO_READ"
	ShelfReading    ShelfStatus = "READING"
	ShelfRead       ShelfStatus = "READ"
)

type Book struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	Author     string    `gorm:"size:150;not null;index" json:"author"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id"`
	Category   Category  `gorm:"constraint:OnDelete:RESTRICT" json:"category"`
	Pages      int       `gorm:"not null;default:0" json:"pages"`
	CoverURL   *string   `gorm:"type:text" json:"cover_url,omitempty"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (b *Book) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID, err = uuid.NewV7()
	}
	return
}

// UserBook is a shelf entry: one per (user, book).
type UserBook struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	UserID     uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_shelf_entry,priority:1;index:idx_shelf_finished,priority:1" json:"user_id"`
	BookID     uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_shelf_entry,priority:2" json:"book_id"`
	Book       Book        `gorm:"constraint:OnDelete:CASCADE" json:"book"`
	Status     ShelfStatus `gorm:"size:20;not null" json:"status"`
	FinishedAt *time.Time  `gorm:"index:idx_shelf_finished,priority:2" json:"finished_at,omitempty"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

type ReadingGoal struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_goal_year,priority:1" json:"user_id"`
	Year      int       `gorm:"not null;uniqueIndex:idx_goal_year,priority:2" json:"year"`
	Target    int       `gorm:"not null" json:"target"`
	Completed int       `gorm:"not null;default:0" json:"completed"`
}
