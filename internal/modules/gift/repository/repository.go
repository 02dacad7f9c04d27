package repository

import (
	"anoa.com/kitaplik/internal/entity"
	"anoa.com/kitaplik/pkg/dbctx"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GiftRepository interface {
	Create(dbc dbctx.Context, gift *entity.Gift) error
	ListForUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]entity.Gift, error)
}

type giftRepository struct {
	db *gorm.DB
}

func NewGiftRepository(db *gorm.DB) GiftRepository {
	return &giftRepository{db: db}
}

func (r *giftRepository) Create(dbc dbctx.Context, gift *entity.Gift) error {
	return dbc.DB(r.db).Create(gift).Error
}

// ListForUser returns gifts the user sent or received, newest first.
func (r *giftRepository) ListForUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]entity.Gift, error) {
	var gifts []entity.Gift
	q := dbc.DB(r.db).
		Where("(sender_id = ? OR receiver_id = ?)", userID, userID).
		Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&gifts).Error
	return gifts, err
}
