package repository

import (
	"errors"

	"anoa.com/kitaplik/internal/entity"
	"anoa.com/kitaplik/pkg/apperror"
	"anoa.com/kitaplik/pkg/dbctx"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BadgeRepository interface {
	FindByName(dbc dbctx.Context, name string) (*entity.Badge, error)
	// InsertIfAbsent reports whether a new user badge row was written.
	InsertIfAbsent(dbc dbctx.Context, ub *entity.UserBadge) (bool, error)
	ListForUser(dbc dbctx.Context, userID uuid.UUID) ([]entity.UserBadge, error)
}

type badgeRepository struct {
	db *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) BadgeRepository {
	return &badgeRepository{db: db}
}

func (r *badgeRepository) FindByName(dbc dbctx.Context, name string) (*entity.Badge, error) {
	var badge entity.Badge
	if err := dbc.DB(r.db).Where("name = ?", name).First(&badge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &badge, nil
}

func (r *badgeRepository) InsertIfAbsent(dbc dbctx.Context, ub *entity.UserBadge) (bool, error) {
	res := dbc.DB(r.db).Omit("Badge").Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "badge_id"}},
		DoNothing: true,
	}).Create(ub)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *badgeRepository) ListForUser(dbc dbctx.Context, userID uuid.UUID) ([]entity.UserBadge, error) {
	var badges []entity.UserBadge
	err := dbc.DB(r.db).
		Preload("Badge").
		Where("user_id = ?", userID).
		Order("earned_at asc").
		Find(&badges).Error
	return badges, err
}
