package repository

import (
	"time"

	"anoa.com/kitaplik/internal/entity"
	"anoa.com/kitaplik/pkg/dbctx"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityRepository interface {
	ExistsSince(dbc dbctx.Context, userID uuid.UUID, activityType entity.ActivityType, targetID string, since time.Time) (bool, error)
	Create(dbc dbctx.Context, record *entity.ActivityRecord) error
	ListByUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]entity.ActivityRecord, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) ExistsSince(dbc dbctx.Context, userID uuid.UUID, activityType entity.ActivityType, targetID string, since time.Time) (bool, error) {
	var count int64
	err := dbc.DB(r.db).Model(&entity.ActivityRecord{}).
		Where("user_id = ? AND type = ? AND target_id = ? AND created_at >= ?", userID, activityType, targetID, since).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}

func (r *activityRepository) Create(dbc dbctx.Context, record *entity.ActivityRecord) error {
	return dbc.DB(r.db).Create(record).Error
}

func (r *activityRepository) ListByUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]entity.ActivityRecord, error) {
	var records []entity.ActivityRecord
	err := dbc.DB(r.db).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&records).Error
	return records, err
}
