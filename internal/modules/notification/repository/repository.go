package repository

import (
	"time"

	"anoa.com/kitaplik/internal/entity"
	"anoa.com/kitaplik/pkg/dbctx"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(dbc dbctx.Context, notification *entity.Notification) error
	GetByUserID(dbc dbctx.Context, userID uuid.UUID, limit, offset int) ([]entity.Notification, error)
	MarkAsRead(dbc dbctx.Context, id, userID uuid.UUID) (bool, error)
	MarkAllAsRead(dbc dbctx.Context, userID uuid.UUID) error
	CountUnread(dbc dbctx.Context, userID uuid.UUID) (int64, error)
	DeleteReadBefore(dbc dbctx.Context, cutoff time.Time) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(dbc dbctx.Context, notification *entity.Notification) error {
	return dbc.DB(r.db).Create(notification).Error
}

func (r *notificationRepository) GetByUserID(dbc dbctx.Context, userID uuid.UUID, limit, offset int) ([]entity.Notification, error) {
	var notifications []entity.Notification
	err := dbc.DB(r.db).Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error
	return notifications, err
}

// MarkAsRead only touches notifications owned by userID.
func (r *notificationRepository) MarkAsRead(dbc dbctx.Context, id, userID uuid.UUID) (bool, error) {
	res := dbc.DB(r.db).Model(&entity.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	return res.RowsAffected > 0, res.Error
}

func (r *notificationRepository) MarkAllAsRead(dbc dbctx.Context, userID uuid.UUID) error {
	return dbc.DB(r.db).Model(&entity.Notification{}).Where("user_id = ? AND is_read = ?", userID, false).Update("is_read", true).Error
}

func (r *notificationRepository) CountUnread(dbc dbctx.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := dbc.DB(r.db).Model(&entity.Notification{}).Where("user_id = ? AND is_read = ?", userID, false).Count(&count).Error
	return count, err
}

func (r *notificationRepository) DeleteReadBefore(dbc dbctx.Context, cutoff time.Time) (int64, error) {
	res := dbc.DB(r.db).Where("is_read = ? AND created_at < ?", true, cutoff).Delete(&entity.Notification{})
	return res.RowsAffected, res.Error
}
