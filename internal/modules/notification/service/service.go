package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"anoa.com/kitaplik/internal/entity"
	notifRepo "anoa.com/kitaplik/internal/modules/notification/repository"
	"anoa.com/kitaplik/pkg/apperror"
	"anoa.com/kitaplik/pkg/clock"
	"anoa.com/kitaplik/pkg/dbctx"
	"anoa.com/kitaplik/pkg/logger"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Channel is the Redis pub/sub channel carrying a user's notifications.
func Channel(userID uuid.UUID) string {
	return fmt.Sprintf("user_notifications:%s", userID.String())
}

type NotificationService interface {
	// Notify persists n with the caller's transaction and publishes it once
	// that transaction commits.
	Notify(dbc dbctx.Context, n *entity.Notification) error
	GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.Notification, error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	CleanupRead(ctx context.Context, olderThan time.Duration) (int64, error)
}

type notificationService struct {
	repo        notifRepo.NotificationRepository
	redisClient *redis.Client
	clock       clock.Clock
	log         *logger.Logger
}

func NewNotificationService(repo notifRepo.NotificationRepository, redisClient *redis.Client, clk clock.Clock, log *logger.Logger) NotificationService {
	return &notificationService{
		repo:        repo,
		redisClient: redisClient,
		clock:       clk,
		log:         log.With("service", "notification"),
	}
}

func (s *notificationService) Notify(dbc dbctx.Context, n *entity.Notification) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.clock.Now()
	}
	if err := s.repo.Create(dbc, n); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	if s.redisClient != nil {
		payload, err := json.Marshal(n)
		if err != nil {
			s.log.Warn("notification encode failed", "error", err)
			return nil
		}
		channel := Channel(n.UserID)
		dbc.AfterCommit(func(ctx context.Context) {
			if err := s.redisClient.Publish(ctx, channel, payload).Err(); err != nil {
				s.log.Warn("notification publish failed", "channel", channel, "error", err)
			}
		})
	}
	return nil
}

func (s *notificationService) GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.Notification, error) {
	return s.repo.GetByUserID(dbctx.New(ctx), userID, limit, offset)
}

func (s *notificationService) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	ok, err := s.repo.MarkAsRead(dbctx.New(ctx), id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.ErrNotFound
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(dbctx.New(ctx), userID)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(dbctx.New(ctx), userID)
}

func (s *notificationService) CleanupRead(ctx context.Context, olderThan time.Duration) (int64, error) {
	return s.repo.DeleteReadBefore(dbctx.New(ctx), s.clock.Now().Add(-olderThan))
}
