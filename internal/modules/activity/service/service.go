package service

import (
	"fmt"
	"time"

	"anoa.com/kitaplik/internal/entity"
	activityRepo "anoa.com/kitaplik/internal/modules/activity/repository"
	"anoa.com/kitaplik/pkg/clock"
	"anoa.com/kitaplik/pkg/dbctx"
	"github.com/google/uuid"
)

// ActivityService is the append-only dedup log guarding reward-granting actions.
type ActivityService interface {
	// RecordActivityIfAbsent returns true when a new record was inserted and
	// false when the same (user, type, target) was already recorded within
	// window. Callers hold the user's wallet lock so the probe and insert are
	// serialized per user.
	RecordActivityIfAbsent(dbc dbctx.Context, userID uuid.UUID, activityType entity.ActivityType, targetID string, window time.Duration) (bool, error)
	History(dbc dbctx.Context, userID uuid.UUID, limit int) ([]entity.ActivityRecord, error)
}

type activityService struct {
	repo  activityRepo.ActivityRepository
	clock clock.Clock
}

func NewActivityService(repo activityRepo.ActivityRepository, clk clock.Clock) ActivityService {
	return &activityService{repo: repo, clock: clk}
}

func (s *activityService) RecordActivityIfAbsent(dbc dbctx.Context, userID uuid.UUID, activityType entity.ActivityType, targetID string, window time.Duration) (bool, error) {
	now := s.clock.Now()
	if window > 0 {
		exists, err := s.repo.ExistsSince(dbc, userID, activityType, targetID, now.Add(-window))
		if err != nil {
			return false, fmt.Errorf("probe activity: %w", err)
		}
		if exists {
			return false, nil
		}
	}

	if err := s.repo.Create(dbc, &entity.ActivityRecord{
		UserID:    userID,
		Type:      activityType,
		TargetID:  targetID,
		CreatedAt: now,
	}); err != nil {
		return false, fmt.Errorf("record activity: %w", err)
	}
	return true, nil
}

func (s *activityService) History(dbc dbctx.Context, userID uuid.UUID, limit int) ([]entity.ActivityRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ListByUser(dbc, userID, limit)
}
