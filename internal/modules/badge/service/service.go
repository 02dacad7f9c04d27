package service

import (
	"fmt"

	"anoa.com/kitaplik/internal/entity"
	badgeRepo "anoa.com/kitaplik/internal/modules/badge/repository"
	notifService "anoa.com/kitaplik/internal/modules/notification/service"
	"anoa.com/kitaplik/pkg/clock"
	"anoa.com/kitaplik/pkg/dbctx"
	"anoa.com/kitaplik/pkg/logger"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
)

const badgeCacheSize = 64

type BadgeService interface {
	// AwardBadgeIfEligible grants badgeName at most once per user. It returns
	// true only when this call created the grant.
	AwardBadgeIfEligible(dbc dbctx.Context, userID uuid.UUID, badgeName string, eligible bool) (bool, error)
	UserBadges(dbc dbctx.Context, userID uuid.UUID) ([]entity.UserBadge, error)
}

type badgeService struct {
	repo     badgeRepo.BadgeRepository
	notifier notifService.NotificationService
	clock    clock.Clock
	cache    *lru.Cache
	log      *logger.Logger
}

func NewBadgeService(repo badgeRepo.BadgeRepository, notifier notifService.NotificationService, clk clock.Clock, log *logger.Logger) BadgeService {
	cache, _ := lru.New(badgeCacheSize)
	return &badgeService{
		repo:     repo,
		notifier: notifier,
		clock:    clk,
		cache:    cache,
		log:      log.With("service", "badge"),
	}
}

func (s *badgeService) AwardBadgeIfEligible(dbc dbctx.Context, userID uuid.UUID, badgeName string, eligible bool) (bool, error) {
	if !eligible {
		return false, nil
	}
	badge, err := s.lookup(dbc, badgeName)
	if err != nil {
		return false, fmt.Errorf("badge %q: %w", badgeName, err)
	}

	inserted, err := s.repo.InsertIfAbsent(dbc, &entity.UserBadge{
		UserID:   userID,
		BadgeID:  badge.ID,
		EarnedAt: s.clock.Now(),
	})
	if err != nil {
		return false, fmt.Errorf("award badge %q: %w", badgeName, err)
	}
	if !inserted {
		return false, nil
	}

	if err := s.notifier.Notify(dbc, &entity.Notification{
		UserID:     userID,
		EntityType: "badge",
		Type:       entity.NotifBadgeEarned,
		Message:    fmt.Sprintf("Yeni rozet kazandın: %s", badge.Name),
	}); err != nil {
		return false, err
	}
	return true, nil
}

func (s *badgeService) lookup(dbc dbctx.Context, name string) (*entity.Badge, error) {
	if v, ok := s.cache.Get(name); ok {
		return v.(*entity.Badge), nil
	}
	badge, err := s.repo.FindByName(dbc, name)
	if err != nil {
		return nil, err
	}
	s.cache.Add(name, badge)
	return badge, nil
}

func (s *badgeService) UserBadges(dbc dbctx.Context, userID uuid.UUID) ([]entity.UserBadge, error) {
	return s.repo.ListForUser(dbc, userID)
}
