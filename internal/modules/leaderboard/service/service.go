package service

import (
	"context"
	"time"

	leaderboardDto "anoa.com/kitaplik/internal/modules/leaderboard/dto"
	leaderboardRepo "anoa.com/kitaplik/internal/modules/leaderboard/repository"
	"anoa.com/kitaplik/pkg/clock"
	"anoa.com/kitaplik/pkg/dbctx"
	commonDto "anoa.com/kitaplik/pkg/dto"
	"github.com/google/uuid"
)

const (
	TimeframeAllTime = "all_time"
	TimeframeWeekly  = "weekly"
	TimeframeMonthly = "monthly"

	weekWindow  = 7 * 24 * time.Hour
	monthWindow = 30 * 24 * time.Hour
)

type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, limit int, timeframe string) ([]leaderboardDto.LeaderboardEntry, error)
	// LevelStatusFor returns the status of a single user with weekly context.
	LevelStatusFor(ctx context.Context, userID uuid.UUID, xp int) (commonDto.LevelStatus, error)
}

type leaderboardService struct {
	repo  leaderboardRepo.LeaderboardRepository
	clock clock.Clock
}

func NewLeaderboardService(repo leaderboardRepo.LeaderboardRepository, clk clock.Clock) LeaderboardService {
	return &leaderboardService{repo: repo, clock: clk}
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context, limit int, timeframe string) ([]leaderboardDto.LeaderboardEntry, error) {
	dbc := dbctx.New(ctx)
	now := s.clock.Now()
	weekStart := now.Add(-weekWindow)

	var (
		rows []leaderboardRepo.Standing
		err  error
	)
	switch timeframe {
	case TimeframeWeekly:
		rows, err = s.repo.TopSince(dbc, weekStart, limit)
	case TimeframeMonthly:
		rows, err = s.repo.TopSince(dbc, now.Add(-monthWindow), limit)
	default:
		rows, err = s.repo.TopAllTime(dbc, limit)
	}
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.UserID)
	}
	weekly, err := s.repo.XPSince(dbc, ids, weekStart)
	if err != nil {
		return nil, err
	}

	entries := make([]leaderboardDto.LeaderboardEntry, 0, len(rows))
	for i, r := range rows {
		entries = append(entries, leaderboardDto.LeaderboardEntry{
			UserID:      r.UserID.String(),
			Username:    r.Username,
			AvatarURL:   r.AvatarURL,
			Role:        r.Role,
			Position:    i + 1,
			PeriodXP:    r.PeriodXP,
			LevelStatus: GetLevelStatus(r.XP, weekly[r.UserID]),
		})
	}
	return entries, nil
}

func (s *leaderboardService) LevelStatusFor(ctx context.Context, userID uuid.UUID, xp int) (commonDto.LevelStatus, error) {
	weekly, err := s.repo.XPSince(dbctx.New(ctx), []uuid.UUID{userID}, s.clock.Now().Add(-weekWindow))
	if err != nil {
		return commonDto.LevelStatus{}, err
	}
	return GetLevelStatus(xp, weekly[userID]), nil
}
