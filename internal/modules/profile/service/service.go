package profile

import (
	"context"
	"fmt"

	activityService "anoa.com/kitaplik/internal/modules/activity/service"
	badgeService "anoa.com/kitaplik/internal/modules/badge/service"
	bookService "anoa.com/kitaplik/internal/modules/book/service"
	leaderboard "anoa.com/kitaplik/internal/modules/leaderboard/service"
	profileDto "anoa.com/kitaplik/internal/modules/profile/dto"
	questService "anoa.com/kitaplik/internal/modules/quest/service"
	userRepo "anoa.com/kitaplik/internal/modules/user/repository"
	"anoa.com/kitaplik/pkg/dbctx"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const recentActivityLimit = 10

type ProfileService interface {
	GetProgress(ctx context.Context, userID uuid.UUID) (*profileDto.ProgressResponse, error)
	GetProfileByUsername(ctx context.Context, username string) (*profileDto.PublicProfileResponse, error)
}

type profileService struct {
	users       userRepo.UserRepository
	leaderboard leaderboard.LeaderboardService
	badges      badgeService.BadgeService
	goals       bookService.BookService
	quests      questService.QuestService
	activity    activityService.ActivityService
}

func NewProfileService(
	users userRepo.UserRepository,
	leaderboard leaderboard.LeaderboardService,
	badges badgeService.BadgeService,
	goals bookService.BookService,
	quests questService.QuestService,
	activity activityService.ActivityService,
) ProfileService {
	return &profileService{
		users:       users,
		leaderboard: leaderboard,
		badges:      badges,
		goals:       goals,
		quests:      quests,
		activity:    activity,
	}
}

func (s *profileService) GetProgress(ctx context.Context, userID uuid.UUID) (*profileDto.ProgressResponse, error) {
	user, err := s.users.FindByID(dbctx.New(ctx), userID)
	if err != nil {
		return nil, err
	}
	res := &profileDto.ProgressResponse{
		UserID:   user.ID.String(),
		Username: user.Username,
		Points:   user.Points,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		st, err := s.leaderboard.LevelStatusFor(gctx, userID, user.XP)
		if err != nil {
			return fmt.Errorf("level status: %w", err)
		}
		res.LevelStatus = st
		return nil
	})
	g.Go(func() error {
		badges, err := s.badges.UserBadges(dbctx.New(gctx), userID)
		if err != nil {
			return fmt.Errorf("badges: %w", err)
		}
		res.Badges = badges
		return nil
	})
	g.Go(func() error {
		goal, err := s.goals.CurrentGoal(gctx, userID)
		if err != nil {
			return fmt.Errorf("reading goal: %w", err)
		}
		res.ReadingGoal = goal
		return nil
	})
	g.Go(func() error {
		quests, err := s.quests.ActiveQuests(dbctx.New(gctx), userID)
		if err != nil {
			return fmt.Errorf("quests: %w", err)
		}
		res.Quests = quests
		return nil
	})
	g.Go(func() error {
		history, err := s.activity.History(dbctx.New(gctx), userID, recentActivityLimit)
		if err != nil {
			return fmt.Errorf("activity: %w", err)
		}
		res.RecentActivity = history
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *profileService) GetProfileByUsername(ctx context.Context, username string) (*profileDto.PublicProfileResponse, error) {
	dbc := dbctx.New(ctx)
	user, err := s.users.FindByUsername(dbc, username)
	if err != nil {
		return nil, err
	}
	status, err := s.leaderboard.LevelStatusFor(ctx, user.ID, user.XP)
	if err != nil {
		return nil, err
	}
	badges, err := s.badges.UserBadges(dbc, user.ID)
	if err != nil {
		return nil, err
	}
	return &profileDto.PublicProfileResponse{
		Username:    user.Username,
		Role:        user.Role,
		AvatarURL:   user.AvatarURL,
		CreatedAt:   user.CreatedAt,
		LevelStatus: status,
		Badges:      badges,
	}, nil
}
