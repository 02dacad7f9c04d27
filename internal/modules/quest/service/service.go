package service

import (
	"context"
	"fmt"
	"time"

	"anoa.com/kitaplik/internal/catalog"
	"anoa.com/kitaplik/internal/entity"
	ledgerService "anoa.com/kitaplik/internal/modules/ledger/service"
	notifService "anoa.com/kitaplik/internal/modules/notification/service"
	questDto "anoa.com/kitaplik/internal/modules/quest/dto"
	questRepo "anoa.com/kitaplik/internal/modules/quest/repository"
	"anoa.com/kitaplik/pkg/apperror"
	"anoa.com/kitaplik/pkg/clock"
	"anoa.com/kitaplik/pkg/dbctx"
	"anoa.com/kitaplik/pkg/logger"
	"github.com/google/uuid"
)

type QuestService interface {
	// UpdateQuestProgress advances every current-period quest tracking metric
	// and returns the rows that completed during this call. It never credits XP.
	UpdateQuestProgress(dbc dbctx.Context, userID uuid.UUID, metric entity.QuestMetric, amount int) ([]entity.QuestProgress, error)
	// ClaimQuest flips claimed on a completed quest and credits its reward in
	// the same transaction.
	ClaimQuest(dbc dbctx.Context, userID, questProgressID uuid.UUID) (*entity.QuestProgress, error)
	ActiveQuests(dbc dbctx.Context, userID uuid.UUID) ([]questDto.QuestView, error)
	PruneExpired(ctx context.Context, before time.Time) (int64, error)
}

type questService struct {
	repo     questRepo.QuestRepository
	ledger   ledgerService.LedgerService
	notifier notifService.NotificationService
	catalog  *catalog.Catalog
	clock    clock.Clock
	loc      *time.Location
	log      *logger.Logger
}

func NewQuestService(
	repo questRepo.QuestRepository,
	ledger ledgerService.LedgerService,
	notifier notifService.NotificationService,
	cat *catalog.Catalog,
	clk clock.Clock,
	loc *time.Location,
	log *logger.Logger,
) QuestService {
	if loc == nil {
		loc = time.UTC
	}
	return &questService{
		repo:     repo,
		ledger:   ledger,
		notifier: notifier,
		catalog:  cat,
		clock:    clk,
		loc:      loc,
		log:      log.With("service", "quest"),
	}
}

func (s *questService) UpdateQuestProgress(dbc dbctx.Context, userID uuid.UUID, metric entity.QuestMetric, amount int) ([]entity.QuestProgress, error) {
	if amount <= 0 {
		return nil, nil
	}
	templates := s.catalog.QuestsFor(string(metric))
	if len(templates) == 0 {
		return nil, nil
	}

	now := s.clock.Now()
	var completed []entity.QuestProgress
	for _, tpl := range templates {
		periodKey, periodEnd := PeriodFor(tpl.Period, now, s.loc)
		row, err := s.repo.EnsureAndLock(dbc, &entity.QuestProgress{
			UserID:    userID,
			QuestKey:  tpl.Key,
			PeriodKey: periodKey,
			Metric:    metric,
			PeriodEnd: periodEnd,
			Target:    tpl.Target,
			XPReward:  tpl.XPReward,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return nil, fmt.Errorf("load quest %s: %w", tpl.Key, err)
		}
		if row.Completed {
			continue
		}

		next := row.Progress + amount
		if next > row.Target {
			next = row.Target
		}
		var completedAt *time.Time
		if next >= row.Target {
			completedAt = &now
		}
		ok, err := s.repo.AdvanceProgress(dbc, row.ID, next, completedAt)
		if err != nil {
			return nil, fmt.Errorf("advance quest %s: %w", tpl.Key, err)
		}
		if !ok || completedAt == nil {
			continue
		}

		row.Progress = next
		row.Completed = true
		row.CompletedAt = completedAt
		completed = append(completed, *row)

		questID := row.ID
		if err := s.notifier.Notify(dbc, &entity.Notification{
			UserID:     userID,
			EntityID:   &questID,
			EntityType: "quest",
			Type:       entity.NotifQuestCompleted,
			Message:    fmt.Sprintf("\"%s\" görevini tamamladın! %d XP ödülünü almayı unutma.", tpl.Title, row.XPReward),
		}); err != nil {
			return nil, err
		}
	}
	return completed, nil
}

func (s *questService) ClaimQuest(dbc dbctx.Context, userID, questProgressID uuid.UUID) (*entity.QuestProgress, error) {
	row, err := s.repo.LockByID(dbc, questProgressID)
	if err != nil {
		return nil, err
	}
	if row.UserID != userID {
		return nil, apperror.ErrNotFound
	}
	if !row.Completed {
		return nil, apperror.ErrNotCompleted
	}
	if row.Claimed {
		return nil, apperror.ErrAlreadyClaimed
	}

	now := s.clock.Now()
	ok, err := s.repo.MarkClaimed(dbc, row.ID, now)
	if err != nil {
		return nil, fmt.Errorf("claim quest: %w", err)
	}
	if !ok {
		return nil, apperror.ErrAlreadyClaimed
	}
	if _, err := s.ledger.CreditXP(dbc, userID, row.XPReward, ledgerService.SourceQuestClaimed, row.ID.String()); err != nil {
		return nil, err
	}

	row.Claimed = true
	row.ClaimedAt = &now
	return row, nil
}

func (s *questService) ActiveQuests(dbc dbctx.Context, userID uuid.UUID) ([]questDto.QuestView, error) {
	now := s.clock.Now()
	type period struct {
		key string
		end time.Time
	}
	periods := make(map[string]period, 2)
	keys := make([]string, 0, 2)
	for _, p := range []string{catalog.PeriodDaily, catalog.PeriodWeekly} {
		key, end := PeriodFor(p, now, s.loc)
		periods[p] = period{key: key, end: end}
		keys = append(keys, key)
	}

	rows, err := s.repo.ListForPeriods(dbc, userID, keys)
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]entity.QuestProgress, len(rows))
	for _, r := range rows {
		byKey[r.QuestKey+"|"+r.PeriodKey] = r
	}

	views := make([]questDto.QuestView, 0, len(s.catalog.Quests))
	for _, tpl := range s.catalog.Quests {
		p := periods[tpl.Period]
		view := questDto.QuestView{
			Key:       tpl.Key,
			Title:     tpl.Title,
			Metric:    tpl.Metric,
			Period:    tpl.Period,
			PeriodKey: p.key,
			PeriodEnd: p.end,
			Target:    tpl.Target,
			XPReward:  tpl.XPReward,
		}
		if row, ok := byKey[tpl.Key+"|"+p.key]; ok {
			id := row.ID
			view.ID = &id
			view.Target = row.Target
			view.XPReward = row.XPReward
			view.Progress = row.Progress
			view.Completed = row.Completed
			view.Claimed = row.Claimed
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *questService) PruneExpired(ctx context.Context, before time.Time) (int64, error) {
	n, err := s.repo.DeleteEndedBefore(dbctx.New(ctx), before)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Info("pruned expired quests", "count", n, "before", before)
	}
	return n, nil
}
