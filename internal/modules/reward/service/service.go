package service

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"anoa.com/kitaplik/internal/entity"
	activityService "anoa.com/kitaplik/internal/modules/activity/service"
	badgeService "anoa.com/kitaplik/internal/modules/badge/service"
	bookRepo "anoa.com/kitaplik/internal/modules/book/repository"
	bookService "anoa.com/kitaplik/internal/modules/book/service"
	dailyService "anoa.com/kitaplik/internal/modules/daily/service"
	duelService "anoa.com/kitaplik/internal/modules/duel/service"
	friendRepo "anoa.com/kitaplik/internal/modules/friendship/repository"
	giftRepo "anoa.com/kitaplik/internal/modules/gift/repository"
	ledgerService "anoa.com/kitaplik/internal/modules/ledger/service"
	"anoa.com/kitaplik/internal/modules/marathon"
	notifService "anoa.com/kitaplik/internal/modules/notification/service"
	questService "anoa.com/kitaplik/internal/modules/quest/service"
	rewardDto "anoa.com/kitaplik/internal/modules/reward/dto"
	"anoa.com/kitaplik/pkg/apperror"
	"anoa.com/kitaplik/pkg/clock"
	"anoa.com/kitaplik/pkg/database"
	"anoa.com/kitaplik/pkg/dbctx"
	"anoa.com/kitaplik/pkg/logger"
	"anoa.com/kitaplik/pkg/ratelimit"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/sync/errgroup"
)

const (
	giftAction     = "gift"
	maxNoteLength  = 280
	triviaWindow   = 24 * time.Hour
	defaultGiftMax = 10000
)

// RewardService is the single entry point for user events. Every method runs
// in one transaction: either all of its effects commit or none do.
type RewardService interface {
	OnBookCompleted(ctx context.Context, userID, bookID uuid.UUID) (*rewardDto.BookReward, error)
	OnTriviaSubmitted(ctx context.Context, userID uuid.UUID, answers map[uint]int) (*rewardDto.TriviaReward, error)
	OnDuelChallenged(ctx context.Context, challengerID, opponentID, bookID uuid.UUID) (*entity.Duel, error)
	OnDuelAccepted(ctx context.Context, duelID, responderID uuid.UUID) (*entity.Duel, error)
	OnDuelRejected(ctx context.Context, duelID, responderID uuid.UUID) (*entity.Duel, error)
	OnGiftSent(ctx context.Context, senderID, receiverID uuid.UUID, amount int, note string) (*entity.Gift, error)
	OnQuestClaimed(ctx context.Context, userID, questProgressID uuid.UUID) (*entity.QuestProgress, error)
	OnFriendAdded(ctx context.Context, userID, friendID uuid.UUID) (*rewardDto.FriendResult, error)
}

// Options carries the tunables read from configuration.
type Options struct {
	DedupWindow   time.Duration
	GiftMaxAmount int
}

// Deps lists the collaborators the orchestrator composes.
type Deps struct {
	Tx       database.TxRunner
	Ledger   ledgerService.LedgerService
	Activity activityService.ActivityService
	Quests   questService.QuestService
	Badges   badgeService.BadgeService
	Duels    duelService.DuelService
	Daily    dailyService.DailyService
	Books    bookRepo.BookRepository
	Goals    bookService.BookService
	Friends  friendRepo.FriendshipRepository
	Gifts    giftRepo.GiftRepository
	Notifier notifService.NotificationService
	Marathon marathon.Flag
	Limiter  *ratelimit.Limiter
	Clock    clock.Clock
	Log      *logger.Logger
}

type rewardService struct {
	Deps
	opts   Options
	policy *bluemonday.Policy
	log    *logger.Logger
}

func NewRewardService(deps Deps, opts Options) RewardService {
	if opts.GiftMaxAmount <= 0 {
		opts.GiftMaxAmount = defaultGiftMax
	}
	if deps.Marathon == nil {
		deps.Marathon = marathon.Static(false)
	}
	if deps.Clock == nil {
		deps.Clock = clock.Real()
	}
	return &rewardService{
		Deps:   deps,
		opts:   opts,
		policy: bluemonday.StrictPolicy(),
		log:    deps.Log.With("service", "reward"),
	}
}

func (s *rewardService) OnBookCompleted(ctx context.Context, userID, bookID uuid.UUID) (*rewardDto.BookReward, error) {
	var (
		book       *entity.Book
		marathonOn bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := s.Books.FindByID(dbctx.New(gctx), bookID)
		if err != nil {
			return fmt.Errorf("load book: %w", err)
		}
		book = b
		return nil
	})
	g.Go(func() error {
		on, err := s.Marathon.Active(gctx)
		if err != nil {
			s.log.Warn("marathon flag unavailable, treating as inactive", "error", err)
			return nil
		}
		marathonOn = on
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	reward := &rewardDto.BookReward{BookID: bookID.String(), BadgesEarned: []string{}}
	err := s.Tx.InTx(ctx, func(dbc dbctx.Context) error {
		if _, err := s.Ledger.LockWallet(dbc, userID); err != nil {
			return err
		}
		recorded, err := s.Activity.RecordActivityIfAbsent(dbc, userID, entity.ActivityFinishedReading, bookID.String(), s.opts.DedupWindow)
		if err != nil {
			return err
		}
		if !recorded {
			reward.AlreadyRecorded = true
			return s.fillWallet(dbc, userID, &reward.XP, &reward.Level)
		}

		now := s.Clock.Now()
		if err := s.Books.MarkRead(dbc, userID, bookID, now); err != nil {
			return fmt.Errorf("mark read: %w", err)
		}
		recent, err := s.Books.RecentCompletions(dbc, userID, StreakWindow)
		if err != nil {
			return fmt.Errorf("recent completions: %w", err)
		}
		earned, bonuses := BookXP(book, recent, marathonOn)
		if _, err := s.Ledger.CreditXP(dbc, userID, earned, ledgerService.SourceBookCompleted, bookID.String()); err != nil {
			return err
		}

		completed, err := s.advance(dbc, userID, entity.MetricReadPages, book.Pages)
		if err != nil {
			return err
		}
		finished, err := s.advance(dbc, userID, entity.MetricFinishBook, 1)
		if err != nil {
			return err
		}
		completed = append(completed, finished...)

		res, err := s.Duels.ResolveOnBookCompletion(dbc, userID, bookID)
		if err != nil {
			return err
		}
		if res != nil {
			reward.DuelWon = true
			earned += res.BonusXP
			bonuses = append(bonuses, rewardDto.Bonus{Label: "Düello galibiyeti", XP: res.BonusXP})
			won, err := s.advance(dbc, userID, entity.MetricWinDuel, 1)
			if err != nil {
				return err
			}
			completed = append(completed, won...)
			if err := s.award(dbc, userID, badgeService.BadgeDuelist, res.FirstWin, &reward.BadgesEarned); err != nil {
				return err
			}
		}

		goal, err := s.Books.IncrementGoal(dbc, userID, s.Goals.GoalYear(now))
		if err != nil {
			return fmt.Errorf("reading goal: %w", err)
		}
		if goal != nil && badgeService.GoalReached(goal.Completed, goal.Target) {
			earned := len(reward.BadgesEarned)
			if err := s.award(dbc, userID, badgeService.BadgeGoalHunter, true, &reward.BadgesEarned); err != nil {
				return err
			}
			// Announce only the crossing increment or the first grant after a lowered target.
			if goal.Completed == goal.Target || len(reward.BadgesEarned) > earned {
				if err := s.Notifier.Notify(dbc, &entity.Notification{
					UserID:     userID,
					EntityType: "reading_goal",
					Type:       entity.NotifGoalReached,
					Message:    fmt.Sprintf("%d okuma hedefine ulaştın: %d kitap!", goal.Year, goal.Target),
				}); err != nil {
					return err
				}
			}
		}

		inCategory, err := s.Books.CountReadInCategory(dbc, userID, book.CategoryID)
		if err != nil {
			return fmt.Errorf("count category: %w", err)
		}
		if err := s.award(dbc, userID, badgeService.BadgeGenreExplorer, badgeService.FirstInCategory(inCategory), &reward.BadgesEarned); err != nil {
			return err
		}

		reward.EarnedXP = earned
		reward.Bonuses = bonuses
		reward.Summary = Summary(earned, bonuses)
		reward.QuestsCompleted = completed
		return s.fillWallet(dbc, userID, &reward.XP, &reward.Level)
	})
	if err != nil {
		return nil, err
	}
	if !reward.AlreadyRecorded {
		s.log.Info("book completed", "user_id", userID, "book_id", bookID, "xp", reward.EarnedXP, "marathon", marathonOn)
	}
	return reward, nil
}

func (s *rewardService) OnTriviaSubmitted(ctx context.Context, userID uuid.UUID, answers map[uint]int) (*rewardDto.TriviaReward, error) {
	if len(answers) == 0 {
		return nil, apperror.New(http.StatusBadRequest, "En az bir cevap gönderilmelidir", apperror.ErrInvalidInput)
	}
	date := s.Daily.Today()
	reward := &rewardDto.TriviaReward{Date: date, BadgesEarned: []string{}}

	err := s.Tx.InTx(ctx, func(dbc dbctx.Context) error {
		if _, err := s.Ledger.LockWallet(dbc, userID); err != nil {
			return err
		}
		set, err := s.Daily.TriviaSet(dbc, date)
		if err != nil {
			return err
		}
		if len(set) == 0 {
			return fmt.Errorf("trivia set for %s: %w", date, apperror.ErrNotFound)
		}
		recorded, err := s.Activity.RecordActivityIfAbsent(dbc, userID, entity.ActivityTriviaCompleted, date, triviaWindow)
		if err != nil {
			return err
		}
		if !recorded {
			reward.AlreadyRecorded = true
			reward.Total = len(set)
			return s.fillWallet(dbc, userID, nil, &reward.Level)
		}

		results := make([]rewardDto.TriviaResult, 0, len(set))
		correct := 0
		for _, q := range set {
			r := rewardDto.TriviaResult{QuestionID: q.ID, AnswerIndex: q.AnswerIndex}
			if chosen, ok := answers[q.ID]; ok {
				c := chosen
				r.Chosen = &c
				r.Correct = chosen == q.AnswerIndex
			}
			if r.Correct {
				correct++
			}
			results = append(results, r)
		}

		xp := correct * TriviaXPPerCorrect
		points := correct * TriviaPointsPerCorrect
		if _, err := s.Ledger.CreditXP(dbc, userID, xp, ledgerService.SourceTrivia, date); err != nil {
			return err
		}
		if points > 0 {
			if err := s.Ledger.CreditPoints(dbc, userID, points); err != nil {
				return err
			}
		}
		completed, err := s.advance(dbc, userID, entity.MetricTriviaCorrect, correct)
		if err != nil {
			return err
		}
		if err := s.award(dbc, userID, badgeService.BadgeWiseReader, badgeService.PerfectTrivia(correct, len(set)), &reward.BadgesEarned); err != nil {
			return err
		}

		reward.Correct = correct
		reward.Total = len(set)
		reward.EarnedXP = xp
		reward.EarnedPoints = points
		reward.Results = results
		reward.QuestsCompleted = completed
		return s.fillWallet(dbc, userID, nil, &reward.Level)
	})
	if err != nil {
		return nil, err
	}
	return reward, nil
}

func (s *rewardService) OnDuelChallenged(ctx context.Context, challengerID, opponentID, bookID uuid.UUID) (*entity.Duel, error) {
	var duel *entity.Duel
	err := s.Tx.InTx(ctx, func(dbc dbctx.Context) error {
		d, err := s.Duels.Challenge(dbc, challengerID, opponentID, bookID)
		duel = d
		return err
	})
	if err != nil {
		return nil, err
	}
	return duel, nil
}

func (s *rewardService) OnDuelAccepted(ctx context.Context, duelID, responderID uuid.UUID) (*entity.Duel, error) {
	return s.respond(ctx, duelID, responderID, true)
}

func (s *rewardService) OnDuelRejected(ctx context.Context, duelID, responderID uuid.UUID) (*entity.Duel, error) {
	return s.respond(ctx, duelID, responderID, false)
}

func (s *rewardService) respond(ctx context.Context, duelID, responderID uuid.UUID, accept bool) (*entity.Duel, error) {
	var duel *entity.Duel
	err := s.Tx.InTx(ctx, func(dbc dbctx.Context) error {
		d, err := s.Duels.Respond(dbc, duelID, responderID, accept)
		duel = d
		return err
	})
	if err != nil {
		return nil, err
	}
	return duel, nil
}

func (s *rewardService) OnGiftSent(ctx context.Context, senderID, receiverID uuid.UUID, amount int, note string) (*entity.Gift, error) {
	if amount < 1 || amount > s.opts.GiftMaxAmount {
		return nil, apperror.New(http.StatusBadRequest,
			fmt.Sprintf("Hediye miktarı 1 ile %d arasında olmalıdır", s.opts.GiftMaxAmount), apperror.ErrInvalidInput)
	}
	if senderID == receiverID {
		return nil, apperror.ErrSelfTarget
	}

	friends, err := s.Friends.AreFriends(dbctx.New(ctx), senderID, receiverID)
	if err != nil {
		return nil, fmt.Errorf("check friendship: %w", err)
	}
	if !friends {
		return nil, apperror.ErrNotFriends
	}

	allowed, err := s.Limiter.Allow(ctx, senderID, giftAction)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperror.New(http.StatusTooManyRequests, "Çok sık hediye gönderiyorsun, lütfen biraz bekle", apperror.ErrRateLimitExceeded)
	}

	gift := &entity.Gift{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Amount:     amount,
		Note:       s.cleanNote(note),
	}
	err = s.Tx.InTx(ctx, func(dbc dbctx.Context) error {
		if err := s.lockPair(dbc, senderID, receiverID); err != nil {
			return err
		}
		if err := s.Ledger.DebitPoints(dbc, senderID, amount); err != nil {
			return err
		}
		if err := s.Ledger.CreditPoints(dbc, receiverID, amount); err != nil {
			return err
		}
		gift.CreatedAt = s.Clock.Now()
		if err := s.Gifts.Create(dbc, gift); err != nil {
			return fmt.Errorf("create gift: %w", err)
		}

		actorID, giftID := senderID, gift.ID
		if err := s.Notifier.Notify(dbc, &entity.Notification{
			UserID:     receiverID,
			ActorID:    &actorID,
			EntityID:   &giftID,
			EntityType: "gift",
			Type:       entity.NotifGiftReceived,
			Message:    fmt.Sprintf("Sana %d puan hediye edildi!", amount),
		}); err != nil {
			return err
		}
		_, err := s.advance(dbc, senderID, entity.MetricSendGift, 1)
		return err
	})
	if err != nil {
		if clearErr := s.Limiter.Clear(ctx, senderID, giftAction); clearErr != nil {
			s.log.Warn("failed to release gift rate limit", "user_id", senderID, "error", clearErr)
		}
		return nil, err
	}
	return gift, nil
}

func (s *rewardService) OnQuestClaimed(ctx context.Context, userID, questProgressID uuid.UUID) (*entity.QuestProgress, error) {
	var quest *entity.QuestProgress
	err := s.Tx.InTx(ctx, func(dbc dbctx.Context) error {
		if _, err := s.Ledger.LockWallet(dbc, userID); err != nil {
			return err
		}
		q, err := s.Quests.ClaimQuest(dbc, userID, questProgressID)
		quest = q
		return err
	})
	if err != nil {
		return nil, err
	}
	return quest, nil
}

func (s *rewardService) OnFriendAdded(ctx context.Context, userID, friendID uuid.UUID) (*rewardDto.FriendResult, error) {
	if userID == friendID {
		return nil, apperror.ErrSelfTarget
	}
	result := &rewardDto.FriendResult{FriendID: friendID.String()}
	err := s.Tx.InTx(ctx, func(dbc dbctx.Context) error {
		if err := s.lockPair(dbc, userID, friendID); err != nil {
			return err
		}
		added, err := s.Friends.Add(dbc, userID, friendID)
		if err != nil {
			return fmt.Errorf("add friend: %w", err)
		}
		if !added {
			result.AlreadyFriends = true
			return nil
		}
		for _, pair := range [][2]uuid.UUID{{userID, friendID}, {friendID, userID}} {
			recorded, err := s.Activity.RecordActivityIfAbsent(dbc, pair[0], entity.ActivityFriendAdded, pair[1].String(), s.opts.DedupWindow)
			if err != nil {
				return err
			}
			if !recorded {
				continue
			}
			completed, err := s.advance(dbc, pair[0], entity.MetricAddFriend, 1)
			if err != nil {
				return err
			}
			if pair[0] == userID {
				result.QuestsCompleted = completed
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// lockPair locks both wallets in ascending id order.
func (s *rewardService) lockPair(dbc dbctx.Context, a, b uuid.UUID) error {
	first, second := a, b
	if bytes.Compare(b[:], a[:]) < 0 {
		first, second = b, a
	}
	if _, err := s.Ledger.LockWallet(dbc, first); err != nil {
		return err
	}
	_, err := s.Ledger.LockWallet(dbc, second)
	return err
}

func (s *rewardService) advance(dbc dbctx.Context, userID uuid.UUID, metric entity.QuestMetric, amount int) ([]entity.QuestProgress, error) {
	completed, err := s.Quests.UpdateQuestProgress(dbc, userID, metric, amount)
	if err != nil {
		return nil, fmt.Errorf("quest progress %s: %w", metric, err)
	}
	return completed, nil
}

func (s *rewardService) award(dbc dbctx.Context, userID uuid.UUID, badge string, eligible bool, earned *[]string) error {
	ok, err := s.Badges.AwardBadgeIfEligible(dbc, userID, badge, eligible)
	if err != nil {
		return err
	}
	if ok {
		*earned = append(*earned, badge)
	}
	return nil
}

func (s *rewardService) fillWallet(dbc dbctx.Context, userID uuid.UUID, xp, level *int) error {
	u, err := s.Ledger.Wallet(dbc, userID)
	if err != nil {
		return err
	}
	if xp != nil {
		*xp = u.XP
	}
	if level != nil {
		*level = u.Level
	}
	return nil
}

func (s *rewardService) cleanNote(note string) string {
	note = strings.TrimSpace(s.policy.Sanitize(note))
	if utf8.RuneCountInString(note) > maxNoteLength {
		note = string([]rune(note)[:maxNoteLength])
	}
	return note
}
