package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"anoa.com/kitaplik/internal/entity"
	activityRepo "anoa.com/kitaplik/internal/modules/activity/repository"
	activityService "anoa.com/kitaplik/internal/modules/activity/service"
	badgeRepo "anoa.com/kitaplik/internal/modules/badge/repository"
	badgeService "anoa.com/kitaplik/internal/modules/badge/service"
	bookRepo "anoa.com/kitaplik/internal/modules/book/repository"
	bookService "anoa.com/kitaplik/internal/modules/book/service"
	dailyRepo "anoa.com/kitaplik/internal/modules/daily/repository"
	dailyService "anoa.com/kitaplik/internal/modules/daily/service"
	duelRepo "anoa.com/kitaplik/internal/modules/duel/repository"
	duelService "anoa.com/kitaplik/internal/modules/duel/service"
	friendRepo "anoa.com/kitaplik/internal/modules/friendship/repository"
	giftRepo "anoa.com/kitaplik/internal/modules/gift/repository"
	ledgerRepo "anoa.com/kitaplik/internal/modules/ledger/repository"
	ledgerService "anoa.com/kitaplik/internal/modules/ledger/service"
	"anoa.com/kitaplik/internal/modules/marathon"
	notifRepo "anoa.com/kitaplik/internal/modules/notification/repository"
	notifService "anoa.com/kitaplik/internal/modules/notification/service"
	questRepo "anoa.com/kitaplik/internal/modules/quest/repository"
	questService "anoa.com/kitaplik/internal/modules/quest/service"
	rewardService "anoa.com/kitaplik/internal/modules/reward/service"
	userRepo "anoa.com/kitaplik/internal/modules/user/repository"
	"anoa.com/kitaplik/internal/testutil"
	"anoa.com/kitaplik/pkg/apperror"
	"anoa.com/kitaplik/pkg/clock"
	"anoa.com/kitaplik/pkg/database"
	"anoa.com/kitaplik/pkg/dbctx"
	"anoa.com/kitaplik/pkg/ratelimit"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type engine struct {
	db      *gorm.DB
	clk     *clock.Manual
	svc     rewardService.RewardService
	daily   dailyService.DailyService
	romance *entity.Category
	essay   *entity.Category
}

type option func(*rewardService.Deps)

func withMarathon(on bool) option {
	return func(d *rewardService.Deps) { d.Marathon = marathon.Static(on) }
}

func withLimiter(l *ratelimit.Limiter) option {
	return func(d *rewardService.Deps) { d.Limiter = l }
}

func withBadges(wrap func(badgeService.BadgeService) badgeService.BadgeService) option {
	return func(d *rewardService.Deps) { d.Badges = wrap(d.Badges) }
}

func newEngine(t *testing.T, opts ...option) *engine {
	t.Helper()
	db := testutil.DB(t)
	clk := testutil.Clock()
	log := testutil.Logger()

	notifier := notifService.NewNotificationService(notifRepo.NewNotificationRepository(db), nil, clk, log)
	ledger := ledgerService.NewLedgerService(ledgerRepo.NewLedgerRepository(db), notifier, clk, log)
	books := bookRepo.NewBookRepository(db)
	daily := dailyService.NewDailyService(dailyRepo.NewTriviaRepository(db), books, clk, time.UTC, 5, 50)

	deps := rewardService.Deps{
		Tx:       database.NewTxRunner(db),
		Ledger:   ledger,
		Activity: activityService.NewActivityService(activityRepo.NewActivityRepository(db), clk),
		Quests:   questService.NewQuestService(questRepo.NewQuestRepository(db), ledger, notifier, testutil.Catalog(t), clk, time.UTC, log),
		Badges:   badgeService.NewBadgeService(badgeRepo.NewBadgeRepository(db), notifier, clk, log),
		Duels:    duelService.NewDuelService(duelRepo.NewDuelRepository(db), userRepo.NewUserRepository(db), books, ledger, notifier, log),
		Daily:    daily,
		Books:    books,
		Goals:    bookService.NewBookService(books, clk, time.UTC),
		Friends:  friendRepo.NewFriendshipRepository(db),
		Gifts:    giftRepo.NewGiftRepository(db),
		Notifier: notifier,
		Marathon: marathon.Static(false),
		Clock:    clk,
		Log:      log,
	}
	for _, opt := range opts {
		opt(&deps)
	}

	return &engine{
		db:      db,
		clk:     clk,
		svc:     rewardService.NewRewardService(deps, rewardService.Options{DedupWindow: 5 * time.Minute, GiftMaxAmount: 10000}),
		daily:   daily,
		romance: testutil.SeedCategory(t, db, "Roman"),
		essay:   testutil.SeedCategory(t, db, "Deneme"),
	}
}

func (e *engine) quest(t *testing.T, userID uuid.UUID, key string) entity.QuestProgress {
	t.Helper()
	var row entity.QuestProgress
	require.NoError(t, e.db.Where("user_id = ? AND quest_key = ?", userID, key).First(&row).Error)
	return row
}

func (e *engine) count(t *testing.T, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

func TestFirstAndSecondBookByAuthor(t *testing.T) {
	e := newEngine(t)
	ctx := testutil.Ctx()
	u := testutil.SeedUser(t, e.db, "okur")
	first := testutil.SeedBook(t, e.db, "Saatleri Ayarlama Enstitüsü", "Ahmet Hamdi Tanpınar", e.romance.ID, 300)
	second := testutil.SeedBook(t, e.db, "Beş Şehir", "Ahmet Hamdi Tanpınar", e.essay.ID, 200)

	res, err := e.svc.OnBookCompleted(ctx, u.ID, first.ID)
	require.NoError(t, err)
	assert.False(t, res.AlreadyRecorded)
	assert.Equal(t, 50, res.EarnedXP)
	assert.Equal(t, []string{badgeService.BadgeGenreExplorer}, res.BadgesEarned)
	assert.Equal(t, int64(1), e.count(t, &entity.UserBadge{}, "user_id = ?", u.ID))
	assert.Equal(t, 300, e.quest(t, u.ID, "weekly_pages").Progress)
	assert.Equal(t, 50, e.quest(t, u.ID, "daily_pages").Progress)
	assert.Equal(t, 1, e.quest(t, u.ID, "weekly_books").Progress)

	var shelf entity.UserBook
	require.NoError(t, e.db.Where("user_id = ? AND book_id = ?", u.ID, first.ID).First(&shelf).Error)
	assert.Equal(t, entity.ShelfRead, shelf.Status)

	e.clk.Advance(time.Minute)
	res, err = e.svc.OnBookCompleted(ctx, u.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, 150, res.EarnedXP)
	require.Len(t, res.Bonuses, 2)
	assert.Equal(t, "Yazar serisi", res.Bonuses[1].Label)
	assert.Equal(t, "+150 XP (Kitap tamamlandı +50, Yazar serisi +100)", res.Summary)
	assert.Empty(t, res.BadgesEarned, "first essay does not re-award the explorer badge")

	user := testutil.Reload(t, e.db, u.ID)
	assert.Equal(t, 200, user.XP)
	assert.Equal(t, ledgerService.LevelOf(200), user.Level)
	assert.Equal(t, user.Level, res.Level)
}

func TestMarathonDoublesBookXP(t *testing.T) {
	e := newEngine(t, withMarathon(true))
	ctx := testutil.Ctx()
	u := testutil.SeedUser(t, e.db, "okur")
	first := testutil.SeedBook(t, e.db, "Huzur", "Ahmet Hamdi Tanpınar", e.romance.ID, 300)
	second := testutil.SeedBook(t, e.db, "Beş Şehir", "Ahmet Hamdi Tanpınar", e.essay.ID, 200)

	res, err := e.svc.OnBookCompleted(ctx, u.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, res.EarnedXP)

	e.clk.Advance(time.Minute)
	res, err = e.svc.OnBookCompleted(ctx, u.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, 300, res.EarnedXP)
	assert.Equal(t, 400, testutil.Reload(t, e.db, u.ID).XP)
}

func TestMarathonFlagErrorFallsBackToNormalXP(t *testing.T) {
	broken := marathon.FlagFunc(func(ctx context.Context) (bool, error) { return false, errors.New("redis down") })
	e := newEngine(t, func(d *rewardService.Deps) { d.Marathon = broken })
	u := testutil.SeedUser(t, e.db, "okur")
	book := testutil.SeedBook(t, e.db, "Huzur", "Ahmet Hamdi Tanpınar", e.romance.ID, 300)

	res, err := e.svc.OnBookCompleted(testutil.Ctx(), u.ID, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, res.EarnedXP)
}

func TestBookCompletionIsIdempotentWithinWindow(t *testing.T) {
	e := newEngine(t)
	ctx := testutil.Ctx()
	u := testutil.SeedUser(t, e.db, "okur")
	book := testutil.SeedBook(t, e.db, "Kuyucaklı Yusuf", "Sabahattin Ali", e.romance.ID, 250)

	_, err := e.svc.OnBookCompleted(ctx, u.ID, book.ID)
	require.NoError(t, err)

	e.clk.Advance(2 * time.Minute)
	res, err := e.svc.OnBookCompleted(ctx, u.ID, book.ID)
	require.NoError(t, err)
	assert.True(t, res.AlreadyRecorded)
	assert.Zero(t, res.EarnedXP)
	assert.Equal(t, 50, res.XP)
	assert.Equal(t, int64(1), e.count(t, &entity.XPLog{}, "user_id = ?", u.ID))
	assert.Equal(t, 1, e.quest(t, u.ID, "weekly_books").Progress)

	e.clk.Advance(10 * time.Minute)
	res, err = e.svc.OnBookCompleted(ctx, u.ID, book.ID)
	require.NoError(t, err)
	assert.False(t, res.AlreadyRecorded)
	assert.Equal(t, 100, testutil.Reload(t, e.db, u.ID).XP)
}

func TestBookCompletionUnknownBookOrUser(t *testing.T) {
	e := newEngine(t)
	ctx := testutil.Ctx()
	u := testutil.SeedUser(t, e.db, "okur")
	book := testutil.SeedBook(t, e.db, "İnce Memed", "Yaşar Kemal", e.romance.ID, 400)

	_, err := e.svc.OnBookCompleted(ctx, u.ID, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = e.svc.OnBookCompleted(ctx, uuid.New(), book.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Zero(t, e.count(t, &entity.ActivityRecord{}, "1 = 1"))
}

type failingBadges struct {
	badgeService.BadgeService
}

func (failingBadges) AwardBadgeIfEligible(dbctx.Context, uuid.UUID, string, bool) (bool, error) {
	return false, errors.New("badge store unavailable")
}

func TestBookCompletionRollsBackOnLaterFailure(t *testing.T) {
	e := newEngine(t, withBadges(func(b badgeService.BadgeService) badgeService.BadgeService {
		return failingBadges{b}
	}))
	u := testutil.SeedUser(t, e.db, "okur")
	book := testutil.SeedBook(t, e.db, "Tutunamayanlar", "Oğuz Atay", e.romance.ID, 724)

	_, err := e.svc.OnBookCompleted(testutil.Ctx(), u.ID, book.ID)
	require.Error(t, err)

	assert.Zero(t, testutil.Reload(t, e.db, u.ID).XP)
	assert.Zero(t, e.count(t, &entity.ActivityRecord{}, "user_id = ?", u.ID))
	assert.Zero(t, e.count(t, &entity.XPLog{}, "user_id = ?", u.ID))
	assert.Zero(t, e.count(t, &entity.UserBook{}, "user_id = ?", u.ID))
	assert.Zero(t, e.count(t, &entity.QuestProgress{}, "user_id = ?", u.ID))
	assert.Zero(t, e.count(t, &entity.Notification{}, "user_id = ?", u.ID))
}

func TestReadingGoalBadge(t *testing.T) {
	e := newEngine(t)
	u := testutil.SeedUser(t, e.db, "okur")
	testutil.SeedGoal(t, e.db, u.ID, 2024, 1)
	book := testutil.SeedBook(t, e.db, "Aylak Adam", "Yusuf Atılgan", e.romance.ID, 180)

	res, err := e.svc.OnBookCompleted(testutil.Ctx(), u.ID, book.ID)
	require.NoError(t, err)
	assert.Contains(t, res.BadgesEarned, badgeService.BadgeGoalHunter)
	assert.Equal(t, int64(1), e.count(t, &entity.Notification{}, "user_id = ? AND type = ?", u.ID, entity.NotifGoalReached))

	var goal entity.ReadingGoal
	require.NoError(t, e.db.Where("user_id = ? AND year = ?", u.ID, 2024).First(&goal).Error)
	assert.Equal(t, 1, goal.Completed)
}

func TestReadingGoalLoweredBelowCount(t *testing.T) {
	e := newEngine(t)
	ctx := testutil.Ctx()
	u := testutil.SeedUser(t, e.db, "okur")
	testutil.SeedGoal(t, e.db, u.ID, 2024, 5)
	books := []*entity.Book{
		testutil.SeedBook(t, e.db, "Tutunamayanlar", "Oğuz Atay", e.romance.ID, 720),
		testutil.SeedBook(t, e.db, "Saatleri Ayarlama Enstitüsü", "Ahmet Hamdi Tanpınar", e.romance.ID, 400),
		testutil.SeedBook(t, e.db, "İnce Memed", "Yaşar Kemal", e.romance.ID, 430),
		testutil.SeedBook(t, e.db, "Çalıkuşu", "Reşat Nuri Güntekin", e.romance.ID, 380),
	}

	for _, b := range books[:2] {
		res, err := e.svc.OnBookCompleted(ctx, u.ID, b.ID)
		require.NoError(t, err)
		assert.NotContains(t, res.BadgesEarned, badgeService.BadgeGoalHunter)
		e.clk.Advance(time.Hour)
	}

	require.NoError(t, e.db.Model(&entity.ReadingGoal{}).
		Where("user_id = ? AND year = ?", u.ID, 2024).
		Update("target", 1).Error)

	res, err := e.svc.OnBookCompleted(ctx, u.ID, books[2].ID)
	require.NoError(t, err)
	assert.Contains(t, res.BadgesEarned, badgeService.BadgeGoalHunter)
	assert.Equal(t, int64(1), e.count(t, &entity.Notification{}, "user_id = ? AND type = ?", u.ID, entity.NotifGoalReached))

	e.clk.Advance(time.Hour)
	res, err = e.svc.OnBookCompleted(ctx, u.ID, books[3].ID)
	require.NoError(t, err)
	assert.NotContains(t, res.BadgesEarned, badgeService.BadgeGoalHunter)
	assert.Equal(t, int64(1), e.count(t, &entity.Notification{}, "user_id = ? AND type = ?", u.ID, entity.NotifGoalReached))
}

func TestDuelAcceptedThenWon(t *testing.T) {
	e := newEngine(t)
	ctx := testutil.Ctx()
	challenger := testutil.SeedUser(t, e.db, "ayse")
	opponent := testutil.SeedUser(t, e.db, "burak")
	book := testutil.SeedBook(t, e.db, "Kürk Mantolu Madonna", "Sabahattin Ali", e.romance.ID, 160)

	duel, err := e.svc.OnDuelChallenged(ctx, challenger.ID, opponent.ID, book.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DuelPending, duel.Status)

	_, err = e.svc.OnDuelChallenged(ctx, opponent.ID, challenger.ID, book.ID)
	assert.ErrorIs(t, err, apperror.ErrDuelAlreadyActive)

	_, err = e.svc.OnDuelAccepted(ctx, duel.ID, challenger.ID)
	assert.ErrorIs(t, err, apperror.ErrNotAuthorized)

	accepted, err := e.svc.OnDuelAccepted(ctx, duel.ID, opponent.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DuelActive, accepted.Status)

	res, err := e.svc.OnBookCompleted(ctx, challenger.ID, book.ID)
	require.NoError(t, err)
	assert.True(t, res.DuelWon)
	assert.Equal(t, 50+duelService.DuelWinXP, res.EarnedXP)
	assert.ElementsMatch(t, []string{badgeService.BadgeDuelist, badgeService.BadgeGenreExplorer}, res.BadgesEarned)
	assert.Equal(t, 1, e.quest(t, challenger.ID, "weekly_duel").Progress)

	var stored entity.Duel
	require.NoError(t, e.db.First(&stored, "id = ?", duel.ID).Error)
	assert.Equal(t, entity.DuelCompleted, stored.Status)
	require.NotNil(t, stored.WinnerID)
	assert.Equal(t, challenger.ID, *stored.WinnerID)
	assert.Nil(t, stored.ActiveKey)

	assert.Equal(t, 350, testutil.Reload(t, e.db, challenger.ID).XP)
	assert.Equal(t, int64(1), e.count(t, &entity.Notification{}, "user_id = ? AND type = ?", opponent.ID, entity.NotifDuelLost))

	res, err = e.svc.OnBookCompleted(ctx, opponent.ID, book.ID)
	require.NoError(t, err)
	assert.False(t, res.DuelWon)
	assert.Equal(t, 50, res.EarnedXP)
}

func TestDuelRejected(t *testing.T) {
	e := newEngine(t)
	ctx := testutil.Ctx()
	challenger := testutil.SeedUser(t, e.db, "ayse")
	opponent := testutil.SeedUser(t, e.db, "burak")
	book := testutil.SeedBook(t, e.db, "Sinekli Bakkal", "Halide Edib Adıvar", e.romance.ID, 420)

	duel, err := e.svc.OnDuelChallenged(ctx, challenger.ID, opponent.ID, book.ID)
	require.NoError(t, err)

	rejected, err := e.svc.OnDuelRejected(ctx, duel.ID, opponent.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DuelRejected, rejected.Status)
	assert.Equal(t, int64(1), e.count(t, &entity.Notification{}, "user_id = ? AND type = ?", challenger.ID, entity.NotifDuelRejected))

	_, err = e.svc.OnDuelAccepted(ctx, duel.ID, opponent.ID)
	assert.ErrorIs(t, err, apperror.ErrInvalidTransition)

	_, err = e.svc.OnDuelChallenged(ctx, challenger.ID, opponent.ID, book.ID)
	assert.NoError(t, err, "a rejected duel frees the pair")
}

func TestGiftValidation(t *testing.T) {
	e := newEngine(t)
	ctx := testutil.Ctx()
	a := testutil.SeedUserWithPoints(t, e.db, "ayse", 500)
	b := testutil.SeedUser(t, e.db, "burak")
	stranger := testutil.SeedUser(t, e.db, "cem")
	testutil.SeedFriends(t, e.db, a.ID, b.ID)

	_, err := e.svc.OnGiftSent(ctx, a.ID, b.ID, 10001, "")
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	_, err = e.svc.OnGiftSent(ctx, a.ID, b.ID, 0, "")
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	_, err = e.svc.OnGiftSent(ctx, a.ID, a.ID, 10, "")
	assert.ErrorIs(t, err, apperror.ErrSelfTarget)
	_, err = e.svc.OnGiftSent(ctx, a.ID, stranger.ID, 10, "")
	assert.ErrorIs(t, err, apperror.ErrNotFriends)

	assert.Equal(t, 500, testutil.Reload(t, e.db, a.ID).Points)
	assert.Zero(t, testutil.Reload(t, e.db, b.ID).Points)
	assert.Zero(t, e.count(t, &entity.Gift{}, "1 = 1"))
}

func TestGiftTransfersPoints(t *testing.T) {
	e := newEngine(t)
	ctx := testutil.Ctx()
	a := testutil.SeedUserWithPoints(t, e.db, "ayse", 100)
	b := testutil.SeedUser(t, e.db, "burak")
	testutil.SeedFriends(t, e.db, a.ID, b.ID)

	gift, err := e.svc.OnGiftSent(ctx, a.ID, b.ID, 40, "<b>Keyifli okumalar</b>")
	require.NoError(t, err)
	assert.Equal(t, "Keyifli okumalar", gift.Note)
	assert.Equal(t, 60, testutil.Reload(t, e.db, a.ID).Points)
	assert.Equal(t, 40, testutil.Reload(t, e.db, b.ID).Points)
	assert.Equal(t, int64(1), e.count(t, &entity.Notification{}, "user_id = ? AND type = ?", b.ID, entity.NotifGiftReceived))
	assert.True(t, e.quest(t, a.ID, "weekly_gift").Completed)

	_, err = e.svc.OnGiftSent(ctx, a.ID, b.ID, 61, "")
	assert.ErrorIs(t, err, apperror.ErrInsufficientFunds)
	assert.Equal(t, 60, testutil.Reload(t, e.db, a.ID).Points)
	assert.Equal(t, 40, testutil.Reload(t, e.db, b.ID).Points)
	assert.Equal(t, int64(1), e.count(t, &entity.Gift{}, "1 = 1"))
}

func TestGiftRateLimit(t *testing.T) {
	e := newEngine(t, withLimiter(ratelimit.New(nil, time.Minute)))
	ctx := testutil.Ctx()
	a := testutil.SeedUserWithPoints(t, e.db, "ayse", 100)
	b := testutil.SeedUser(t, e.db, "burak")
	testutil.SeedFriends(t, e.db, a.ID, b.ID)

	_, err := e.svc.OnGiftSent(ctx, a.ID, b.ID, 500, "")
	assert.ErrorIs(t, err, apperror.ErrInsufficientFunds)

	_, err = e.svc.OnGiftSent(ctx, a.ID, b.ID, 10, "")
	require.NoError(t, err, "a failed gift releases the slot")

	_, err = e.svc.OnGiftSent(ctx, a.ID, b.ID, 10, "")
	assert.ErrorIs(t, err, apperror.ErrRateLimitExceeded)
	assert.Equal(t, 90, testutil.Reload(t, e.db, a.ID).Points)
}

func TestTriviaSubmission(t *testing.T) {
	e := newEngine(t)
	ctx := testutil.Ctx()
	u := testutil.SeedUser(t, e.db, "okur")
	testutil.SeedTrivia(t, e.db, 10)

	_, err := e.svc.OnTriviaSubmitted(ctx, u.ID, nil)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	set, err := e.daily.TriviaSet(dbctx.New(ctx), e.daily.Today())
	require.NoError(t, err)
	require.NotEmpty(t, set)
	answers := make(map[uint]int, len(set))
	for _, q := range set {
		answers[q.ID] = q.AnswerIndex
	}

	res, err := e.svc.OnTriviaSubmitted(ctx, u.ID, answers)
	require.NoError(t, err)
	assert.Equal(t, len(set), res.Correct)
	assert.Equal(t, len(set)*rewardService.TriviaXPPerCorrect, res.EarnedXP)
	assert.Equal(t, len(set)*rewardService.TriviaPointsPerCorrect, res.EarnedPoints)
	assert.Contains(t, res.BadgesEarned, badgeService.BadgeWiseReader)

	user := testutil.Reload(t, e.db, u.ID)
	assert.Equal(t, res.EarnedXP, user.XP)
	assert.Equal(t, res.EarnedPoints, user.Points)

	again, err := e.svc.OnTriviaSubmitted(ctx, u.ID, answers)
	require.NoError(t, err)
	assert.True(t, again.AlreadyRecorded)
	assert.Equal(t, user.XP, testutil.Reload(t, e.db, u.ID).XP)

	e.clk.Advance(24 * time.Hour)
	tomorrow, err := e.daily.TriviaSet(dbctx.New(ctx), e.daily.Today())
	require.NoError(t, err)
	wrong := make(map[uint]int, len(tomorrow))
	for _, q := range tomorrow {
		wrong[q.ID] = (q.AnswerIndex + 1) % 4
	}
	res, err = e.svc.OnTriviaSubmitted(ctx, u.ID, wrong)
	require.NoError(t, err)
	assert.False(t, res.AlreadyRecorded)
	assert.Zero(t, res.Correct)
	assert.Zero(t, res.EarnedXP)
	assert.Empty(t, res.BadgesEarned)
}

func TestQuestClaim(t *testing.T) {
	e := newEngine(t)
	ctx := testutil.Ctx()
	u := testutil.SeedUser(t, e.db, "okur")
	other := testutil.SeedUser(t, e.db, "baska")
	book := testutil.SeedBook(t, e.db, "Yaban", "Yakup Kadri Karaosmanoğlu", e.romance.ID, 300)

	_, err := e.svc.OnBookCompleted(ctx, u.ID, book.ID)
	require.NoError(t, err)
	weekly := e.quest(t, u.ID, "weekly_pages")
	require.True(t, weekly.Completed)

	_, err = e.svc.OnQuestClaimed(ctx, other.ID, weekly.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	claimed, err := e.svc.OnQuestClaimed(ctx, u.ID, weekly.ID)
	require.NoError(t, err)
	assert.True(t, claimed.Claimed)
	assert.Equal(t, 50+weekly.XPReward, testutil.Reload(t, e.db, u.ID).XP)

	_, err = e.svc.OnQuestClaimed(ctx, u.ID, weekly.ID)
	assert.ErrorIs(t, err, apperror.ErrAlreadyClaimed)

	books := e.quest(t, u.ID, "weekly_books")
	_, err = e.svc.OnQuestClaimed(ctx, u.ID, books.ID)
	assert.ErrorIs(t, err, apperror.ErrNotCompleted)
}

func TestFriendAdded(t *testing.T) {
	e := newEngine(t)
	ctx := testutil.Ctx()
	a := testutil.SeedUser(t, e.db, "ayse")
	b := testutil.SeedUser(t, e.db, "burak")

	_, err := e.svc.OnFriendAdded(ctx, a.ID, a.ID)
	assert.ErrorIs(t, err, apperror.ErrSelfTarget)
	_, err = e.svc.OnFriendAdded(ctx, a.ID, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	res, err := e.svc.OnFriendAdded(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, res.AlreadyFriends)
	require.Len(t, res.QuestsCompleted, 1)
	assert.Equal(t, "weekly_friend", res.QuestsCompleted[0].QuestKey)
	assert.True(t, e.quest(t, b.ID, "weekly_friend").Completed)
	assert.Equal(t, int64(2), e.count(t, &entity.Friendship{}, "1 = 1"))

	res, err = e.svc.OnFriendAdded(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, res.AlreadyFriends)
	assert.Equal(t, int64(2), e.count(t, &entity.ActivityRecord{}, "type = ?", entity.ActivityFriendAdded))
}
