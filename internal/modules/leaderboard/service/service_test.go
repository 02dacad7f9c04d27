package service_test

import (
	"testing"
	"time"

	"anoa.com/kitaplik/internal/entity"
	leaderboardRepo "anoa.com/kitaplik/internal/modules/leaderboard/repository"
	leaderboardService "anoa.com/kitaplik/internal/modules/leaderboard/service"
	"anoa.com/kitaplik/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func giveXP(t *testing.T, db *gorm.DB, userID uuid.UUID, amount int, at time.Time) {
	t.Helper()
	require.NoError(t, db.Model(&entity.User{}).Where("id = ?", userID).
		UpdateColumn("xp", gorm.Expr("xp + ?", amount)).Error)
	require.NoError(t, db.Create(&entity.XPLog{UserID: userID, Amount: amount, Source: "book_completed", CreatedAt: at}).Error)
}

func TestGetLeaderboard(t *testing.T) {
	db := testutil.DB(t)
	clk := testutil.Clock()
	svc := leaderboardService.NewLeaderboardService(leaderboardRepo.NewLeaderboardRepository(db), clk)
	ctx := testutil.Ctx()

	veteran := testutil.SeedUser(t, db, "emektar")
	rookie := testutil.SeedUser(t, db, "caylak")
	giveXP(t, db, veteran.ID, 1000, testutil.Epoch.Add(-60*24*time.Hour))
	giveXP(t, db, veteran.ID, 20, testutil.Epoch.Add(-time.Hour))
	giveXP(t, db, rookie.ID, 200, testutil.Epoch.Add(-2*time.Hour))

	all, err := svc.GetLeaderboard(ctx, 10, leaderboardService.TimeframeAllTime)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "emektar", all[0].Username)
	assert.Equal(t, 1, all[0].Position)
	assert.Equal(t, 1020, all[0].PeriodXP)
	assert.Equal(t, 20, all[0].LevelStatus.WeeklyXP)

	weekly, err := svc.GetLeaderboard(ctx, 10, leaderboardService.TimeframeWeekly)
	require.NoError(t, err)
	require.Len(t, weekly, 2)
	assert.Equal(t, "caylak", weekly[0].Username)
	assert.Equal(t, 200, weekly[0].PeriodXP)
	assert.Equal(t, "⚡ Hızlı Okur", weekly[0].LevelStatus.WeeklyLabel)
	assert.Equal(t, 4, weekly[1].LevelStatus.Level, "title stays on all-time xp")

	top1, err := svc.GetLeaderboard(ctx, 1, leaderboardService.TimeframeMonthly)
	require.NoError(t, err)
	require.Len(t, top1, 1)
	assert.Equal(t, "caylak", top1[0].Username)
}

func TestLevelStatusFor(t *testing.T) {
	db := testutil.DB(t)
	svc := leaderboardService.NewLeaderboardService(leaderboardRepo.NewLeaderboardRepository(db), testutil.Clock())
	u := testutil.SeedUser(t, db, "okur")
	giveXP(t, db, u.ID, 160, testutil.Epoch.Add(-time.Hour))

	st, err := svc.LevelStatusFor(testutil.Ctx(), u.ID, 160)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Level)
	assert.Equal(t, 160, st.WeeklyXP)
	assert.Equal(t, "⚡ Hızlı Okur", st.WeeklyLabel)
}
