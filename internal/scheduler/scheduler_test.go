package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"anoa.com/kitaplik/internal/entity"
	ledgerRepo "anoa.com/kitaplik/internal/modules/ledger/repository"
	ledgerService "anoa.com/kitaplik/internal/modules/ledger/service"
	notifRepo "anoa.com/kitaplik/internal/modules/notification/repository"
	notifService "anoa.com/kitaplik/internal/modules/notification/service"
	questRepo "anoa.com/kitaplik/internal/modules/quest/repository"
	questService "anoa.com/kitaplik/internal/modules/quest/service"
	"anoa.com/kitaplik/internal/testutil"
	"anoa.com/kitaplik/pkg/dbctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	name, schedule string
	runs           int
	err            error
}

func (j *countingJob) Name() string     { return j.name }
func (j *countingJob) Schedule() string { return j.schedule }
func (j *countingJob) Run(context.Context) error {
	j.runs++
	return j.err
}

func TestRegisterAndRunByName(t *testing.T) {
	s := New(time.UTC, testutil.Logger())
	ok := &countingJob{name: "ok", schedule: "@daily"}
	manual := &countingJob{name: "manual", err: errors.New("boom")}

	require.NoError(t, s.Register(ok))
	require.NoError(t, s.Register(manual))
	assert.Error(t, s.Register(&countingJob{name: "bad", schedule: "not a cron"}))
	assert.Equal(t, []string{"ok", "manual"}, s.Registered())

	require.NoError(t, s.RunByName(testutil.Ctx(), "ok"))
	assert.Equal(t, 1, ok.runs)
	assert.EqualError(t, s.RunByName(testutil.Ctx(), "manual"), "boom")
	assert.Error(t, s.RunByName(testutil.Ctx(), "missing"))
}

func TestQuestRolloverPrunesEndedPeriods(t *testing.T) {
	db := testutil.DB(t)
	clk := testutil.Clock()
	log := testutil.Logger()
	notifier := notifService.NewNotificationService(notifRepo.NewNotificationRepository(db), nil, clk, log)
	ledger := ledgerService.NewLedgerService(ledgerRepo.NewLedgerRepository(db), notifier, clk, log)
	quests := questService.NewQuestService(questRepo.NewQuestRepository(db), ledger, notifier, testutil.Catalog(t), clk, time.UTC, log)
	u := testutil.SeedUser(t, db, "okur")

	_, err := quests.UpdateQuestProgress(dbctx.New(testutil.Ctx()), u.ID, entity.MetricReadPages, 10)
	require.NoError(t, err)

	job := &QuestRollover{Quests: quests, Clock: clk, Retention: 24 * time.Hour}
	require.NoError(t, job.Run(testutil.Ctx()))
	var n int64
	require.NoError(t, db.Model(&entity.QuestProgress{}).Count(&n).Error)
	assert.Equal(t, int64(2), n, "current periods are kept")

	clk.Advance(9 * 24 * time.Hour)
	require.NoError(t, job.Run(testutil.Ctx()))
	require.NoError(t, db.Model(&entity.QuestProgress{}).Count(&n).Error)
	assert.Zero(t, n)
}
