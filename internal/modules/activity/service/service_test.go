package service_test

import (
	"testing"
	"time"

	"anoa.com/kitaplik/internal/entity"
	activityRepo "anoa.com/kitaplik/internal/modules/activity/repository"
	activityService "anoa.com/kitaplik/internal/modules/activity/service"
	"anoa.com/kitaplik/internal/testutil"
	"anoa.com/kitaplik/pkg/dbctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordActivityIfAbsent(t *testing.T) {
	db := testutil.DB(t)
	clk := testutil.Clock()
	svc := activityService.NewActivityService(activityRepo.NewActivityRepository(db), clk)
	u := testutil.SeedUser(t, db, "okur")
	dbc := dbctx.New(testutil.Ctx())
	window := 5 * time.Minute

	recorded, err := svc.RecordActivityIfAbsent(dbc, u.ID, entity.ActivityFinishedReading, "book-1", window)
	require.NoError(t, err)
	assert.True(t, recorded)

	clk.Advance(4 * time.Minute)
	recorded, err = svc.RecordActivityIfAbsent(dbc, u.ID, entity.ActivityFinishedReading, "book-1", window)
	require.NoError(t, err)
	assert.False(t, recorded, "inside the window")

	recorded, err = svc.RecordActivityIfAbsent(dbc, u.ID, entity.ActivityFinishedReading, "book-2", window)
	require.NoError(t, err)
	assert.True(t, recorded, "different target")

	clk.Advance(2 * time.Minute)
	recorded, err = svc.RecordActivityIfAbsent(dbc, u.ID, entity.ActivityFinishedReading, "book-1", window)
	require.NoError(t, err)
	assert.True(t, recorded, "window elapsed")

	history, err := svc.History(dbc, u.ID, 0)
	require.NoError(t, err)
	assert.Len(t, history, 3)
	assert.Equal(t, "book-1", history[0].TargetID)
}
