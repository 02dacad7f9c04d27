package service_test

import (
	"testing"
	"time"

	bookRepo "anoa.com/kitaplik/internal/modules/book/repository"
	dailyRepo "anoa.com/kitaplik/internal/modules/daily/repository"
	dailyService "anoa.com/kitaplik/internal/modules/daily/service"
	"anoa.com/kitaplik/internal/testutil"
	"anoa.com/kitaplik/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodayTriviaFollowsSelector(t *testing.T) {
	db := testutil.DB(t)
	qs := testutil.SeedTrivia(t, db, 20)
	svc := dailyService.NewDailyService(dailyRepo.NewTriviaRepository(db), bookRepo.NewBookRepository(db), testutil.Clock(), time.UTC, 5, 50)

	set, err := svc.TodayTrivia(testutil.Ctx(), "2024-03-01")
	require.NoError(t, err)
	require.Len(t, set.Questions, 5)

	for i, idx := range dailyService.DailySelect("2024-03-01", 20, 5) {
		assert.Equal(t, qs[idx].ID, set.Questions[i].ID)
	}

	again, err := svc.TodayTrivia(testutil.Ctx(), "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, set, again)

	assert.Equal(t, "2024-03-06", svc.Today())
}

func TestBookOfTheDay(t *testing.T) {
	db := testutil.DB(t)
	svc := dailyService.NewDailyService(dailyRepo.NewTriviaRepository(db), bookRepo.NewBookRepository(db), testutil.Clock(), time.UTC, 5, 50)

	_, err := svc.BookOfTheDay(testutil.Ctx(), "2024-03-01")
	assert.ErrorIs(t, err, apperror.ErrNotFound, "empty pool")

	cat := testutil.SeedCategory(t, db, "Roman")
	testutil.SeedBook(t, db, "Kitap 1", "Yazar", cat.ID, 100)
	testutil.SeedBook(t, db, "Kitap 2", "Yazar", cat.ID, 100)
	testutil.SeedBook(t, db, "Kitap 3", "Yazar", cat.ID, 100)

	pick, err := svc.BookOfTheDay(testutil.Ctx(), "2024-03-01")
	require.NoError(t, err)
	require.NotNil(t, pick.Book)

	again, err := svc.BookOfTheDay(testutil.Ctx(), "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, pick.Book.ID, again.Book.ID)
}
