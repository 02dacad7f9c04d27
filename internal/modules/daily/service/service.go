package service

import (
	"context"
	"fmt"
	"time"

	"anoa.com/kitaplik/internal/entity"
	bookRepo "anoa.com/kitaplik/internal/modules/book/repository"
	dailyDto "anoa.com/kitaplik/internal/modules/daily/dto"
	dailyRepo "anoa.com/kitaplik/internal/modules/daily/repository"
	"anoa.com/kitaplik/pkg/apperror"
	"anoa.com/kitaplik/pkg/clock"
	"anoa.com/kitaplik/pkg/dbctx"
)

type DailyService interface {
	// Today is the current date key in the configured timezone.
	Today() string
	TodayTrivia(ctx context.Context, date string) (*dailyDto.TriviaSet, error)
	// TriviaSet returns the selected questions for date, answers included, in
	// selection order.
	TriviaSet(dbc dbctx.Context, date string) ([]entity.TriviaQuestion, error)
	BookOfTheDay(ctx context.Context, date string) (*dailyDto.BookOfTheDay, error)
}

type dailyService struct {
	trivia   dailyRepo.TriviaRepository
	books    bookRepo.BookRepository
	clock    clock.Clock
	loc      *time.Location
	setSize  int
	poolSize int
}

func NewDailyService(trivia dailyRepo.TriviaRepository, books bookRepo.BookRepository, clk clock.Clock, loc *time.Location, setSize, bookPool int) DailyService {
	return &dailyService{
		trivia:   trivia,
		books:    books,
		clock:    clk,
		loc:      loc,
		setSize:  setSize,
		poolSize: bookPool,
	}
}

func (s *dailyService) Today() string {
	return DateKey(s.clock.Now(), s.loc)
}

func (s *dailyService) TriviaSet(dbc dbctx.Context, date string) ([]entity.TriviaQuestion, error) {
	ids, err := s.trivia.PoolIDs(dbc)
	if err != nil {
		return nil, fmt.Errorf("trivia pool: %w", err)
	}
	picked := DailySelect(date, len(ids), s.setSize)

	wanted := make([]uint, 0, len(picked))
	seen := make(map[uint]bool, len(picked))
	for _, idx := range picked {
		id := ids[idx]
		if !seen[id] {
			seen[id] = true
			wanted = append(wanted, id)
		}
	}
	rows, err := s.trivia.FindByIDs(dbc, wanted)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]entity.TriviaQuestion, len(rows))
	for _, q := range rows {
		byID[q.ID] = q
	}

	set := make([]entity.TriviaQuestion, 0, len(wanted))
	for _, id := range wanted {
		if q, ok := byID[id]; ok {
			set = append(set, q)
		}
	}
	return set, nil
}

func (s *dailyService) TodayTrivia(ctx context.Context, date string) (*dailyDto.TriviaSet, error) {
	set, err := s.TriviaSet(dbctx.New(ctx), date)
	if err != nil {
		return nil, err
	}
	out := &dailyDto.TriviaSet{Date: date, Questions: make([]dailyDto.TriviaQuestion, 0, len(set))}
	for _, q := range set {
		out.Questions = append(out.Questions, dailyDto.TriviaQuestion{ID: q.ID, Question: q.Question, Options: q.Options})
	}
	return out, nil
}

func (s *dailyService) BookOfTheDay(ctx context.Context, date string) (*dailyDto.BookOfTheDay, error) {
	pool, err := s.books.RecentBooks(dbctx.New(ctx), s.poolSize)
	if err != nil {
		return nil, fmt.Errorf("book pool: %w", err)
	}
	picked := DailySelect(date, len(pool), 1)
	if len(picked) == 0 {
		return nil, apperror.ErrNotFound
	}
	book := pool[picked[0]]
	return &dailyDto.BookOfTheDay{Date: date, Book: &book}, nil
}
