package service

import (
	"context"
	"errors"
	"time"

	"anoa.com/kitaplik/internal/entity"
	bookRepo "anoa.com/kitaplik/internal/modules/book/repository"
	"anoa.com/kitaplik/pkg/apperror"
	"anoa.com/kitaplik/pkg/clock"
	"anoa.com/kitaplik/pkg/dbctx"
	"github.com/google/uuid"
)

type BookService interface {
	// SetGoal creates or retargets the user's reading goal for the current year.
	SetGoal(ctx context.Context, userID uuid.UUID, target int) (*entity.ReadingGoal, error)
	CurrentGoal(ctx context.Context, userID uuid.UUID) (*entity.ReadingGoal, error)
	// GoalYear is the calendar year goals are counted against at t.
	GoalYear(t time.Time) int
}

type bookService struct {
	repo  bookRepo.BookRepository
	clock clock.Clock
	loc   *time.Location
}

func NewBookService(repo bookRepo.BookRepository, clk clock.Clock, loc *time.Location) BookService {
	if loc == nil {
		loc = time.UTC
	}
	return &bookService{repo: repo, clock: clk, loc: loc}
}

func (s *bookService) GoalYear(t time.Time) int {
	return t.In(s.loc).Year()
}

func (s *bookService) SetGoal(ctx context.Context, userID uuid.UUID, target int) (*entity.ReadingGoal, error) {
	if target <= 0 {
		return nil, apperror.ErrInvalidInput
	}
	dbc := dbctx.New(ctx)
	year := s.GoalYear(s.clock.Now())
	if err := s.repo.UpsertGoal(dbc, &entity.ReadingGoal{UserID: userID, Year: year, Target: target}); err != nil {
		return nil, err
	}
	return s.repo.FindGoal(dbc, userID, year)
}

func (s *bookService) CurrentGoal(ctx context.Context, userID uuid.UUID) (*entity.ReadingGoal, error) {
	goal, err := s.repo.FindGoal(dbctx.New(ctx), userID, s.GoalYear(s.clock.Now()))
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, nil
	}
	return goal, err
}
