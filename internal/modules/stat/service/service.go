package service

import (
	"context"
	"fmt"

	bookRepo "anoa.com/kitaplik/internal/modules/book/repository"
	statDto "anoa.com/kitaplik/internal/modules/stat/dto"
	userRepo "anoa.com/kitaplik/internal/modules/user/repository"
	"anoa.com/kitaplik/pkg/dbctx"
	"golang.org/x/sync/errgroup"
)

type StatService interface {
	// CommunityStats reports how many readers are registered and how many
	// books they have finished in total.
	CommunityStats(ctx context.Context) (*statDto.CommunityStats, error)
}

type statService struct {
	users userRepo.UserRepository
	books bookRepo.BookRepository
}

func NewStatService(users userRepo.UserRepository, books bookRepo.BookRepository) StatService {
	return &statService{users: users, books: books}
}

func (s *statService) CommunityStats(ctx context.Context) (*statDto.CommunityStats, error) {
	res := &statDto.CommunityStats{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.users.Count(dbctx.New(gctx))
		if err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		res.TotalUsers = n
		return nil
	})
	g.Go(func() error {
		n, err := s.books.CountRead(dbctx.New(gctx))
		if err != nil {
			return fmt.Errorf("count books read: %w", err)
		}
		res.BooksRead = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}
