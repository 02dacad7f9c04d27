package category

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"anoa.com/kitaplik/internal/entity"
	"anoa.com/kitaplik/internal/modules/category/dto"
	"anoa.com/kitaplik/internal/modules/category/repository"
	"anoa.com/kitaplik/pkg/apperror"
	"anoa.com/kitaplik/pkg/dbctx"
	commonDto "anoa.com/kitaplik/pkg/dto"
)

// CategoryService manages the genres and books that completions point at.
type CategoryService interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	GetAllCategories(ctx context.Context, filter dto.CategoryFilter) (*dto.PaginatedCategoryResponse, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	CreateBook(ctx context.Context, req dto.CreateBookRequest) (*entity.Book, error)
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	dbc := dbctx.New(ctx)
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.ErrInvalidInput
	}

	existing, err := s.repo.FindByName(dbc, name)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.New(http.StatusConflict, "Bu tür zaten mevcut", apperror.ErrBadRequest)
	}

	category := &entity.Category{Name: name}
	if err := s.repo.Create(dbc, category); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: category.ID, Name: category.Name}, nil
}

func (s *categoryService) GetAllCategories(ctx context.Context, filter dto.CategoryFilter) (*dto.PaginatedCategoryResponse, error) {
	categories, err := s.repo.FindAll(dbctx.New(ctx), strings.TrimSpace(filter.Search))
	if err != nil {
		return nil, err
	}

	categoryResponses := make([]dto.CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		categoryResponses = append(categoryResponses, dto.CategoryResponse{
			ID:   cat.ID,
			Name: cat.Name,
		})
	}

	return &dto.PaginatedCategoryResponse{
		Data: categoryResponses,
		Meta: commonDto.PaginationMeta{
			CurrentPage: 1,
			TotalPages:  1,
			TotalItems:  int64(len(categories)),
			Limit:       len(categories),
		},
	}, nil
}

// DeleteCategory refuses to drop a genre that still has books.
func (s *categoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	dbc := dbctx.New(ctx)
	if _, err := s.repo.FindByID(dbc, id); err != nil {
		return err
	}
	books, err := s.repo.CountBooks(dbc, id)
	if err != nil {
		return err
	}
	if books > 0 {
		return apperror.New(http.StatusConflict, "Türe bağlı kitaplar var", apperror.ErrInvalidTransition)
	}
	return s.repo.Delete(dbc, id)
}

func (s *categoryService) CreateBook(ctx context.Context, req dto.CreateBookRequest) (*entity.Book, error) {
	dbc := dbctx.New(ctx)
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, apperror.ErrInvalidInput
	}
	category, err := s.repo.FindByID(dbc, categoryID)
	if err != nil {
		return nil, err
	}

	book := &entity.Book{
		Title:      strings.TrimSpace(req.Title),
		Author:     strings.TrimSpace(req.Author),
		CategoryID: category.ID,
		Pages:      req.Pages,
		CoverURL:   req.CoverURL,
	}
	if book.Title == "" || book.Author == "" {
		return nil, apperror.ErrInvalidInput
	}
	if err := s.repo.CreateBook(dbc, book); err != nil {
		return nil, err
	}
	book.Category = *category
	return book, nil
}
