package repository

import (
	"errors"
	"strings"

	"anoa.com/kitaplik/internal/entity"
	"anoa.com/kitaplik/pkg/apperror"
	"anoa.com/kitaplik/pkg/dbctx"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(dbc dbctx.Context, category *entity.Category) error
	FindByName(dbc dbctx.Context, name string) (*entity.Category, error)
	FindByID(dbc dbctx.Context, id uuid.UUID) (*entity.Category, error)
	FindAll(dbc dbctx.Context, filter string) ([]*entity.Category, error)
	CountBooks(dbc dbctx.Context, id uuid.UUID) (int64, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error

	CreateBook(dbc dbctx.Context, book *entity.Book) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(dbc dbctx.Context, category *entity.Category) error {
	return dbc.DB(r.db).Create(category).Error
}

func (r *categoryRepository) FindByName(dbc dbctx.Context, name string) (*entity.Category, error) {
	var category entity.Category
	err := dbc.DB(r.db).Where("LOWER(name) = ?", strings.ToLower(name)).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindByID(dbc dbctx.Context, id uuid.UUID) (*entity.Category, error) {
	var category entity.Category
	err := dbc.DB(r.db).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindAll(dbc dbctx.Context, filter string) ([]*entity.Category, error) {
	var categories []*entity.Category
	query := dbc.DB(r.db).Order("name asc")

	if filter != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter)+"%")
	}

	if err := query.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) CountBooks(dbc dbctx.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := dbc.DB(r.db).Model(&entity.Book{}).Where("category_id = ?", id).Count(&count).Error
	return count, err
}

func (r *categoryRepository) Delete(dbc dbctx.Context, id uuid.UUID) error {
	return dbc.DB(r.db).Delete(&entity.Category{}, "id = ?", id).Error
}

func (r *categoryRepository) CreateBook(dbc dbctx.Context, book *entity.Book) error {
	return dbc.DB(r.db).Omit("Category").Create(book).Error
}
