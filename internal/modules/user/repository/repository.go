package repository

import (
	"errors"

	"anoa.com/kitaplik/internal/entity"
	"anoa.com/kitaplik/pkg/apperror"
	"anoa.com/kitaplik/pkg/dbctx"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(dbc dbctx.Context, user *entity.User) error
	FindByID(dbc dbctx.Context, id uuid.UUID) (*entity.User, error)
	FindByUsername(dbc dbctx.Context, username string) (*entity.User, error)
	CountExisting(dbc dbctx.Context, ids ...uuid.UUID) (int64, error)
	Count(dbc dbctx.Context) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(dbc dbctx.Context, user *entity.User) error {
	return dbc.DB(r.db).Create(user).Error
}

func (r *userRepository) FindByID(dbc dbctx.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	if err := dbc.DB(r.db).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(dbc dbctx.Context, username string) (*entity.User, error) {
	var user entity.User
	if err := dbc.DB(r.db).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CountExisting returns how many of ids match a user row.
func (r *userRepository) CountExisting(dbc dbctx.Context, ids ...uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := dbc.DB(r.db).Model(&entity.User{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

func (r *userRepository) Count(dbc dbctx.Context) (int64, error) {
	var count int64
	if err := dbc.DB(r.db).Model(&entity.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
