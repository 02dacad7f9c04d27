package repository

import (
	"errors"
	"time"

	"anoa.com/kitaplik/internal/entity"
	"anoa.com/kitaplik/pkg/apperror"
	"anoa.com/kitaplik/pkg/dbctx"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookRepository interface {
	FindByID(dbc dbctx.Context, id uuid.UUID) (*entity.Book, error)
	// RecentBooks returns the newest books, the pool for the book of the day.
	RecentBooks(dbc dbctx.Context, limit int) ([]entity.Book, error)

	MarkRead(dbc dbctx.Context, userID, bookID uuid.UUID, at time.Time) error
	// RecentCompletions returns the user's READ books, most recently finished first.
	RecentCompletions(dbc dbctx.Context, userID uuid.UUID, limit int) ([]entity.Book, error)
	CountReadInCategory(dbc dbctx.Context, userID, categoryID uuid.UUID) (int64, error)
	// CountRead returns the number of READ shelf entries across all users.
	CountRead(dbc dbctx.Context) (int64, error)

	FindGoal(dbc dbctx.Context, userID uuid.UUID, year int) (*entity.ReadingGoal, error)
	UpsertGoal(dbc dbctx.Context, goal *entity.ReadingGoal) error
	// IncrementGoal adds one finished book to the yearly goal and returns it,
	// or nil when the user has no goal for year.
	IncrementGoal(dbc dbctx.Context, userID uuid.UUID, year int) (*entity.ReadingGoal, error)
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) FindByID(dbc dbctx.Context, id uuid.UUID) (*entity.Book, error) {
	var book entity.Book
	if err := dbc.DB(r.db).Preload("Category").Where("id = ?", id).First(&book).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) RecentBooks(dbc dbctx.Context, limit int) ([]entity.Book, error) {
	var books []entity.Book
	err := dbc.DB(r.db).
		Preload("Category").
		Order("created_at desc, id asc").
		Limit(limit).
		Find(&books).Error
	return books, err
}

func (r *bookRepository) MarkRead(dbc dbctx.Context, userID, bookID uuid.UUID, at time.Time) error {
	entry := entity.UserBook{
		UserID:     userID,
		BookID:     bookID,
		Status:     entity.ShelfRead,
		FinishedAt: &at,
		UpdatedAt:  at,
	}
	return dbc.DB(r.db).Omit("Book").Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "finished_at", "updated_at"}),
	}).Create(&entry).Error
}

func (r *bookRepository) RecentCompletions(dbc dbctx.Context, userID uuid.UUID, limit int) ([]entity.Book, error) {
	var books []entity.Book
	err := dbc.DB(r.db).
		Model(&entity.Book{}).
		Select("books.*").
		Joins("JOIN user_books ON user_books.book_id = books.id").
		Where("user_books.user_id = ? AND user_books.status = ?", userID, entity.ShelfRead).
		Order("user_books.finished_at desc, user_books.id desc").
		Limit(limit).
		Find(&books).Error
	return books, err
}

func (r *bookRepository) CountReadInCategory(dbc dbctx.Context, userID, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := dbc.DB(r.db).
		Model(&entity.UserBook{}).
		Joins("JOIN books ON books.id = user_books.book_id").
		Where("user_books.user_id = ? AND user_books.status = ? AND books.category_id = ?", userID, entity.ShelfRead, categoryID).
		Count(&count).Error
	return count, err
}

func (r *bookRepository) CountRead(dbc dbctx.Context) (int64, error) {
	var count int64
	err := dbc.DB(r.db).
		Model(&entity.UserBook{}).
		Where("status = ?", entity.ShelfRead).
		Count(&count).Error
	return count, err
}

func (r *bookRepository) FindGoal(dbc dbctx.Context, userID uuid.UUID, year int) (*entity.ReadingGoal, error) {
	var goal entity.ReadingGoal
	err := dbc.DB(r.db).Where("user_id = ? AND year = ?", userID, year).First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &goal, nil
}

func (r *bookRepository) UpsertGoal(dbc dbctx.Context, goal *entity.ReadingGoal) error {
	return dbc.DB(r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "year"}},
		DoUpdates: clause.AssignmentColumns([]string{"target"}),
	}).Create(goal).Error
}

func (r *bookRepository) IncrementGoal(dbc dbctx.Context, userID uuid.UUID, year int) (*entity.ReadingGoal, error) {
	db := dbc.DB(r.db)
	res := db.Model(&entity.ReadingGoal{}).
		Where("user_id = ? AND year = ?", userID, year).
		UpdateColumn("completed", gorm.Expr("completed + 1"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	var goal entity.ReadingGoal
	if err := db.Where("user_id = ? AND year = ?", userID, year).First(&goal).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}
