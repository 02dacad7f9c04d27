package repository

import (
	"anoa.com/kitaplik/internal/entity"
	"anoa.com/kitaplik/pkg/dbctx"
	"gorm.io/gorm"
)

type TriviaRepository interface {
	// PoolIDs returns every question id in ascending order; positions in this
	// slice are the pool indices.
	PoolIDs(dbc dbctx.Context) ([]uint, error)
	FindByIDs(dbc dbctx.Context, ids []uint) ([]entity.TriviaQuestion, error)
	Create(dbc dbctx.Context, q *entity.TriviaQuestion) error
}

type triviaRepository struct {
	db *gorm.DB
}

func NewTriviaRepository(db *gorm.DB) TriviaRepository {
	return &triviaRepository{db: db}
}

func (r *triviaRepository) PoolIDs(dbc dbctx.Context) ([]uint, error) {
	var ids []uint
	err := dbc.DB(r.db).Model(&entity.TriviaQuestion{}).Order("id asc").Pluck("id", &ids).Error
	return ids, err
}

func (r *triviaRepository) FindByIDs(dbc dbctx.Context, ids []uint) ([]entity.TriviaQuestion, error) {
	var questions []entity.TriviaQuestion
	if len(ids) == 0 {
		return questions, nil
	}
	err := dbc.DB(r.db).Where("id IN ?", ids).Find(&questions).Error
	return questions, err
}

func (r *triviaRepository) Create(dbc dbctx.Context, q *entity.TriviaQuestion) error {
	return dbc.DB(r.db).Create(q).Error
}
