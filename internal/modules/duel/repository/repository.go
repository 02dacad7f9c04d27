package repository

import (
	"errors"

	"anoa.com/kitaplik/internal/entity"
	"anoa.com/kitaplik/pkg/apperror"
	"anoa.com/kitaplik/pkg/dbctx"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DuelRepository interface {
	Create(dbc dbctx.Context, duel *entity.Duel) error
	LockByID(dbc dbctx.Context, id uuid.UUID) (*entity.Duel, error)
	// FindLive returns the PENDING or ACTIVE duel holding activeKey, nil when none.
	FindLive(dbc dbctx.Context, activeKey string) (*entity.Duel, error)
	// LockActiveForBook returns the unresolved ACTIVE duel on bookID the user
	// takes part in, nil when none.
	LockActiveForBook(dbc dbctx.Context, userID, bookID uuid.UUID) (*entity.Duel, error)
	// Transition moves a duel out of from with a compare-and-set on status.
	Transition(dbc dbctx.Context, id uuid.UUID, from, to entity.DuelStatus, releaseKey bool) (bool, error)
	// Complete resolves an ACTIVE duel that has no winner yet.
	Complete(dbc dbctx.Context, id, winnerID uuid.UUID) (bool, error)
	CountWins(dbc dbctx.Context, userID uuid.UUID) (int64, error)
	ListForUser(dbc dbctx.Context, userID uuid.UUID, status entity.DuelStatus) ([]entity.Duel, error)
}

type duelRepository struct {
	db *gorm.DB
}

func NewDuelRepository(db *gorm.DB) DuelRepository {
	return &duelRepository{db: db}
}

func (r *duelRepository) Create(dbc dbctx.Context, duel *entity.Duel) error {
	return dbc.DB(r.db).Create(duel).Error
}

func (r *duelRepository) LockByID(dbc dbctx.Context, id uuid.UUID) (*entity.Duel, error) {
	var duel entity.Duel
	err := dbc.DB(r.db).Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&duel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &duel, nil
}

func (r *duelRepository) FindLive(dbc dbctx.Context, activeKey string) (*entity.Duel, error) {
	var duels []entity.Duel
	err := dbc.DB(r.db).
		Where("active_key = ? AND status IN ?", activeKey, []entity.DuelStatus{entity.DuelPending, entity.DuelActive}).
		Limit(1).
		Find(&duels).Error
	if err != nil || len(duels) == 0 {
		return nil, err
	}
	return &duels[0], nil
}

func (r *duelRepository) LockActiveForBook(dbc dbctx.Context, userID, bookID uuid.UUID) (*entity.Duel, error) {
	var duels []entity.Duel
	err := dbc.DB(r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("book_id = ? AND status = ? AND winner_id IS NULL", bookID, entity.DuelActive).
		Where("(challenger_id = ? OR opponent_id = ?)", userID, userID).
		Order("created_at asc").
		Limit(1).
		Find(&duels).Error
	if err != nil || len(duels) == 0 {
		return nil, err
	}
	return &duels[0], nil
}

func (r *duelRepository) Transition(dbc dbctx.Context, id uuid.UUID, from, to entity.DuelStatus, releaseKey bool) (bool, error) {
	updates := map[string]interface{}{"status": to}
	if releaseKey {
		updates["active_key"] = nil
	}
	res := dbc.DB(r.db).Model(&entity.Duel{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	return res.RowsAffected == 1, res.Error
}

func (r *duelRepository) Complete(dbc dbctx.Context, id, winnerID uuid.UUID) (bool, error) {
	res := dbc.DB(r.db).Model(&entity.Duel{}).
		Where("id = ? AND status = ? AND winner_id IS NULL", id, entity.DuelActive).
		Updates(map[string]interface{}{
			"status":     entity.DuelCompleted,
			"winner_id":  winnerID,
			"active_key": nil,
		})
	return res.RowsAffected == 1, res.Error
}

func (r *duelRepository) CountWins(dbc dbctx.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := dbc.DB(r.db).Model(&entity.Duel{}).
		Where("winner_id = ? AND status = ?", userID, entity.DuelCompleted).
		Count(&count).Error
	return count, err
}

func (r *duelRepository) ListForUser(dbc dbctx.Context, userID uuid.UUID, status entity.DuelStatus) ([]entity.Duel, error) {
	var duels []entity.Duel
	q := dbc.DB(r.db).Where("(challenger_id = ? OR opponent_id = ?)", userID, userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("updated_at desc").Limit(50).Find(&duels).Error
	return duels, err
}
