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

type QuestRepository interface {
	// EnsureAndLock creates the period row when missing and returns it locked.
	EnsureAndLock(dbc dbctx.Context, row *entity.QuestProgress) (*entity.QuestProgress, error)
	LockByID(dbc dbctx.Context, id uuid.UUID) (*entity.QuestProgress, error)
	// AdvanceProgress writes progress on a row that is not completed yet and
	// reports whether the row was updated.
	AdvanceProgress(dbc dbctx.Context, id uuid.UUID, progress int, completedAt *time.Time) (bool, error)
	// MarkClaimed flips claimed on a completed, unclaimed row.
	MarkClaimed(dbc dbctx.Context, id uuid.UUID, at time.Time) (bool, error)
	ListForPeriods(dbc dbctx.Context, userID uuid.UUID, periodKeys []string) ([]entity.QuestProgress, error)
	DeleteEndedBefore(dbc dbctx.Context, cutoff time.Time) (int64, error)
}

type questRepository struct {
	db *gorm.DB
}

func NewQuestRepository(db *gorm.DB) QuestRepository {
	return &questRepository{db: db}
}

func (r *questRepository) EnsureAndLock(dbc dbctx.Context, row *entity.QuestProgress) (*entity.QuestProgress, error) {
	db := dbc.DB(r.db)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "quest_key"}, {Name: "period_key"}},
		DoNothing: true,
	}).Create(row).Error
	if err != nil {
		return nil, err
	}

	var existing entity.QuestProgress
	err = db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND quest_key = ? AND period_key = ?", row.UserID, row.QuestKey, row.PeriodKey).
		First(&existing).Error
	if err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *questRepository) LockByID(dbc dbctx.Context, id uuid.UUID) (*entity.QuestProgress, error) {
	var row entity.QuestProgress
	err := dbc.DB(r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *questRepository) AdvanceProgress(dbc dbctx.Context, id uuid.UUID, progress int, completedAt *time.Time) (bool, error) {
	updates := map[string]interface{}{"progress": progress}
	if completedAt != nil {
		updates["completed"] = true
		updates["completed_at"] = *completedAt
	}
	res := dbc.DB(r.db).Model(&entity.QuestProgress{}).
		Where("id = ? AND completed = ? AND progress <= ?", id, false, progress).
		Updates(updates)
	return res.RowsAffected == 1, res.Error
}

func (r *questRepository) MarkClaimed(dbc dbctx.Context, id uuid.UUID, at time.Time) (bool, error) {
	res := dbc.DB(r.db).Model(&entity.QuestProgress{}).
		Where("id = ? AND completed = ? AND claimed = ?", id, true, false).
		Updates(map[string]interface{}{"claimed": true, "claimed_at": at})
	return res.RowsAffected == 1, res.Error
}

func (r *questRepository) ListForPeriods(dbc dbctx.Context, userID uuid.UUID, periodKeys []string) ([]entity.QuestProgress, error) {
	var rows []entity.QuestProgress
	if len(periodKeys) == 0 {
		return rows, nil
	}
	err := dbc.DB(r.db).
		Where("user_id = ? AND period_key IN ?", userID, periodKeys).
		Order("period_end asc, quest_key asc").
		Find(&rows).Error
	return rows, err
}

func (r *questRepository) DeleteEndedBefore(dbc dbctx.Context, cutoff time.Time) (int64, error) {
	res := dbc.DB(r.db).Where("period_end < ?", cutoff).Delete(&entity.QuestProgress{})
	return res.RowsAffected, res.Error
}
