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

type LedgerRepository interface {
	// LockWallet reads the user row with a row lock held until the transaction ends.
	LockWallet(dbc dbctx.Context, userID uuid.UUID) (*entity.User, error)
	GetWallet(dbc dbctx.Context, userID uuid.UUID) (*entity.User, error)
	SetXP(dbc dbctx.Context, userID uuid.UUID, xp, level int) error
	CreateXPLog(dbc dbctx.Context, log *entity.XPLog) error
	// DebitPoints reports false when the balance is lower than amount.
	DebitPoints(dbc dbctx.Context, userID uuid.UUID, amount int) (bool, error)
	CreditPoints(dbc dbctx.Context, userID uuid.UUID, amount int) (bool, error)
}

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) LockWallet(dbc dbctx.Context, userID uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := dbc.DB(r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", userID).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *ledgerRepository) GetWallet(dbc dbctx.Context, userID uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := dbc.DB(r.db).
		Select("id", "username", "xp", "level", "points").
		Where("id = ?", userID).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *ledgerRepository) SetXP(dbc dbctx.Context, userID uuid.UUID, xp, level int) error {
	res := dbc.DB(r.db).Model(&entity.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{"xp": xp, "level": level})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (r *ledgerRepository) CreateXPLog(dbc dbctx.Context, log *entity.XPLog) error {
	return dbc.DB(r.db).Create(log).Error
}

func (r *ledgerRepository) DebitPoints(dbc dbctx.Context, userID uuid.UUID, amount int) (bool, error) {
	res := dbc.DB(r.db).Model(&entity.User{}).
		Where("id = ? AND points >= ?", userID, amount).
		UpdateColumn("points", gorm.Expr("points - ?", amount))
	return res.RowsAffected == 1, res.Error
}

func (r *ledgerRepository) CreditPoints(dbc dbctx.Context, userID uuid.UUID, amount int) (bool, error) {
	res := dbc.DB(r.db).Model(&entity.User{}).
		Where("id = ?", userID).
		UpdateColumn("points", gorm.Expr("points + ?", amount))
	return res.RowsAffected == 1, res.Error
}
