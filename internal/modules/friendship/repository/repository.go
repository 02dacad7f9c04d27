package repository

import (
	"anoa.com/kitaplik/internal/entity"
	"anoa.com/kitaplik/pkg/dbctx"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FriendshipRepository interface {
	AreFriends(dbc dbctx.Context, userID, friendID uuid.UUID) (bool, error)
	// Add stores the friendship in both directions and reports whether it was new.
	Add(dbc dbctx.Context, userID, friendID uuid.UUID) (bool, error)
}

type friendshipRepository struct {
	db *gorm.DB
}

func NewFriendshipRepository(db *gorm.DB) FriendshipRepository {
	return &friendshipRepository{db: db}
}

func (r *friendshipRepository) AreFriends(dbc dbctx.Context, userID, friendID uuid.UUID) (bool, error) {
	var count int64
	err := dbc.DB(r.db).Model(&entity.Friendship{}).
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		Count(&count).Error
	return count > 0, err
}

func (r *friendshipRepository) Add(dbc dbctx.Context, userID, friendID uuid.UUID) (bool, error) {
	rows := []entity.Friendship{
		{UserID: userID, FriendID: friendID},
		{UserID: friendID, FriendID: userID},
	}
	res := dbc.DB(r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "friend_id"}},
		DoNothing: true,
	}).Create(&rows)
	return res.RowsAffected > 0, res.Error
}
