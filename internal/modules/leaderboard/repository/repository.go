package repository

import (
	"time"

	"anoa.com/kitaplik/internal/entity"
	"anoa.com/kitaplik/pkg/dbctx"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Standing is one user's row in a ranking. PeriodXP is the XP earned in the
// requested window; it equals XP for the all-time board.
type Standing struct {
	UserID    uuid.UUID
	Username  string
	AvatarURL *string
	Role      string
	XP        int
	Level     int
	PeriodXP  int
}

type LeaderboardRepository interface {
	TopAllTime(dbc dbctx.Context, limit int) ([]Standing, error)
	TopSince(dbc dbctx.Context, since time.Time, limit int) ([]Standing, error)
	XPSince(dbc dbctx.Context, userIDs []uuid.UUID, since time.Time) (map[uuid.UUID]int, error)
}

type leaderboardRepository struct {
	db *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

func (r *leaderboardRepository) TopAllTime(dbc dbctx.Context, limit int) ([]Standing, error) {
	var rows []Standing
	err := dbc.DB(r.db).
		Model(&entity.User{}).
		Select("id AS user_id, username, avatar_url, role, xp, level, xp AS period_xp").
		Order("xp DESC, created_at ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// TopSince ranks users by the XP logged at or after since.
func (r *leaderboardRepository) TopSince(dbc dbctx.Context, since time.Time, limit int) ([]Standing, error) {
	var rows []Standing
	err := dbc.DB(r.db).
		Table("xp_logs").
		Select("users.id AS user_id, users.username, users.avatar_url, users.role, users.xp, users.level, SUM(xp_logs.amount) AS period_xp").
		Joins("JOIN users ON users.id = xp_logs.user_id").
		Where("xp_logs.created_at >= ?", since).
		Group("users.id, users.username, users.avatar_url, users.role, users.xp, users.level").
		Order("period_xp DESC, users.xp DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *leaderboardRepository) XPSince(dbc dbctx.Context, userIDs []uuid.UUID, since time.Time) (map[uuid.UUID]int, error) {
	out := make(map[uuid.UUID]int, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	type result struct {
		UserID uuid.UUID
		Total  int
	}
	var results []result
	err := dbc.DB(r.db).
		Model(&entity.XPLog{}).
		Select("user_id, SUM(amount) AS total").
		Where("user_id IN ? AND created_at >= ?", userIDs, since).
		Group("user_id").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	for _, res := range results {
		out[res.UserID] = res.Total
	}
	return out, nil
}
