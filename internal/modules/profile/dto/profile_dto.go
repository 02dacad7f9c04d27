package dto

import (
	"time"

	"anoa.com/kitaplik/internal/entity"
	questDto "anoa.com/kitaplik/internal/modules/quest/dto"
	commonDto "anoa.com/kitaplik/pkg/dto"
)

// ProgressResponse is the signed-in user's full progression view.
type ProgressResponse struct {
	UserID         string                  `json:"user_id"`
	Username       string                  `json:"username"`
	Points         int                     `json:"points"`
	LevelStatus    commonDto.LevelStatus   `json:"level_status"`
	Badges         []entity.UserBadge      `json:"badges"`
	ReadingGoal    *entity.ReadingGoal     `json:"reading_goal"`
	Quests         []questDto.QuestView    `json:"quests"`
	RecentActivity []entity.ActivityRecord `json:"recent_activity"`
}

// PublicProfileResponse is returned when viewing another reader's profile.
type PublicProfileResponse struct {
	Username    string                `json:"username"`
	Role        string                `json:"role"`
	AvatarURL   *string               `json:"avatar_url,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	LevelStatus commonDto.LevelStatus `json:"level_status"`
	Badges      []entity.UserBadge    `json:"badges"`
}
