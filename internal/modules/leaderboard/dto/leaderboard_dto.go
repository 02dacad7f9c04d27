package dto

import commonDto "anoa.com/kitaplik/pkg/dto"

// LeaderboardEntry represents a single user entry in the leaderboard.
// Position is the 1-based ranking; PeriodXP is the XP that produced it.
type LeaderboardEntry struct {
	UserID      string                `json:"user_id"`
	Username    string                `json:"username"`
	AvatarURL   *string               `json:"avatar_url,omitempty"`
	Role        string                `json:"role"`
	Position    int                   `json:"position"`
	PeriodXP    int                   `json:"period_xp"`
	LevelStatus commonDto.LevelStatus `json:"level_status"`
}
