package dto

type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalItems  int64 `json:"total_items"`
	Limit       int   `json:"limit"`
}

// LevelStatus is the display form of a user's XP position on the level curve.
type LevelStatus struct {
	Level        int     `json:"level"`
	Title        string  `json:"title"`
	CurrentXP    int     `json:"current_xp"`
	LevelFloorXP int     `json:"level_floor_xp"`
	NextLevelXP  int     `json:"next_level_xp"`
	Progress     float64 `json:"progress"` // Percentage
	WeeklyXP     int     `json:"weekly_xp"`
	WeeklyLabel  string  `json:"weekly_label"`
}
