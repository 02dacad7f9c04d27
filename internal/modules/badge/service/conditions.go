package service

import "anoa.com/kitaplik/internal/catalog"

// Catalog badge names.
const (
	BadgeGenreExplorer = catalog.BadgeGenreExplorer
	BadgeWiseReader    = catalog.BadgeWiseReader
	BadgeDuelist       = catalog.BadgeDuelist
	BadgeGoalHunter    = catalog.BadgeGoalHunter
)

// FirstInCategory holds when the book just marked READ is the only READ entry
// the user has in its category.
func FirstInCategory(readInCategory int64) bool {
	return readInCategory == 1
}

// PerfectTrivia holds when every question of a non-empty set was answered correctly.
func PerfectTrivia(correct, total int) bool {
	return total > 0 && correct == total
}

// FirstDuelWin holds on the user's first won duel.
func FirstDuelWin(wins int64) bool {
	return wins == 1
}

// GoalReached holds once the counter is at or past a positive target. A target
// lowered below the current count still qualifies.
func GoalReached(completed, target int) bool {
	return target > 0 && completed >= target
}
