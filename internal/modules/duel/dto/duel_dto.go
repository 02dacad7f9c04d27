package dto

import "anoa.com/kitaplik/internal/entity"

type ChallengeRequest struct {
	OpponentID string `json:"opponent_id" binding:"required,uuid"`
	BookID     string `json:"book_id" binding:"required,uuid"`
}

type ListQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=PENDING ACTIVE COMPLETED REJECTED"`
}

// Resolution describes a duel won by finishing its book.
type Resolution struct {
	Duel     *entity.Duel `json:"duel"`
	BonusXP  int          `json:"bonus_xp"`
	LoserID  string       `json:"loser_id"`
	FirstWin bool         `json:"first_win"`
}
