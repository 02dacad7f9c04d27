package dto

import (
	"anoa.com/kitaplik/internal/entity"
)

// Bonus is one line of an XP breakdown.
type Bonus struct {
	Label string `json:"label"`
	XP    int    `json:"xp"`
}

type BookReward struct {
	BookID          string                 `json:"book_id"`
	EarnedXP        int                    `json:"earned_xp"`
	Bonuses         []Bonus                `json:"bonuses"`
	Summary         string                 `json:"summary"`
	AlreadyRecorded bool                   `json:"already_recorded"`
	DuelWon         bool                   `json:"duel_won"`
	BadgesEarned    []string               `json:"badges_earned"`
	QuestsCompleted []entity.QuestProgress `json:"quests_completed"`
	XP              int                    `json:"xp"`
	Level           int                    `json:"level"`
}

type TriviaSubmitRequest struct {
	// Answers maps question id to the chosen option index.
	Answers map[uint]int `json:"answers" binding:"required,min=1"`
}

type TriviaResult struct {
	QuestionID  uint `json:"question_id"`
	Chosen      *int `json:"chosen"`
	AnswerIndex int  `json:"answer_index"`
	Correct     bool `json:"correct"`
}

type TriviaReward struct {
	Date            string                 `json:"date"`
	Correct         int                    `json:"correct"`
	Total           int                    `json:"total"`
	EarnedXP        int                    `json:"earned_xp"`
	EarnedPoints    int                    `json:"earned_points"`
	Results         []TriviaResult         `json:"results"`
	AlreadyRecorded bool                   `json:"already_recorded"`
	BadgesEarned    []string               `json:"badges_earned"`
	QuestsCompleted []entity.QuestProgress `json:"quests_completed"`
	Level           int                    `json:"level"`
}

type GiftRequest struct {
	ReceiverID string `json:"receiver_id" binding:"required,uuid"`
	Amount     int    `json:"amount" binding:"required,gte=1"`
	Note       string `json:"note" binding:"max=280"`
}

type FriendRequest struct {
	FriendID string `json:"friend_id" binding:"required,uuid"`
}

type FriendResult struct {
	FriendID        string                 `json:"friend_id"`
	AlreadyFriends  bool                   `json:"already_friends"`
	QuestsCompleted []entity.QuestProgress `json:"quests_completed"`
}
