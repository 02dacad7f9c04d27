package dto

import (
	"time"

	"github.com/google/uuid"
)

// QuestView is a template joined with the user's progress for the current
// period. ID is nil until the first progress update creates the row.
type QuestView struct {
	ID        *uuid.UUID `json:"id"`
	Key       string     `json:"key"`
	Title     string     `json:"title"`
	Metric    string     `json:"metric"`
	Period    string     `json:"period"`
	PeriodKey string     `json:"period_key"`
	PeriodEnd time.Time  `json:"period_end"`
	Target    int        `json:"target"`
	XPReward  int        `json:"xp_reward"`
	Progress  int        `json:"progress"`
	Completed bool       `json:"completed"`
	Claimed   bool       `json:"claimed"`
}
