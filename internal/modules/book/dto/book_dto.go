package dto

type SetGoalRequest struct {
	Target int `json:"target" binding:"required,gte=1,lte=1000"`
}
