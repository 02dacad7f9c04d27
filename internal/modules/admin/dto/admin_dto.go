package dto

import "time"

type StartMarathonInput struct {
	Hours int `json:"hours" binding:"required,gte=1,lte=168"`
}

type MarathonStatus struct {
	Active bool       `json:"active"`
	EndsAt *time.Time `json:"ends_at"`
}
