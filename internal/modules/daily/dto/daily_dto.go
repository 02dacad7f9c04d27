package dto

import "anoa.com/kitaplik/internal/entity"

// TriviaQuestion is a daily question as served to clients, without its answer.
type TriviaQuestion struct {
	ID       uint     `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type TriviaSet struct {
	Date      string           `json:"date"`
	Questions []TriviaQuestion `json:"questions"`
}

type BookOfTheDay struct {
	Date string       `json:"date"`
	Book *entity.Book `json:"book"`
}
