package models

import (
	"time"
)

type SubjectPerformance struct {
	UserID    string    `json:"user_id" db:"user_id"`
	Concurso  string    `json:"concurso" db:"concurso"`
	Materia   string    `json:"materia" db:"materia"`
	Sessions  int       `json:"sessions" db:"sessions"`
	Acertos   int       `json:"acertos" db:"acertos"`
	Total     int       `json:"total" db:"total"`
	Minutes   int       `json:"minutes" db:"minutes"`
	Taxa      float64   `json:"taxa" db:"-"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
