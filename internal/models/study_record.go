package models

import (
	"time"
)

// Difficulty labels stored in dificuldade.
const (
	DifficultyEasy   = "Fácil"
	DifficultyMedium = "Médio"
	DifficultyHard   = "Difícil"
	DifficultyExam   = "Simulado"
)

type StudyRecord struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Concurso    string    `json:"concurso" db:"concurso"`
	Materia     string    `json:"materia" db:"materia"`
	Assunto     string    `json:"assunto" db:"assunto"`
	DataEstudo  string    `json:"data_estudo" db:"data_estudo"`
	Acertos     int       `json:"acertos" db:"acertos"`
	Total       int       `json:"total" db:"total"`
	Taxa        float64   `json:"taxa" db:"taxa"`
	Tempo       int       `json:"tempo" db:"tempo"`
	Dificuldade string    `json:"dificuldade" db:"dificuldade"`
	Relevancia  int       `json:"relevancia" db:"relevancia"`
	Comentarios string    `json:"comentarios" db:"comentarios"`
	Rev24h      bool      `json:"rev_24h" db:"rev_24h"`
	Rev07d      bool      `json:"rev_07d" db:"rev_07d"`
	Rev15d      bool      `json:"rev_15d" db:"rev_15d"`
	Rev30d      bool      `json:"rev_30d" db:"rev_30d"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// ExamScoreEntry is the raw per-subject score typed into the simulado form.
type ExamScoreEntry struct {
	Acertos string `json:"acertos"`
	Total   string `json:"total"`
}
