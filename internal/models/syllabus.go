package models

import (
	"time"

	"github.com/lib/pq"
)

// SyllabusEntry lists the topics of one subject within an exam track.
type SyllabusEntry struct {
	ID        string         `json:"id" db:"id"`
	Concurso  string         `json:"concurso" db:"concurso"`
	Materia   string         `json:"materia" db:"materia"`
	Topicos   pq.StringArray `json:"topicos" db:"topicos"`
	Position  int            `json:"position" db:"position"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
}
