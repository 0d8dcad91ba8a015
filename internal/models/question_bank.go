package models

import (
	"time"

	"github.com/lib/pq"
)

const (
	QuestionBankStatusPending = "Pendente"
	QuestionBankDefaultMeta   = 3
)

type QuestionBankEntry struct {
	ID          string         `json:"id" db:"id"`
	UserID      string         `json:"user_id" db:"user_id"`
	Materia     string         `json:"materia" db:"materia"`
	Assunto     string         `json:"assunto" db:"assunto"`
	Relevancia  int            `json:"relevancia" db:"relevancia"`
	Comentarios string         `json:"comentarios" db:"comentarios"`
	Status      string         `json:"status" db:"status"`
	Tags        pq.StringArray `json:"tags" db:"tags"`
	Meta        int            `json:"meta" db:"meta"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
}
