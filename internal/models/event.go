package models

type StudyRecordedEvent struct {
	UserID    string              `json:"user_id"`
	Concurso  string              `json:"concurso"`
	Mode      string              `json:"mode"`
	Subjects  []SubjectSessionAgg `json:"subjects"`
	Timestamp int64               `json:"timestamp"`
}

// SubjectSessionAgg is the contribution of one submission to a subject's totals.
type SubjectSessionAgg struct {
	Materia string `json:"materia"`
	Acertos int    `json:"acertos"`
	Total   int    `json:"total"`
	Minutes int    `json:"minutes"`
}
