package models

// Data Transfer Objects

// Submission modes.
const (
	ModeIndividual = "individual"
	ModeSimulado   = "simulado"
)

type SubmitStudyRecordRequest struct {
	Concurso    string `json:"concurso" validate:"max=255"`
	DataEstudo  string `json:"data_estudo" validate:"omitempty,datetime=2006-01-02"`
	Tempo       string `json:"tempo" validate:"max=16"`
	Materia     string `json:"materia" validate:"max=255"`
	Assunto     string `json:"assunto" validate:"max=500"`
	Acertos     int    `json:"acertos"`
	Total       int    `json:"total"`
	Dificuldade string `json:"dificuldade" validate:"omitempty,oneof=Fácil Médio Difícil"`
	Relevancia  int    `json:"relevancia" validate:"omitempty,min=1,max=10"`
	Comentarios string `json:"comentarios" validate:"max=2000"`
	SaveToBank  bool   `json:"save_to_bank"`
}

type SubmitSimuladoRequest struct {
	Concurso    string                    `json:"concurso" validate:"max=255"`
	DataEstudo  string                    `json:"data_estudo" validate:"omitempty,datetime=2006-01-02"`
	Tempo       string                    `json:"tempo" validate:"max=16"`
	Titulo      string                    `json:"titulo" validate:"max=500"`
	Comentarios string                    `json:"comentarios" validate:"max=2000"`
	Scores      map[string]ExamScoreEntry `json:"scores"`
}

type PreviewRequest struct {
	Mode        string                    `json:"mode" validate:"required,oneof=individual simulado"`
	Concurso    string                    `json:"concurso" validate:"max=255"`
	DataEstudo  string                    `json:"data_estudo" validate:"omitempty,datetime=2006-01-02"`
	Tempo       string                    `json:"tempo" validate:"max=16"`
	Materia     string                    `json:"materia"`
	Assunto     string                    `json:"assunto"`
	Acertos     int                       `json:"acertos"`
	Total       int                       `json:"total"`
	Dificuldade string                    `json:"dificuldade" validate:"omitempty,oneof=Fácil Médio Difícil"`
	Titulo      string                    `json:"titulo"`
	Scores      map[string]ExamScoreEntry `json:"scores"`
}

type PreviewResponse struct {
	MaskedTime          string         `json:"masked_time"`
	Minutes             int            `json:"minutes"`
	TimeValid           bool           `json:"time_valid"`
	Percentage          float64        `json:"percentage"`
	SuggestedDifficulty string         `json:"suggested_difficulty,omitempty"`
	ExamAcertos         int            `json:"exam_acertos,omitempty"`
	ExamTotal           int            `json:"exam_total,omitempty"`
	Distribution        map[string]int `json:"distribution,omitempty"`
	Valid               bool           `json:"valid"`
	Error               string         `json:"error,omitempty"`
}

type SubmitResponse struct {
	Mode    string `json:"mode"`
	Records int    `json:"records"`
	Banked  bool   `json:"banked"`
}

type CreateSyllabusEntryRequest struct {
	Concurso string   `json:"concurso" validate:"required,min=1,max=255"`
	Materia  string   `json:"materia" validate:"required,min=1,max=255"`
	Topicos  []string `json:"topicos" validate:"dive,required,max=500"`
	Position int      `json:"position" validate:"min=0"`
}

type StudyRecordsResponse struct {
	Records []StudyRecord `json:"records"`
	Total   int           `json:"total"`
	Page    int           `json:"page"`
	Limit   int           `json:"limit"`
}

type QuestionBankResponse struct {
	Entries []QuestionBankEntry `json:"entries"`
	Total   int                 `json:"total"`
	Page    int                 `json:"page"`
	Limit   int                 `json:"limit"`
}

type PerformanceResponse struct {
	Concurso string               `json:"concurso,omitempty"`
	Subjects []SubjectPerformance `json:"subjects"`
}
