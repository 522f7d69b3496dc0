package models

// AnswerSubmission is one entry of the ordered answer list sent to scoring.
// Questions the student never answered have no entry at all.
type AnswerSubmission struct {
	QuestionID     uint   `json:"question_id" validate:"required"`
	SelectedOption string `json:"selected_option" validate:"required"`
}

// QuestionResult is the per-question outcome computed by the scoring side.
type QuestionResult struct {
	QuestionID     uint    `json:"question_id"`
	QuestionText   string  `json:"question_text"`
	SelectedOption *string `json:"selected_option,omitempty"` // nil when skipped
	CorrectAnswer  string  `json:"correct_answer"`
	Explanation    *string `json:"explanation,omitempty"`
	IsCorrect      bool    `json:"is_correct"`
	Marks          int     `json:"marks"`
}

// ScoredResult is the authoritative outcome of a submission. Exactly one is
// produced per completed session.
type ScoredResult struct {
	Score          int              `json:"score"`
	TotalMarks     int              `json:"total_marks"`
	CorrectCount   int              `json:"correct_count"`
	TotalQuestions int              `json:"total_questions"`
	Results        []QuestionResult `json:"results"`
}
