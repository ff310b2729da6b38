package model

// StudentInfo identifies whose answer sheet was evaluated.
type StudentInfo struct {
	Name               string `json:"name"`
	RegistrationNumber string `json:"registration_number"`
	CourseCode         string `json:"course_code"`
}

// AnswerEvaluation is the per-question verdict from the grading service.
type AnswerEvaluation struct {
	QuestionNumber int     `json:"question_number"`
	MarksAwarded   float64 `json:"marks_awarded"`
	MaxMarks       float64 `json:"max_marks"`
	Justification  string  `json:"justification"`
}

// GradeResult is the grading service's response body. This shape is a hard
// contract with the results view; it is relayed to the client unmodified.
type GradeResult struct {
	StudentInfo StudentInfo        `json:"student_info"`
	Answers     []AnswerEvaluation `json:"answers"`
}
