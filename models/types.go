package models

import "time"

// Request types

type QuestionInput struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []string `json:"options"`
}

// Title is a pointer so a missing title can be told apart from an empty one.
// A missing or null questions list decodes to nil; [] does not.
type CreateSurveyRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Questions   []QuestionInput `json:"questions"`
}

type AnswerInput struct {
	QuestionID string      `json:"question_id"`
	Answer     AnswerValue `json:"answer"`
}

// SurveyID is accepted for compatibility with older clients; the path wins.
// Answers is nil when missing or null.
type SubmitResponseRequest struct {
	SurveyID string        `json:"survey_id,omitempty"`
	Answers  []AnswerInput `json:"answers"`
}

// Response types

type Question struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []string `json:"options"`
}

type Survey struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Questions     []Question `json:"questions"`
	CreatedAt     time.Time  `json:"created_at"`
	ResponseCount int        `json:"response_count"`
}

type Answer struct {
	QuestionID string      `json:"question_id"`
	Answer     AnswerValue `json:"answer"`
}

type Response struct {
	ID        string    `json:"id"`
	SurveyID  string    `json:"survey_id"`
	Answers   []Answer  `json:"answers"`
	CreatedAt time.Time `json:"created_at"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
