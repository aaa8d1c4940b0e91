package dto

import answerquestion "rural-assist/internal/workers/chat/answer-question"

// AskRequest is the body of POST /chat/ask.
type AskRequest struct {
	Question  string                 `json:"question" binding:"required,max=1000"`
	Language  string                 `json:"language,omitempty"`
	Context   map[string]interface{} `json:"context,omitempty"`
	UserID    string                 `json:"user_id,omitempty"`
	SessionID string                 `json:"session_id,omitempty"`
}

// ToInput converts the request for the orchestrator.
func (r AskRequest) ToInput() *answerquestion.Input {
	return &answerquestion.Input{
		Question:  r.Question,
		Language:  r.Language,
		Context:   r.Context,
		SessionID: r.SessionID,
		UserID:    r.UserID,
	}
}

// AskResponse is the chat reply. Field names are fixed for client compatibility.
type AskResponse = answerquestion.Output

// IntentsResponse lists the intents a user can ask about.
type IntentsResponse struct {
	Intents []answerquestion.IntentInfo `json:"intents"`
}
