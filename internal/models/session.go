package models

import "time"

// Session carries conversation context between chat turns.
type Session struct {
	ID             string                 `json:"id"`
	UserID         string                 `json:"userId,omitempty"`
	PreviousIntent IntentName             `json:"previousIntent,omitempty"`
	Location       map[string]interface{} `json:"location,omitempty"`
	Turns          int                    `json:"turns"`
	CreatedAt      time.Time              `json:"createdAt"`
	LastActivity   time.Time              `json:"lastActivity"`
}

// UpdateActivity records a completed turn.
func (s *Session) UpdateActivity(intent IntentName) {
	s.PreviousIntent = intent
	s.Turns++
	s.LastActivity = time.Now().UTC()
}

// Context returns the session as request context values.
func (s *Session) Context() map[string]interface{} {
	out := make(map[string]interface{}, len(s.Location)+1)
	for k, v := range s.Location {
		out[k] = v
	}
	if s.PreviousIntent != "" {
		out["previous_intent"] = string(s.PreviousIntent)
	}
	return out
}
