package model

import "time"

// Generation event kinds.
const (
	KindPassword = "password"
	KindPIN      = "pin"
	KindRandom   = "random"
)

// GenerationEvent records that a secret was generated. It holds request
// metadata only, never the generated value.
type GenerationEvent struct {
	ID         int64
	ClientID   string // empty for anonymous requests
	Kind       string
	Length     int
	Classes    string // comma separated, password events only
	RemoteAddr string
	CreatedAt  time.Time
}

// GenerationEventResponse represents a generation event in history listings.
type GenerationEventResponse struct {
	Kind      string    `json:"kind"`
	Length    int       `json:"length"`
	Classes   []string  `json:"classes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryResponse lists a client's most recent generation events.
type HistoryResponse struct {
	ClientID string                    `json:"client_id"`
	Events   []GenerationEventResponse `json:"events"`
}
