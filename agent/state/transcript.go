// Package state persists conversation transcripts so the CLI can show the
// exchange history of a session across restarts.
package state

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrTranscriptNotFound = errors.New("transcript not found")
	ErrNilTranscript      = errors.New("transcript is nil")
	ErrInvalidSession     = errors.New("session id is empty")
)

// Entry is one user/assistant exchange.
type Entry struct {
	Input    string    `json:"input"`
	Response string    `json:"response"`
	Route    string    `json:"route,omitempty"`
	At       time.Time `json:"at"`
}

// Transcript is the stored history of one session.
type Transcript struct {
	SessionID string    `json:"session_id"`
	Entries   []Entry   `json:"entries"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewTranscript(sessionID string) (*Transcript, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrInvalidSession
	}
	return &Transcript{SessionID: sessionID}, nil
}

// Append records one exchange and bumps UpdatedAt.
func (t *Transcript) Append(entry Entry) {
	if entry.At.IsZero() {
		entry.At = time.Now().UTC()
	}
	t.Entries = append(t.Entries, entry)
	t.UpdatedAt = entry.At
}

func (t *Transcript) Validate() error {
	if t == nil {
		return ErrNilTranscript
	}
	if strings.TrimSpace(t.SessionID) == "" {
		return ErrInvalidSession
	}
	return nil
}
