package assistant

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("conversation not found")
	ErrEmptyMessage = errors.New("message is empty")
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Source is a knowledge-base entry a reply was drawn from.
type Source struct {
	EntryID  string `json:"entry_id"`
	Question string `json:"question"`
	Citation string `json:"citation"`
}

type Message struct {
	ID        uuid.UUID `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Sources   []Source  `json:"sources,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Citation is the one citation shown with a reply: the top source's.
func (m Message) Citation() string {
	if len(m.Sources) == 0 {
		return ""
	}
	return m.Sources[0].Citation
}

// Conversation is the persisted chat history.
type Conversation struct {
	ID        uuid.UUID `json:"id"`
	History   []Message `json:"history"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
