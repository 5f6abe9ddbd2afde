package game

import (
	"context"
	"time"

	"wordsmith/internal/deck"
)

// State is the session lifecycle phase.
type State string

const (
	StateIdle       State = "Idle"
	StateRecruiting State = "Recruiting"
	StateInProgress State = "InProgress"
)

// Submission is one player's constructed word for the current round. A
// later submission from the same player replaces the earlier one.
type Submission struct {
	Word       string      `json:"word"`
	UsedCards  []deck.Card `json:"usedCards"` // ordered by first appearance in the cited parts
	Definition string      `json:"definition"`
}

// Reaction is an inbound reaction toggle on a tracked message.
type Reaction struct {
	User      string
	Channel   string
	MessageID string
	Name      string
	Removed   bool
}

// Sender is the outbound side of the chat transport. The session issues
// all its traffic through it and never touches the platform client
// directly.
type Sender interface {
	// Send posts text plus optional card attachments and returns the
	// platform's message identity, used to track reactions.
	Send(ctx context.Context, channel, text string, cards []deck.Card) (messageID string, err error)
	React(ctx context.Context, channel, messageID, name string) error
	OpenDM(ctx context.Context, user string) (channel string, err error)
}

// Snapshot is the read-only view broadcast to spectators after every
// mutation.
type Snapshot struct {
	State          State     `json:"state"`
	RoundID        string    `json:"roundId,omitempty"`
	Players        []string  `json:"players"`
	SubmittedCount int       `json:"submittedCount"`
	ReadyCount     int       `json:"readyCount"`
	MainWord       string    `json:"mainWord,omitempty"`
	StartedAt      time.Time `json:"startedAt,omitempty"`
}
