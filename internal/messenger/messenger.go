// Package messenger is the chat-transport boundary. The core's only
// contract with the outside chat platform is "send text to a player"
// and "await the player's next message within a timeout", the latter
// returning a tagged answer/timeout/cancel result.
package messenger

import (
	"context"
	"strings"
	"time"
)

//go:generate mockgen -destination=mock/mock_messenger.go -package=messengermock -source=messenger.go

// ResponseKind tags an Await result
type ResponseKind string

// Response kinds
const (
	// ResponseAnswer carries the player's text
	ResponseAnswer ResponseKind = "answer"

	// ResponseTimeout means the wait elapsed with no message
	ResponseTimeout ResponseKind = "timeout"

	// ResponseCancel means the player sent a cancel keyword
	ResponseCancel ResponseKind = "cancel"
)

// Response is the tagged result of an Await
type Response struct {
	Kind ResponseKind
	Text string
}

// Messenger delivers outbound text and awaits inbound replies.
// Implementations must report transport failure through the error
// return; timeout and cancel are Response kinds, not errors.
type Messenger interface {
	// Send delivers text to a player
	Send(ctx context.Context, playerID, text string) error

	// Await blocks for the player's next message, up to timeout
	Await(ctx context.Context, playerID string, timeout time.Duration) (Response, error)
}

// IsCancelWord reports whether a player's text is a cancel keyword.
// Implementations share this so every flow recognizes the same words.
func IsCancelWord(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "cancel", "stop", "no thanks":
		return true
	}
	return false
}
