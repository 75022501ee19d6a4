// Package contextwindow turns a session's stored messages into the
// ordered transcript a completion call expects.
package contextwindow

import (
	"intellichat-be/internal/entity"
	"intellichat-be/pkg/llm"

	"github.com/google/uuid"
)

// DefaultWindow bounds how many prior turns are submitted alongside the
// new user turn. Oldest turns fall off first; there is no summarization.
const DefaultWindow = 50

type Builder struct {
	window int
}

func NewBuilder(window int) *Builder {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Builder{window: window}
}

// Build maps prior turns to role/content pairs, excluding the message
// currently being answered so it is not submitted twice — the caller
// appends it as the current turn. Input is assumed ordered by timestamp
// ascending, as the repositories return it.
func (b *Builder) Build(history []*entity.ChatMessage, currentId uuid.UUID) []llm.Message {
	prior := make([]llm.Message, 0, len(history))
	for _, msg := range history {
		if msg.Id == currentId {
			continue
		}
		prior = append(prior, llm.Message{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	if len(prior) > b.window {
		prior = prior[len(prior)-b.window:]
	}
	return prior
}
