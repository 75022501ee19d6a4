package contract

import (
	"context"
	"errors"
	"time"

	"intellichat-be/internal/entity"
)

// ErrDuplicateSession is returned by Create when a row with the same
// sessionId already exists. Callers are expected to treat it as "session
// already exists, continue" rather than a hard failure.
var ErrDuplicateSession = errors.New("chat session already exists")

type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error

	// FindBySessionId returns (nil, nil) when no session matches.
	FindBySessionId(ctx context.Context, sessionId string) (*entity.ChatSession, error)

	// FindAll returns sessions ordered by updatedAt descending. An empty
	// userId returns every session.
	FindAll(ctx context.Context, userId string) ([]*entity.ChatSession, error)

	// UpdateTitle sets the title and refreshes updatedAt. A missing
	// session is a no-op, not an error.
	UpdateTitle(ctx context.Context, sessionId, title string) error

	// Touch advances updatedAt so recency ordering reflects appended
	// messages.
	Touch(ctx context.Context, sessionId string, at time.Time) error
}
