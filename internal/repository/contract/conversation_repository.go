package contract

import (
	"context"

	"ai-portgate-be/pkg/intent"
)

// IConversationRepository caches recent conversation turns close to the
// process so the chat flow does not round-trip to the history backend on
// every message. The backend stays the source of truth; this cache may be
// stale or empty at any time.
type IConversationRepository interface {
	SaveTurns(ctx context.Context, conversationID string, turns []intent.Turn) error
	GetTurns(ctx context.Context, conversationID string) ([]intent.Turn, bool, error)
	Delete(ctx context.Context, conversationID string) error
}
