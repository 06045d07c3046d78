package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"ai-portgate-be/internal/repository/contract"
	"ai-portgate-be/pkg/intent"
)

const (
	keyPrefix = "conversation:"
	ttl       = 1 * time.Hour
)

// ConversationRepository is the Redis-backed cache used when the service
// runs with more than one replica and the in-memory cache would diverge.
type ConversationRepository struct {
	rdb *redis.Client
}

var _ contract.IConversationRepository = &ConversationRepository{}

func NewConversationRepository(rdb *redis.Client) *ConversationRepository {
	return &ConversationRepository{rdb: rdb}
}

func (r *ConversationRepository) SaveTurns(ctx context.Context, conversationID string, turns []intent.Turn) error {
	payload, err := json.Marshal(turns)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, keyPrefix+conversationID, payload, ttl).Err()
}

func (r *ConversationRepository) GetTurns(ctx context.Context, conversationID string) ([]intent.Turn, bool, error) {
	raw, err := r.rdb.Get(ctx, keyPrefix+conversationID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var turns []intent.Turn
	if err := json.Unmarshal(raw, &turns); err != nil {
		return nil, false, err
	}
	return turns, true, nil
}

func (r *ConversationRepository) Delete(ctx context.Context, conversationID string) error {
	return r.rdb.Del(ctx, keyPrefix+conversationID).Err()
}
