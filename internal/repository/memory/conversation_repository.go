package memory

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"ai-portgate-be/internal/repository/contract"
	"ai-portgate-be/pkg/intent"
)

type ConversationRepository struct {
	cache *cache.Cache
}

var _ contract.IConversationRepository = &ConversationRepository{}

func NewConversationRepository() *ConversationRepository {
	// Conversations idle for an hour are forgotten; expired entries are
	// purged every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &ConversationRepository{cache: c}
}

func (r *ConversationRepository) SaveTurns(_ context.Context, conversationID string, turns []intent.Turn) error {
	r.cache.Set(conversationID, turns, cache.DefaultExpiration)
	return nil
}

func (r *ConversationRepository) GetTurns(_ context.Context, conversationID string) ([]intent.Turn, bool, error) {
	if x, found := r.cache.Get(conversationID); found {
		return x.([]intent.Turn), true, nil
	}
	return nil, false, nil
}

func (r *ConversationRepository) Delete(_ context.Context, conversationID string) error {
	r.cache.Delete(conversationID)
	return nil
}
