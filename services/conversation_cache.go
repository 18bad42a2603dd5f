package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"main/model"

	"github.com/redis/go-redis/v9"
)

// ConversationCache keeps the hot copy of per-user wizard state in Redis in
// front of the durable mongo collection, and hands out the cross-instance
// lock for reminder sweeps. Entries expire on their own so an abandoned
// dialog never pins memory; the durable copy stays authoritative.
type ConversationCache struct {
	client *redis.Client
}

const (
	conversationTTL  = 24 * time.Hour
	sweepLockKey     = "reminder_sweep:lock"
	sweepLockTimeout = 2 * time.Minute
)

// NewConversationCache connects to Redis and verifies the connection.
func NewConversationCache(redisURL string) (*ConversationCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &ConversationCache{client: client}, nil
}

func conversationKey(userID string) string {
	return fmt.Sprintf("conversation:%s", userID)
}

// Set caches the conversation state for a user.
func (cc *ConversationCache) Set(ctx context.Context, state *model.ConversationState) error {
	if state == nil || state.UserID == "" {
		return fmt.Errorf("cannot cache empty conversation state")
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation state: %v", err)
	}

	if err := cc.client.Set(ctx, conversationKey(state.UserID), data, conversationTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache conversation state: %v", err)
	}
	return nil
}

// Get returns the cached state, or (nil, nil) on a cache miss.
func (cc *ConversationCache) Get(ctx context.Context, userID string) (*model.ConversationState, error) {
	if userID == "" {
		return nil, fmt.Errorf("userID cannot be empty")
	}

	data, err := cc.client.Get(ctx, conversationKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation state from cache: %v", err)
	}

	var state model.ConversationState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal conversation state: %v", err)
	}
	return &state, nil
}

// Delete drops the cached state after a flow completes.
func (cc *ConversationCache) Delete(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("userID cannot be empty")
	}
	if err := cc.client.Del(ctx, conversationKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete conversation state from cache: %v", err)
	}
	return nil
}

// AcquireSweepLock takes the cross-instance reminder sweep lock. Returns
// false when another instance holds it.
func (cc *ConversationCache) AcquireSweepLock(ctx context.Context) (bool, error) {
	ok, err := cc.client.SetNX(ctx, sweepLockKey, time.Now().Format(time.RFC3339), sweepLockTimeout).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire sweep lock: %v", err)
	}
	return ok, nil
}

// ReleaseSweepLock frees the sweep lock early.
func (cc *ConversationCache) ReleaseSweepLock(ctx context.Context) error {
	return cc.client.Del(ctx, sweepLockKey).Err()
}

func (cc *ConversationCache) IsConnected() bool {
	if cc == nil || cc.client == nil {
		return false
	}
	return cc.client.Ping(context.Background()).Err() == nil
}

// Close closes the Redis connection.
func (cc *ConversationCache) Close() error {
	return cc.client.Close()
}
