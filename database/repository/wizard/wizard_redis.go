package wizardRepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/YarKhan02/Workshop-sub000/models"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "wizardSession:"

// RedisWizardRepo stores each session as a JSON blob with a TTL.
type RedisWizardRepo struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisWizardRepo(client *redis.Client, ttl time.Duration) WizardRepository {
	return &RedisWizardRepo{client: client, ttl: ttl}
}

func redisKey(sessionID string) string {
	return redisKeyPrefix + sessionID
}

func (r *RedisWizardRepo) Save(ctx context.Context, session *models.WizardSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal wizard session: %w", err)
	}
	if err := r.client.Set(ctx, redisKey(session.SessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store wizard session: %w", err)
	}
	return nil
}

func (r *RedisWizardRepo) Get(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	data, err := r.client.Get(ctx, redisKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load wizard session: %w", err)
	}
	var session models.WizardSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to parse wizard session %s: %w", sessionID, err)
	}
	return &session, nil
}

func (r *RedisWizardRepo) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, redisKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete wizard session: %w", err)
	}
	return nil
}
