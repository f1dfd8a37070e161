package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/playpick/numtactoe/internal/apperror"
)

type redisSnapshot struct {
	client *redis.Client
}

func NewRedisSnapshotRepository(client *redis.Client) SnapshotRepository {
	return &redisSnapshot{
		client: client,
	}
}

func (that *redisSnapshot) Save(ctx context.Context, gameType, payload string) error {
	key := "snapshot:" + gameType

	if err := that.client.Set(ctx, key, payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to set snapshot: %w", err)
	}

	return nil
}

func (that *redisSnapshot) Load(ctx context.Context, gameType string) (string, error) {
	key := "snapshot:" + gameType

	payload, err := that.client.Get(ctx, key).Result()

	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: %s", apperror.ErrSnapshotNotFound, gameType)
	}

	if err != nil {
		return "", fmt.Errorf("failed to get snapshot: %w", err)
	}

	return payload, nil
}

func (that *redisSnapshot) DeleteByType(ctx context.Context, gameType string) error {
	key := "snapshot:" + gameType

	if err := that.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	return nil
}
