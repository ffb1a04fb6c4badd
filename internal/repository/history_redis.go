package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/pegsolitaire-backend/internal/apperror"
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/entity"
)

type historyRedis struct {
	client *redis.Client
	key    string
}

func NewHistoryRedisRepository(client *redis.Client, profile string) HistoryRepository {
	return &historyRedis{
		client: client,
		key:    "history:" + profile,
	}
}

func (that *historyRedis) Load(ctx context.Context) ([]entity.PastGame, error) {
	response, err := that.client.Get(ctx, that.key).Bytes()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrHistoryNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("%w: failed to get history: %w", apperror.ErrHistoryUnavailable, err)
	}

	return decodeHistory(response)
}

func (that *historyRedis) Save(ctx context.Context, games []entity.PastGame) error {
	historyJSON, err := encodeHistory(games)
	if err != nil {
		return err
	}

	if err = that.client.Set(ctx, that.key, historyJSON, 0).Err(); err != nil {
		return fmt.Errorf("%w: failed to set history: %w", apperror.ErrHistoryUnavailable, err)
	}

	return nil
}
