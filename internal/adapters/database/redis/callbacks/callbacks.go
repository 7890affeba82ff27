package callbacks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Badsnus/qr-styler/internal/domain/common/errorz"
)

// Storage keeps callback payloads that do not fit into Telegram's
// 64 byte callback data. Entries are never consumed on read, the same
// keyboard stays usable until the entry expires.
type Storage struct {
	redis *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

func key(callbackID string) string {
	return fmt.Sprintf("callback:%s", callbackID)
}

func (s *Storage) Get(ctx context.Context, callbackID string) (string, error) {
	data, err := s.redis.Get(ctx, key(callbackID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", errorz.ErrInvalidCallbackData
	}
	if err != nil {
		return "", err
	}
	return data, nil
}

// Set stores callback data in redis at random uuid key (callbackID).
// Returns callbackID and error
func (s *Storage) Set(ctx context.Context, data string, expiration time.Duration) (string, error) {
	callbackID := uuid.New().String()
	err := s.redis.Set(ctx, key(callbackID), data, expiration).Err()
	if err != nil {
		return "", err
	}
	return callbackID, nil
}
