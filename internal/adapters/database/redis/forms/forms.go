package forms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Badsnus/qr-styler/internal/domain/common/errorz"
	"github.com/Badsnus/qr-styler/pkg/qrstyle"
)

// Storage keeps the form state each user is editing
type Storage struct {
	redis *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

func key(userID int64) string {
	return fmt.Sprintf("form:%d", userID)
}

func (s *Storage) Get(ctx context.Context, userID int64) (qrstyle.FormState, error) {
	data, err := s.redis.Get(ctx, key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return qrstyle.FormState{}, errorz.ErrSessionNotFound
		}
		return qrstyle.FormState{}, err
	}

	var state qrstyle.FormState
	if err = json.Unmarshal(data, &state); err != nil {
		return qrstyle.FormState{}, fmt.Errorf("failed to decode form of user %d: %w", userID, err)
	}
	return state, nil
}

func (s *Storage) Set(ctx context.Context, userID int64, state qrstyle.FormState, expiration time.Duration) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, key(userID), data, expiration).Err()
}

func (s *Storage) Clear(ctx context.Context, userID int64) error {
	return s.redis.Del(ctx, key(userID)).Err()
}
