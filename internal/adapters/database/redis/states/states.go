package states

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Badsnus/qr-styler/internal/domain/common/errorz"
)

// Storage remembers what a user is expected to type next
type Storage struct {
	redis *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

type State struct {
	State        string
	StateContext string
}

func key(userID int64) string {
	return fmt.Sprintf("state:%d", userID)
}

func (s *Storage) Get(ctx context.Context, userID int64) (State, error) {
	stateData, err := s.redis.Get(ctx, key(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return State{}, nil
		}
		return State{}, err
	}

	state, stateContext, _ := strings.Cut(stateData, ":")
	if state == "" {
		return State{}, errorz.ErrInvalidState
	}
	return State{
		State:        state,
		StateContext: stateContext,
	}, nil
}

func (s *Storage) Set(ctx context.Context, userID int64, state string, stateContext string, expiration time.Duration) error {
	return s.redis.Set(ctx, key(userID), fmt.Sprintf("%s:%s", state, stateContext), expiration).Err()
}

func (s *Storage) Clear(ctx context.Context, userID int64) error {
	return s.redis.Del(ctx, key(userID)).Err()
}
