package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Badsnus/qr-styler/internal/adapters/database/redis/callbacks"
	"github.com/Badsnus/qr-styler/internal/adapters/database/redis/forms"
	"github.com/Badsnus/qr-styler/internal/adapters/database/redis/states"
)

type Client struct {
	States    *states.Storage
	Forms     *forms.Storage
	Callbacks *callbacks.Storage

	clients []*redis.Client
}

type Options struct {
	Host     string
	Port     int
	Password string
}

func connect(ctx context.Context, opts Options, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

func New(ctx context.Context, opts Options) (*Client, error) {
	stateStorage, err := connect(ctx, opts, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to ping state storage: %w", err)
	}

	formStorage, err := connect(ctx, opts, 1)
	if err != nil {
		_ = stateStorage.Close()
		return nil, fmt.Errorf("failed to ping form storage: %w", err)
	}

	return NewFromClients(stateStorage, formStorage), nil
}

// NewFromClients wires storages over already connected clients.
// Callbacks share the state database.
func NewFromClients(stateClient, formClient *redis.Client) *Client {
	return &Client{
		States:    states.NewStorage(stateClient),
		Forms:     forms.NewStorage(formClient),
		Callbacks: callbacks.NewStorage(stateClient),
		clients:   []*redis.Client{stateClient, formClient},
	}
}

func (c *Client) Close() error {
	var firstErr error
	for _, client := range c.clients {
		if err := client.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
