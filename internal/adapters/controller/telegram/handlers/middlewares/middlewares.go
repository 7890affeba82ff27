package middlewares

import (
	"context"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/Badsnus/qr-styler/cmd/bot"
	"github.com/Badsnus/qr-styler/pkg/logger/types"
)

type stateStorage interface {
	Clear(ctx context.Context, userID int64) error
}

type Handler struct {
	states stateStorage
	logger *types.Logger
}

func New(b *bot.Bot) *Handler {
	return &Handler{
		states: b.Redis.States,
		logger: b.Logger,
	}
}

// ResetInputOnCommand clears the awaited input when the user sends a command.
func (h Handler) ResetInputOnCommand(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		if c.Message() != nil && c.Sender() != nil && strings.HasPrefix(c.Message().Text, "/") {
			if err := h.states.Clear(context.Background(), c.Sender().ID); err != nil {
				h.logger.Errorf("(user: %d) failed to clear input state: %v", c.Sender().ID, err)
			}
		}
		return next(c)
	}
}

// Timing logs handlers slower than threshold.
func (h Handler) Timing(threshold time.Duration) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			start := time.Now()
			err := next(c)
			if elapsed := time.Since(start); elapsed > threshold && c.Sender() != nil {
				h.logger.Warnf("(user: %d) slow update handled in %s", c.Sender().ID, elapsed)
			}
			return err
		}
	}
}
