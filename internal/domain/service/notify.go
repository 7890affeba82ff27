package service

import (
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap/zapcore"
	tele "gopkg.in/telebot.v3"

	"github.com/Badsnus/qr-styler/pkg/logger/types"
)

type NotifyService struct {
	bot    *tele.Bot
	logger *types.Logger
}

func NewNotifyService(bot *tele.Bot, logger *types.Logger) *NotifyService {
	return &NotifyService{
		bot:    bot,
		logger: logger,
	}
}

// LogHook returns a log hook for the specified channel
//
// Parameters:
//   - channelID is the channel to send the log to
//   - level is the minimum log level to send
func (s *NotifyService) LogHook(channelID int64, level zapcore.Level) (types.LogHook, error) {
	chat, err := s.bot.ChatByID(channelID)
	if err != nil {
		return nil, err
	}
	return func(log types.Log) {
		if log.Level < level || strings.Contains(log.Message, "failed to send log to channel") {
			return
		}
		_, err := s.bot.Send(chat, FormatLog(log), tele.ModeHTML)
		if err != nil {
			s.logger.Errorf("failed to send log to channel %d: %v", channelID, err)
		}
	}, nil
}

// FormatLog renders a log entry as a Telegram HTML message
func FormatLog(log types.Log) string {
	return fmt.Sprintf("<b>%s</b> %s\n<code>%s</code> %s\n\n%s",
		log.Level.CapitalString(),
		log.Timestamp.Format("2006-01-02 15:04:05"),
		html.EscapeString(log.LoggerName),
		html.EscapeString(log.Caller),
		html.EscapeString(log.Message),
	)
}

// ChainLogHooks calls every non-nil hook in order
func ChainLogHooks(hooks ...types.LogHook) types.LogHook {
	return func(log types.Log) {
		for _, hook := range hooks {
			if hook != nil {
				hook(log)
			}
		}
	}
}
