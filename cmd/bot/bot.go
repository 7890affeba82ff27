package bot

import (
	"fmt"

	"github.com/spf13/viper"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/layout"
	"gorm.io/gorm"

	"github.com/Badsnus/qr-styler/internal/adapters/config"
	"github.com/Badsnus/qr-styler/internal/adapters/database/redis"
	"github.com/Badsnus/qr-styler/internal/domain/service"
	"github.com/Badsnus/qr-styler/pkg/logger"
	"github.com/Badsnus/qr-styler/pkg/logger/types"
	qr "github.com/Badsnus/qr-styler/pkg/qrcode"
	"github.com/Badsnus/qr-styler/pkg/qrstyle"
)

type Bot struct {
	*tele.Bot
	Layout   *layout.Layout
	DB       *gorm.DB
	Redis    *redis.Client
	Logger   *types.Logger
	Renderer *qr.Renderer
	Metrics  *service.Metrics
	Defaults qrstyle.FormState
}

func New(cfg *config.Config, renderer *qr.Renderer, metrics *service.Metrics, defaults qrstyle.FormState) (*Bot, error) {
	if cfg.Redis == nil {
		return nil, fmt.Errorf("bot requires service.redis.enabled")
	}

	botLogger, err := logger.Named("bot")
	if err != nil {
		return nil, err
	}

	lt, err := layout.New(viper.GetString("bot.layout"))
	if err != nil {
		return nil, fmt.Errorf("failed to load bot layout: %w", err)
	}

	settings := lt.Settings()
	settings.Token = viper.GetString("bot.token")
	settings.Poller = &tele.LongPoller{Timeout: viper.GetDuration("bot.poll-timeout")}
	settings.OnError = func(err error, ctx tele.Context) {
		if ctx == nil || ctx.Sender() == nil {
			botLogger.Errorf("Error: %v", err)
			return
		}
		if ctx.Callback() == nil {
			botLogger.Errorf("(user: %d) | Error: %v", ctx.Sender().ID, err)
		} else {
			botLogger.Errorf("(user: %d) | unique: %s | Error: %v", ctx.Sender().ID, ctx.Callback().Unique, err)
		}
	}

	b, err := tele.NewBot(settings)
	if err != nil {
		return nil, err
	}
	if cmds := lt.Commands(); cmds != nil {
		if err = b.SetCommands(cmds); err != nil {
			return nil, err
		}
	}

	return &Bot{
		Bot:      b,
		Layout:   lt,
		DB:       cfg.Database,
		Redis:    cfg.Redis,
		Logger:   botLogger,
		Renderer: renderer,
		Metrics:  metrics,
		Defaults: defaults,
	}, nil
}

// Start polls for updates until Stop is called.
func (b *Bot) Start() {
	if viper.GetBool("settings.logging.log-to-channel") {
		notifyLogger, err := logger.Named("notify")
		if err != nil {
			logger.Log.Errorf("Failed to create notify logger: %v", err)
		} else {
			level, err := parseLevel(viper.GetString("settings.logging.channel-log-level"))
			if err != nil {
				logger.Log.Errorf("Invalid channel log level: %v", err)
			}
			notifyService := service.NewNotifyService(b.Bot, notifyLogger)
			logHook, err := notifyService.LogHook(viper.GetInt64("settings.logging.channel-id"), level)
			if err != nil {
				logger.Log.Errorf("Failed to create notify log hook: %v", err)
			} else {
				var metricsHook types.LogHook
				if b.Metrics != nil {
					metricsHook = b.Metrics.LogHook()
				}
				logger.SetLogHook(service.ChainLogHooks(metricsHook, logHook))
			}
		}
	}

	logger.Log.Info("Bot starting")
	b.Bot.Start()
}
