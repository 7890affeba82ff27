package setup

import (
	"time"

	"github.com/spf13/viper"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/middleware"

	"github.com/Badsnus/qr-styler/cmd/bot"
	"github.com/Badsnus/qr-styler/internal/adapters/controller/telegram/handlers/editor"
	"github.com/Badsnus/qr-styler/internal/adapters/controller/telegram/handlers/middlewares"
)

func Setup(b *bot.Bot) {
	// Pre-setup and global middlewares
	middle := middlewares.New(b)
	editorHandler := editor.New(b)

	if viper.GetBool("settings.debug") {
		b.Use(middleware.Logger())
	}
	b.Use(middleware.Recover(func(err error, _ tele.Context) {
		b.Logger.Errorf("recovered from panic: %v", err)
	}))
	b.Use(middleware.AutoRespond())
	b.Use(b.Layout.Middleware("en"))
	b.Use(middle.Timing(5 * time.Second))

	if allowed := viper.GetIntSlice("bot.allowed-ids"); len(allowed) > 0 {
		allowedInt64 := make([]int64, len(allowed))
		for i, v := range allowed {
			allowedInt64[i] = int64(v)
		}
		b.Use(middleware.Whitelist(allowedInt64...))
	}
	b.Use(middle.ResetInputOnCommand)

	// Setup handlers
	b.Handle("/start", editorHandler.Start)
	b.Handle("/presets", editorHandler.Presets)
	b.Handle("/preset", editorHandler.Preset)
	b.Handle(&editor.PresetButton, editorHandler.OnPresetButton)
	b.Handle("/set", editorHandler.Set)
	b.Handle("/fields", editorHandler.Fields)
	b.Handle("/show", editorHandler.Show)
	b.Handle("/render", editorHandler.Render)
	b.Handle("/reset", editorHandler.Reset)
	b.Handle("/save", editorHandler.Save)
	b.Handle("/overwrite", editorHandler.Overwrite)
	b.Handle("/delete", editorHandler.Delete)
	b.Handle(tele.OnDocument, editorHandler.OnDocument)
	b.Handle(tele.OnText, editorHandler.OnText)
}
