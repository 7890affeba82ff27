package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Badsnus/qr-styler/cmd/bot"
	"github.com/Badsnus/qr-styler/internal/adapters/config"
	httpAdapter "github.com/Badsnus/qr-styler/internal/adapters/controller/http"
	setupBot "github.com/Badsnus/qr-styler/internal/adapters/controller/telegram/setup"
	"github.com/Badsnus/qr-styler/internal/adapters/database/postgres"
	"github.com/Badsnus/qr-styler/internal/domain/service"
	"github.com/Badsnus/qr-styler/pkg/logger"
	qr "github.com/Badsnus/qr-styler/pkg/qrcode"
)

const shutdownTimeout = 5 * time.Second

func newRenderer() *qr.Renderer {
	loader := qr.NewLoader(viper.GetDuration("qr.image-timeout"), viper.GetBool("qr.allow-files"))
	loader.Credentials = viper.GetString("qr.credentials")
	loader.CredentialHosts = viper.GetStringSlice("qr.credentials-hosts")
	loader.AllowedHosts = viper.GetStringSlice("qr.image-hosts")
	return qr.NewRenderer(loader)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and, if configured, the Telegram bot",
	RunE: func(cmd *cobra.Command, args []string) error {
		withBot, _ := cmd.Flags().GetBool("bot")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg, err := config.Connect(ctx)
		if err != nil {
			return err
		}
		defer cfg.Close()

		defaults, err := config.Defaults()
		if err != nil {
			return err
		}

		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics, err := service.NewMetrics(registry)
		if err != nil {
			return err
		}
		logger.SetLogHook(metrics.LogHook())

		renderer := newRenderer()

		apiLogger, err := logger.Named("http")
		if err != nil {
			return err
		}
		var presetStorage service.PresetStorage
		if cfg.Database != nil {
			presetStorage = postgres.NewPresetStorage(cfg.Database)
		}
		presets := service.NewPresetService(presetStorage, viper.GetInt("qr.max-presets"))

		var apiKeys map[string]int64
		if err = viper.UnmarshalKey("http.api-keys", &apiKeys); err != nil {
			return fmt.Errorf("failed to decode http.api-keys: %w", err)
		}
		handler := httpAdapter.NewHandler(httpAdapter.Options{
			Presets:  presets,
			Qr:       service.NewQrService(renderer, metrics, apiLogger),
			Defaults: defaults,
			Gatherer: registry,
			Logger:   apiLogger,
			APIKeys:  apiKeys,
		})
		srv := httpAdapter.NewServer(
			viper.GetString("http.addr"),
			handler,
			viper.GetDuration("http.read-timeout"),
			viper.GetDuration("http.write-timeout"),
		)

		serverErrors := make(chan error, 1)
		go func() {
			logger.Log.Infof("Starting HTTP server on %s", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		var b *bot.Bot
		if withBot {
			b, err = bot.New(cfg, renderer, metrics, defaults)
			if err != nil {
				_ = srv.Close()
				return err
			}
			setupBot.Setup(b)
			go b.Start()
		}

		select {
		case err = <-serverErrors:
			if b != nil {
				b.Stop()
			}
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
			logger.Log.Info("Shutting down")
		}

		if b != nil {
			b.Stop()
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err = srv.Shutdown(shutdownCtx); err != nil {
			logger.Log.Errorf("Graceful shutdown did not complete in %v: %v", shutdownTimeout, err)
			return srv.Close()
		}
		logger.Log.Info("Server stopped gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().Bool("bot", false, "Also run the Telegram bot (requires bot.token and redis)")
}
