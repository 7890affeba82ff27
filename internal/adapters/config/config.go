package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	postgresStorage "github.com/Badsnus/qr-styler/internal/adapters/database/postgres"
	"github.com/Badsnus/qr-styler/internal/adapters/database/redis"
	"github.com/Badsnus/qr-styler/pkg/logger"
	"github.com/Badsnus/qr-styler/pkg/qrstyle"
)

type Config struct {
	Database *gorm.DB
	Redis    *redis.Client
}

func setDefaults() {
	viper.SetDefault("settings.debug", false)
	viper.SetDefault("settings.timezone", "UTC")
	viper.SetDefault("settings.logs-dir", "logs")
	viper.SetDefault("settings.logging.channel-log-level", "error")

	viper.SetDefault("bot.poll-timeout", 10*time.Second)
	viper.SetDefault("bot.layout", "telegram.yml")

	viper.SetDefault("service.database.port", 5432)
	viper.SetDefault("service.redis.port", 6379)

	viper.SetDefault("http.addr", ":8080")
	viper.SetDefault("http.read-timeout", 10*time.Second)
	viper.SetDefault("http.write-timeout", 30*time.Second)

	viper.SetDefault("qr.session-ttl", 24*time.Hour)
	viper.SetDefault("qr.image-timeout", 10*time.Second)
	viper.SetDefault("qr.allow-files", false)
	viper.SetDefault("qr.output-dir", "codes")
	viper.SetDefault("qr.max-presets", 50)
}

// Load reads the config file (config.yaml in the working directory when
// path is empty) and initializes the logger. Every key can be overridden
// with a QRSTYLER_ prefixed environment variable, e.g. QRSTYLER_BOT_TOKEN.
func Load(path string) error {
	setDefaults()

	viper.SetEnvPrefix("qrstyler")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	return logger.Init(logger.Config{
		Debug:     viper.GetBool("settings.debug"),
		TimeZone:  viper.GetString("settings.timezone"),
		LogToFile: viper.GetBool("settings.log-to-file"),
		LogsDir:   viper.GetString("settings.logs-dir"),
	})
}

// Defaults returns the editor's starting form: the built-in defaults with
// qr.defaults from the config file overlaid.
func Defaults() (qrstyle.FormState, error) {
	var overlay qrstyle.PartialFormState
	if err := viper.UnmarshalKey("qr.defaults", &overlay); err != nil {
		return qrstyle.FormState{}, fmt.Errorf("failed to decode qr.defaults: %w", err)
	}

	state := qrstyle.Default().Apply(overlay)
	if err := state.Validate(); err != nil {
		return qrstyle.FormState{}, fmt.Errorf("invalid qr.defaults: %w", err)
	}
	return state, nil
}

func databaseConfig() *gorm.Config {
	gormConfig := &gorm.Config{TranslateError: true}
	if viper.GetBool("settings.debug") {
		gormConfig.Logger = gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				SlowThreshold: time.Second,
				LogLevel:      gormLogger.Info,
				Colorful:      true,
			},
		)
	}
	return gormConfig
}

// Connect opens the enabled storages. Disabled ones stay nil.
func Connect(ctx context.Context) (*Config, error) {
	cfg := &Config{}

	if viper.GetBool("service.database.enabled") {
		dsn := fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%d sslmode=disable TimeZone=%s",
			viper.GetString("service.database.user"),
			viper.GetString("service.database.password"),
			viper.GetString("service.database.name"),
			viper.GetString("service.database.host"),
			viper.GetInt("service.database.port"),
			viper.GetString("settings.timezone"),
		)

		database, err := gorm.Open(postgres.Open(dsn), databaseConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to the database: %w", err)
		}
		logger.Log.Info("Successfully connected to the database")

		if err = database.WithContext(ctx).AutoMigrate(postgresStorage.Migrations...); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		cfg.Database = database
	}

	if viper.GetBool("service.redis.enabled") {
		client, err := redis.New(ctx, redis.Options{
			Host:     viper.GetString("service.redis.host"),
			Port:     viper.GetInt("service.redis.port"),
			Password: viper.GetString("service.redis.password"),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		logger.Log.Info("Successfully connected to redis")
		cfg.Redis = client
	}

	return cfg, nil
}

func (c *Config) Close() {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Log.Errorf("Failed to close redis: %v", err)
		}
	}
	if c.Database != nil {
		if db, err := c.Database.DB(); err == nil {
			_ = db.Close()
		}
	}
}
