package bootstrap

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort      string `mapstructure:"SERVER_PORT"`
	RedisUrl        string `mapstructure:"REDIS_URL"`
	MongoUri        string `mapstructure:"MONGO_URI"`
	MongoDatabase   string `mapstructure:"MONGO_DATABASE"`
	BotServiceAddr  string `mapstructure:"BOT_SERVICE_ADDR"`
	IsLocalCors     bool   `mapstructure:"LOCAL_CORS"`
	TickIntervalMs  int    `mapstructure:"TICK_INTERVAL_MS"`
	SessionTTLHours int    `mapstructure:"SESSION_TTL_HOURS"`
}

var defaults = map[string]any{
	"SERVER_PORT":       "8080",
	"REDIS_URL":         "localhost:6379",
	"MONGO_URI":         "mongodb://localhost:27017",
	"MONGO_DATABASE":    "baduk_arena",
	"BOT_SERVICE_ADDR":  "",
	"LOCAL_CORS":        false,
	"TICK_INTERVAL_MS":  500,
	"SESSION_TTL_HOURS": 24,
}

// Setup читает конфиг из файла cfgPath и переменных окружения.
// Переменные окружения важнее файла; отсутствие файла не ошибка.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil && !isMissingFile(err) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func isMissingFile(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

func (c Config) TickInterval() time.Duration {
	if c.TickIntervalMs <= 0 {
		return time.Second
	}
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

func (c Config) SessionTTL() time.Duration {
	if c.SessionTTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.SessionTTLHours) * time.Hour
}
