package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"

	"pandemic-deck/entities"
)

const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverMySQL  = "mysql"
)

// Config 服务配置，全部来自环境变量（可由 .env 提供）
type Config struct {
	HTTPAddr        string        `mapstructure:"HTTP_ADDR"`
	StorageDriver   string        `mapstructure:"STORAGE_DRIVER"`
	RedisAddr       string        `mapstructure:"REDIS_ADDR"`
	RedisPassword   string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB         int           `mapstructure:"REDIS_DB"`
	StateKey        string        `mapstructure:"STATE_KEY"`
	MySQLDSN        string        `mapstructure:"MYSQL_DSN"`
	NATSURL         string        `mapstructure:"NATS_URL"`
	NATSSubject     string        `mapstructure:"NATS_SUBJECT"`
	AuthToken       string        `mapstructure:"AUTH_TOKEN"`
	SortLocale      string        `mapstructure:"SORT_LOCALE"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	DevMode         bool          `mapstructure:"DEV_MODE"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"HTTP_ADDR":        ":8000",
		"STATE_KEY":        "deck:history",
		"NATS_SUBJECT":     "deck.snapshot",
		"SORT_LOCALE":      "ko",
		"LOG_LEVEL":        "info",
		"SHUTDOWN_TIMEOUT": "5s",
	}
}

// Load 先加载 .env（不存在则忽略），再从环境变量解析
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}
	return FromEnv(os.Environ())
}

// FromEnv 从 KEY=VALUE 列表解析配置
func FromEnv(environ []string) (Config, error) {
	input := defaults()
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || value == "" {
			continue
		}
		input[key] = value
	}

	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		Result:           &cfg,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(input); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if cfg.StorageDriver == "" {
		cfg.StorageDriver = DriverMemory
		if cfg.RedisAddr != "" {
			cfg.StorageDriver = DriverRedis
		}
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.StorageDriver {
	case DriverMemory:
	case DriverRedis:
		if c.RedisAddr == "" {
			return errors.New("REDIS_ADDR is required for the redis storage driver")
		}
	case DriverMySQL:
		if c.MySQLDSN == "" {
			return errors.New("MYSQL_DSN is required for the mysql storage driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return nil
}

func (c Config) Locale() language.Tag {
	return entities.ParseLocale(c.SortLocale)
}

// NewLogger 开发模式下使用可读的控制台格式
func (c Config) NewLogger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if c.DevMode {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	return zc.Build()
}
