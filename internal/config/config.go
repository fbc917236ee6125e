package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string    `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogBackend string    `yaml:"log-backend" env:"LOG_BACKEND" env-default:"std"`
	HTTPPort   string    `yaml:"http-port" env:"PORT" env-default:"3000"`
	StaticDir  string    `yaml:"static-dir" env:"STATIC_DIR" env-default:"public"`
	WebSocket  WebSocket `yaml:"websocket"`
	Redis      Redis     `yaml:"redis"`
}

type WebSocket struct {
	WriteWait      time.Duration `yaml:"write-wait" env:"WS_WRITE_WAIT" env-default:"10s"`
	PongWait       time.Duration `yaml:"pong-wait" env:"WS_PONG_WAIT" env-default:"60s"`
	PingPeriod     time.Duration `yaml:"ping-period" env:"WS_PING_PERIOD" env-default:"54s"`
	MaxMessageSize int64         `yaml:"max-message-size" env:"WS_MAX_MESSAGE_SIZE" env-default:"4096"`
	SendBufferSize int           `yaml:"send-buffer-size" env:"WS_SEND_BUFFER_SIZE" env-default:"32"`
}

// Redis - finished games are recorded only when enabled.
type Redis struct {
	Enabled      bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host         string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port         string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	ResultsLimit int64  `yaml:"results-limit" env:"REDIS_RESULTS_LIMIT" env-default:"100"`
}

// Load - load all configurations in config.yml file, or from the environment
// when there is no such file.
func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read config from env: %w", err)
		}
	} else if err = cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if config.WebSocket.PingPeriod >= config.WebSocket.PongWait {
		return nil, fmt.Errorf("ping-period %s must be shorter than pong-wait %s",
			config.WebSocket.PingPeriod, config.WebSocket.PongWait)
	}

	if config.WebSocket.MaxMessageSize <= 0 {
		return nil, fmt.Errorf("max-message-size must be positive, got %d", config.WebSocket.MaxMessageSize)
	}

	if config.WebSocket.SendBufferSize <= 0 {
		return nil, fmt.Errorf("send-buffer-size must be positive, got %d", config.WebSocket.SendBufferSize)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
