package infra

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"

	"pixrelay/internal/forwarder"
	"pixrelay/validation"
)

type Config struct {
	ServerName             string
	ServerPort             string `validate:"required"`
	Environment            string
	WebhookPath            string        `validate:"required,startswith=/"`
	WebhookProfile         string        `validate:"required,oneof=legacy minimal full"`
	ForwardURL             string        `validate:"required,url"`
	ForwardToken           string        `validate:"required"`
	ForwardUserAgent       string        `validate:"required"`
	ForwardTimeout         time.Duration `validate:"gt=0"`
	ForwardConnectTimeout  time.Duration `validate:"gt=0"`
	ForwardTLSInsecure     bool
	ForwardFollowRedirects bool
	ForwardMaxRedirects    int    `validate:"gte=0"`
	LogFile                string `validate:"required"`
	LogRedisURL            string
	LogRedisKey            string `validate:"required_with=LogRedisURL"`
}

func NewConfig() Config {
	config, err := LoadConfig()
	if err != nil {
		panic("Error loading config: " + err.Error())
	}
	return config
}

// LoadConfig reads the environment. Outside a deployed ENVIRONMENT a local
// .env file is loaded first when present.
func LoadConfig() (Config, error) {
	if os.Getenv("ENVIRONMENT") == "" {
		if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
	}

	timeout, err := envSeconds("FORWARD_TIMEOUT_SECONDS", forwarder.DefaultTimeout)
	if err != nil {
		return Config{}, err
	}
	connectTimeout, err := envSeconds("FORWARD_CONNECT_TIMEOUT_SECONDS", forwarder.DefaultConnectTimeout)
	if err != nil {
		return Config{}, err
	}
	insecure, err := envBool("FORWARD_TLS_INSECURE", false)
	if err != nil {
		return Config{}, err
	}
	followRedirects, err := envBool("FORWARD_FOLLOW_REDIRECTS", true)
	if err != nil {
		return Config{}, err
	}
	maxRedirects, err := validation.ParseStringToInt64(envOrDefault("FORWARD_MAX_REDIRECTS", "3"))
	if err != nil {
		return Config{}, fmt.Errorf("FORWARD_MAX_REDIRECTS: %w", err)
	}

	config := Config{
		ServerName:             envOrDefault("SERVER_NAME", "pix-webhook-relay"),
		ServerPort:             envOrDefault("SERVER_PORT", ":8080"),
		Environment:            os.Getenv("ENVIRONMENT"),
		WebhookPath:            envOrDefault("WEBHOOK_PATH", "/webhook"),
		WebhookProfile:         envOrDefault("WEBHOOK_PROFILE", "full"),
		ForwardURL:             os.Getenv("FORWARD_URL"),
		ForwardToken:           os.Getenv("FORWARD_TOKEN"),
		ForwardUserAgent:       envOrDefault("FORWARD_USER_AGENT", forwarder.DefaultUserAgent),
		ForwardTimeout:         timeout,
		ForwardConnectTimeout:  connectTimeout,
		ForwardTLSInsecure:     insecure,
		ForwardFollowRedirects: followRedirects,
		ForwardMaxRedirects:    int(maxRedirects),
		LogFile:                envOrDefault("LOG_FILE", "webhook_logs.txt"),
		LogRedisURL:            os.Getenv("LOG_REDIS_URL"),
		LogRedisKey:            envOrDefault("LOG_REDIS_KEY", "webhook_logs"),
	}

	if err := validation.Validate(config); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

func (c Config) ForwarderConfig() forwarder.Config {
	return forwarder.Config{
		URL:                c.ForwardURL,
		Token:              c.ForwardToken,
		UserAgent:          c.ForwardUserAgent,
		Timeout:            c.ForwardTimeout,
		ConnectTimeout:     c.ForwardConnectTimeout,
		InsecureSkipVerify: c.ForwardTLSInsecure,
		FollowRedirects:    c.ForwardFollowRedirects,
		MaxRedirects:       c.ForwardMaxRedirects,
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envSeconds(key string, fallback time.Duration) (time.Duration, error) {
	seconds, err := validation.ParseStringToInt64(os.Getenv(key))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if seconds == 0 {
		return fallback, nil
	}
	return time.Duration(seconds) * time.Second, nil
}

func envBool(key string, fallback bool) (bool, error) {
	value, err := validation.ParseStringToBool(os.Getenv(key), fallback)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return value, nil
}
