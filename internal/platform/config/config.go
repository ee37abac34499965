package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Authorizer configures the origin-verify authorizer.
type Authorizer struct {
	// SecretID names the secret holding the expected x-origin-verify value.
	SecretID string
	// StaticSecret replaces the secret store for local development.
	StaticSecret string
	Region       string
	Endpoint     string
}

// Contact configures the contact-form handler and its notifier.
type Contact struct {
	SendFrom string
	SendTo   string
	Region   string
	Endpoint string
	Notifier string
}

// RedisConfig configures the optional shared rate limit store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RateLimit configures submission throttling.
type RateLimit struct {
	PerMinute int
	Redis     RedisConfig
}

// Server captures local HTTP server level configuration.
type Server struct {
	Addr       string
	LogLevel   string
	Authorizer Authorizer
	Contact    Contact
	RateLimit  RateLimit
}

const (
	NotifierSES = "ses"
	NotifierLog = "log"
)

// ErrMissing is wrapped by every validation failure.
var ErrMissing = errors.New("missing required configuration")

// AuthorizerFromEnv reads the authorizer settings.
func AuthorizerFromEnv() Authorizer {
	return Authorizer{
		SecretID:     os.Getenv("X_ORIGIN_VERIFY_SECRET_ARN"),
		StaticSecret: os.Getenv("X_ORIGIN_VERIFY_SECRET_VALUE"),
		Region:       os.Getenv("STACK_REGION"),
		Endpoint:     os.Getenv("AWS_ENDPOINT_URL"),
	}
}

// ContactFromEnv reads the contact-form settings.
func ContactFromEnv() Contact {
	notifier := strings.ToLower(os.Getenv("NOTIFIER"))
	if notifier == "" {
		notifier = NotifierSES
	}
	return Contact{
		SendFrom: os.Getenv("SES_SEND_FROM"),
		SendTo:   os.Getenv("SES_SEND_TO"),
		Region:   os.Getenv("SES_REGION"),
		Endpoint: os.Getenv("AWS_ENDPOINT_URL"),
		Notifier: notifier,
	}
}

// RateLimitFromEnv reads the submission throttling settings.
func RateLimitFromEnv() RateLimit {
	return RateLimit{
		PerMinute: envInt("RATE_LIMIT_PER_MINUTE", 5),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 2*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 500*time.Millisecond),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 500*time.Millisecond),
		},
	}
}

// FromEnv builds the local server config from environment variables so main
// stays lean.
func FromEnv() Server {
	addr := os.Getenv("CONTACTUS_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	return Server{
		Addr:       addr,
		LogLevel:   level,
		Authorizer: AuthorizerFromEnv(),
		Contact:    ContactFromEnv(),
		RateLimit:  RateLimitFromEnv(),
	}
}

// Validate reports missing required authorizer settings.
func (a Authorizer) Validate() error {
	if a.SecretID == "" && a.StaticSecret == "" {
		return fmt.Errorf("%w: X_ORIGIN_VERIFY_SECRET_ARN", ErrMissing)
	}
	return nil
}

// Validate reports missing or invalid contact settings.
func (c Contact) Validate() error {
	var missing []string
	if c.SendFrom == "" {
		missing = append(missing, "SES_SEND_FROM")
	}
	if c.SendTo == "" {
		missing = append(missing, "SES_SEND_TO")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissing, strings.Join(missing, ", "))
	}
	if c.Notifier != NotifierSES && c.Notifier != NotifierLog {
		return fmt.Errorf("unknown NOTIFIER %q", c.Notifier)
	}
	return nil
}

// Validate checks every section used by the local server.
func (s Server) Validate() error {
	if err := s.Authorizer.Validate(); err != nil {
		return err
	}
	if err := s.Contact.Validate(); err != nil {
		return err
	}
	if s.RateLimit.PerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive, got %d", s.RateLimit.PerMinute)
	}
	return nil
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
