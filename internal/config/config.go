package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Config struct {
	// API
	APIBaseURL string `yaml:"api_base_url"`

	// Client state storage
	StateBackend string `yaml:"state_backend"`
	StateDBPath  string `yaml:"state_db_path"`

	// Views
	DashboardRefreshInterval  time.Duration `yaml:"dashboard_refresh_interval"`
	RegistrationRedirectDelay time.Duration `yaml:"registration_redirect_delay"`

	// AMQP (optional)
	AMQPURL      string `yaml:"amqp_url"`
	AMQPExchange string `yaml:"amqp_exchange"`
	AMQPQueue    string `yaml:"amqp_queue"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	return &Config{
		APIBaseURL:                "http://localhost:8080",
		StateBackend:              "sqlite",
		StateDBPath:               "./data/moneymaven.db",
		DashboardRefreshInterval:  5 * time.Second,
		RegistrationRedirectDelay: 2 * time.Second,
		AMQPExchange:              "moneymaven",
		AMQPQueue:                 "expense_recorded",
		LogLevel:                  "warn",
		LogFormat:                 "text",
	}
}

// Load reads the configuration from the environment on top of the defaults.
func Load() *Config {
	cfg := Defaults()
	cfg.applyEnv()
	return cfg
}

func (c *Config) applyEnv() {
	c.APIBaseURL = strings.TrimRight(getEnv("MONEYMAVEN_API_URL", c.APIBaseURL), "/")

	c.StateBackend = getEnv("STATE_BACKEND", c.StateBackend)
	c.StateDBPath = getEnv("STATE_DB_PATH", c.StateDBPath)

	c.DashboardRefreshInterval = getEnvDuration("DASHBOARD_REFRESH_INTERVAL", c.DashboardRefreshInterval)
	c.RegistrationRedirectDelay = getEnvDuration("REGISTRATION_REDIRECT_DELAY", c.RegistrationRedirectDelay)

	c.AMQPURL = getEnv("AMQP_URL", c.AMQPURL)
	c.AMQPExchange = getEnv("AMQP_EXCHANGE", c.AMQPExchange)
	c.AMQPQueue = getEnv("AMQP_QUEUE", c.AMQPQueue)

	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate API base URL
	if c.APIBaseURL == "" {
		errors = append(errors, "API base URL cannot be empty")
	} else if parsedURL, err := url.Parse(c.APIBaseURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid API base URL '%s': %v", c.APIBaseURL, err))
	} else if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		errors = append(errors, fmt.Sprintf("invalid API base URL scheme '%s': must be 'http' or 'https'", parsedURL.Scheme))
	} else if parsedURL.Host == "" {
		errors = append(errors, fmt.Sprintf("invalid API base URL '%s': missing host", c.APIBaseURL))
	}

	// Validate state backend
	validBackends := []string{"memory", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.StateBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid state backend '%s': must be one of %v", c.StateBackend, validBackends))
	}

	if c.StateBackend == "sqlite" {
		if c.StateDBPath == "" {
			errors = append(errors, "state database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.StateDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create state database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	if c.DashboardRefreshInterval < time.Second {
		errors = append(errors, fmt.Sprintf("invalid dashboard refresh interval %v: must be at least 1 second", c.DashboardRefreshInterval))
	} else if c.DashboardRefreshInterval > time.Hour {
		errors = append(errors, fmt.Sprintf("invalid dashboard refresh interval %v: must be at most 1 hour", c.DashboardRefreshInterval))
	}

	if c.RegistrationRedirectDelay < 0 {
		errors = append(errors, fmt.Sprintf("invalid registration redirect delay %v: must not be negative", c.RegistrationRedirectDelay))
	}

	// AMQP is optional; validate only when a URL is given
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'text' or 'json'", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
