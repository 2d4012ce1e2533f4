package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// Load reads the configuration from path, or searches the default locations
// when path is empty
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/mailmind/")
		v.AddConfigPath("$HOME/.mailmind")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("MAILMIND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Document source defaults
	v.SetDefault("source.type", "browser")
	v.SetDefault("source.file_path", "")

	// Browser defaults
	v.SetDefault("browser.url", "https://mail.google.com/mail/u/0/#inbox")
	v.SetDefault("browser.remote_url", "")
	v.SetDefault("browser.headless", false)
	v.SetDefault("browser.user_data_dir", "")
	v.SetDefault("browser.snapshot_timeout", "10s")

	// Extraction defaults
	v.SetDefault("extract.ready_poll_interval", "500ms")
	v.SetDefault("extract.ready_max_polls", 30)
	v.SetDefault("extract.ready_retries", 5)
	v.SetDefault("extract.ready_backoff", "1s")
	v.SetDefault("extract.empty_retry_delay", "1s")
	v.SetDefault("extract.max_rows", 50)
	v.SetDefault("extract.readiness_markers", []string{})
	v.SetDefault("extract.row_selectors", []string{})

	// LLM provider defaults
	v.SetDefault("llm.provider", "gemini")

	// Bedrock defaults
	v.SetDefault("bedrock.region", "us-east-1")
	v.SetDefault("bedrock.model_id", "anthropic.claude-v2")
	v.SetDefault("bedrock.max_tokens", 200)
	v.SetDefault("bedrock.temperature", 0.4)
	v.SetDefault("bedrock.top_p", 1.0)
	v.SetDefault("bedrock.max_body_size", 2048)

	// Gemini defaults
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model_name", "gemini-2.0-flash")
	v.SetDefault("gemini.max_tokens", 200)
	v.SetDefault("gemini.temperature", 0.4)
	v.SetDefault("gemini.top_p", 1.0)
	v.SetDefault("gemini.top_k", 32)
	v.SetDefault("gemini.max_body_size", 2048)

	// OpenAI defaults
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.base_url", "")
	v.SetDefault("openai.model_name", "gpt-4o-mini")
	v.SetDefault("openai.max_tokens", 200)
	v.SetDefault("openai.temperature", 0.4)
	v.SetDefault("openai.top_p", 1.0)
	v.SetDefault("openai.max_body_size", 2048)

	// Reply defaults, shared by every provider
	v.SetDefault("reply.max_tokens", 300)
	v.SetDefault("reply.temperature", 0.6)

	// Digest defaults
	v.SetDefault("digest.max_summaries", 10)
	v.SetDefault("digest.pace", "100ms")
	v.SetDefault("digest.muted_domains", []string{})

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.cleanup_frequency", "1h")
	v.SetDefault("cache.sqlite_path", "/data/summary_cache.db")
	v.SetDefault("cache.mysql_dsn", "user:password@tcp(localhost:3306)/mailmind")

	// Notifier defaults
	v.SetDefault("notify.type", "console")
	v.SetDefault("smtp.address", "localhost:25")
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.from", "mailmind@localhost")
	v.SetDefault("smtp.to", []string{})
	v.SetDefault("smtp.subject", "Today's inbox digest")

	// Daemon defaults
	v.SetDefault("daemon.interval", "15m")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetFloat64 gets a float64 value from the configuration
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
