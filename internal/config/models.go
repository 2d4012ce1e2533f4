package config

import "time"

// SourceConfig selects where inbox documents come from
type SourceConfig struct {
	Type     string
	FilePath string
}

// BrowserConfig represents the configuration for the Chrome document host
type BrowserConfig struct {
	URL             string
	RemoteURL       string
	Headless        bool
	UserDataDir     string
	SnapshotTimeout time.Duration
}

// ExtractConfig represents the configuration for inbox extraction
type ExtractConfig struct {
	ReadyPollInterval time.Duration
	ReadyMaxPolls     int
	ReadyRetries      int
	ReadyBackoff      time.Duration
	EmptyRetryDelay   time.Duration
	MaxRows           int
	ReadinessMarkers  []string
	RowSelectors      []string
}

// LLMConfig represents the configuration for the LLM provider
type LLMConfig struct {
	Provider string
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
	TopK        int
	MaxBodySize int
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// ReplyConfig represents the generation settings for reply drafts
type ReplyConfig struct {
	MaxTokens   int
	Temperature float32
}

// DigestConfig represents the configuration for digest building
type DigestConfig struct {
	MaxSummaries int
	Pace         time.Duration
	MutedDomains []string
}

// CacheConfig represents the configuration for the summary cache
type CacheConfig struct {
	Type             string
	Enabled          bool
	TTL              time.Duration
	CleanupFrequency time.Duration
	SQLitePath       string
	MySQLDSN         string
}

// SMTPConfig represents the configuration for mailing digests
type SMTPConfig struct {
	Address  string
	Username string
	Password string
	From     string
	To       []string
	Subject  string
}

// GetSource returns the document source configuration
func (c *Config) GetSource() SourceConfig {
	return SourceConfig{
		Type:     c.GetString("source.type"),
		FilePath: c.GetString("source.file_path"),
	}
}

// GetBrowser returns the browser configuration
func (c *Config) GetBrowser() BrowserConfig {
	return BrowserConfig{
		URL:             c.GetString("browser.url"),
		RemoteURL:       c.GetString("browser.remote_url"),
		Headless:        c.GetBool("browser.headless"),
		UserDataDir:     c.GetString("browser.user_data_dir"),
		SnapshotTimeout: c.v.GetDuration("browser.snapshot_timeout"),
	}
}

// GetExtract returns the extraction configuration
func (c *Config) GetExtract() ExtractConfig {
	return ExtractConfig{
		ReadyPollInterval: c.v.GetDuration("extract.ready_poll_interval"),
		ReadyMaxPolls:     c.GetInt("extract.ready_max_polls"),
		ReadyRetries:      c.GetInt("extract.ready_retries"),
		ReadyBackoff:      c.v.GetDuration("extract.ready_backoff"),
		EmptyRetryDelay:   c.v.GetDuration("extract.empty_retry_delay"),
		MaxRows:           c.GetInt("extract.max_rows"),
		ReadinessMarkers:  c.GetStringSlice("extract.readiness_markers"),
		RowSelectors:      c.GetStringSlice("extract.row_selectors"),
	}
}

// GetLLM returns the LLM configuration
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		Provider: c.GetString("llm.provider"),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
		TopP:        float32(c.GetFloat64("bedrock.top_p")),
		MaxBodySize: c.GetInt("bedrock.max_body_size"),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
		TopP:        float32(c.GetFloat64("gemini.top_p")),
		TopK:        c.GetInt("gemini.top_k"),
		MaxBodySize: c.GetInt("gemini.max_body_size"),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		BaseURL:     c.GetString("openai.base_url"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		TopP:        float32(c.GetFloat64("openai.top_p")),
		MaxBodySize: c.GetInt("openai.max_body_size"),
	}
}

// GetReply returns the reply drafting configuration
func (c *Config) GetReply() ReplyConfig {
	return ReplyConfig{
		MaxTokens:   c.GetInt("reply.max_tokens"),
		Temperature: float32(c.GetFloat64("reply.temperature")),
	}
}

// GetDigest returns the digest configuration
func (c *Config) GetDigest() DigestConfig {
	return DigestConfig{
		MaxSummaries: c.GetInt("digest.max_summaries"),
		Pace:         c.v.GetDuration("digest.pace"),
		MutedDomains: c.GetStringSlice("digest.muted_domains"),
	}
}

// GetCache returns the cache configuration
func (c *Config) GetCache() CacheConfig {
	return CacheConfig{
		Type:             c.GetString("cache.type"),
		Enabled:          c.GetBool("cache.enabled"),
		TTL:              c.v.GetDuration("cache.ttl"),
		CleanupFrequency: c.v.GetDuration("cache.cleanup_frequency"),
		SQLitePath:       c.GetString("cache.sqlite_path"),
		MySQLDSN:         c.GetString("cache.mysql_dsn"),
	}
}

// GetSMTP returns the SMTP delivery configuration
func (c *Config) GetSMTP() SMTPConfig {
	return SMTPConfig{
		Address:  c.GetString("smtp.address"),
		Username: c.GetString("smtp.username"),
		Password: c.GetString("smtp.password"),
		From:     c.GetString("smtp.from"),
		To:       c.GetStringSlice("smtp.to"),
		Subject:  c.GetString("smtp.subject"),
	}
}
