package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:daytales.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Schedule struct {
		BuildInterval time.Duration `yaml:"build_interval" json:"build_interval" jsonschema:"default=24h,description=Interval between scheduled playlist builds"`
		MaxWorkers    int           `yaml:"max_workers" json:"max_workers" jsonschema:"default=5,description=Maximum users built concurrently"`
		MaxStories    int           `yaml:"max_stories" json:"max_stories" jsonschema:"default=3,description=Maximum story pipelines running concurrently within one build"`
	} `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`

	Feed FeedConfig `yaml:"feed" json:"feed" jsonschema:"description=Historical events feed configuration"`

	LLM LLMConfig `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for story curation"`

	TTS TTSConfig `yaml:"tts" json:"tts" jsonschema:"description=Narration synthesis configuration"`

	Platform PlatformConfig `yaml:"platform" json:"platform" jsonschema:"description=Content platform configuration"`

	// OfflineMode replaces every network-dependent stage with deterministic
	// synthetic results; this is the default path for tests and demos
	OfflineMode bool `yaml:"offline_mode" json:"offline_mode" jsonschema:"default=false,description=Skip all external calls and use synthetic results"`
}

// FeedConfig holds feed source settings
type FeedConfig struct {
	Endpoint  string        `yaml:"endpoint" json:"endpoint" jsonschema:"default=https://api.wikimedia.org/feed/v1/wikipedia,description=On-this-day feed endpoint base"`
	UserAgent string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=daytales/1.0,description=User agent for feed requests"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=20s,description=Feed request timeout"`
}

// LLMConfig holds LLM configuration for selection and summarization
type LLMConfig struct {
	Enabled      bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Use the remote LLM curator (falls back to local on failure)"`
	Endpoint     string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint"`
	APIKey       string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model        string        `yaml:"model" json:"model" jsonschema:"default=gpt-4o-mini,description=Model name"`
	Temperature  float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.4,description=Temperature for response generation"`
	MaxTokens    int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=2000,description=Maximum tokens in response"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=60s,description=Request timeout"`
	SystemPrompt string        `yaml:"system_prompt" json:"system_prompt" jsonschema:"description=System prompt override (optional)"`
}

// TTSConfig holds narration synthesis settings
type TTSConfig struct {
	Endpoint string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=TTS vendor endpoint"`
	APIKey   string        `yaml:"api_key" json:"api_key" jsonschema:"description=TTS vendor API key"`
	Voice    string        `yaml:"voice" json:"voice" jsonschema:"description=Default narration voice id"`
	Timeout  time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=60s,description=Synthesis request timeout"`
}

// PlatformConfig holds content platform API settings
type PlatformConfig struct {
	AuthBase     string        `yaml:"auth_base" json:"auth_base" jsonschema:"description=OAuth token endpoint base"`
	APIBase      string        `yaml:"api_base" json:"api_base" jsonschema:"description=Content and upload API base"`
	ClientID     string        `yaml:"client_id" json:"client_id" jsonschema:"description=OAuth client id"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=60s,description=Platform request timeout"`
	PollAttempts int           `yaml:"poll_attempts" json:"poll_attempts" jsonschema:"default=30,description=Transcode poll attempts before timing out"`
	PollDelay    time.Duration `yaml:"poll_delay" json:"poll_delay" jsonschema:"default=500ms,description=Delay between transcode polls"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// Default returns a configuration with all defaults applied and offline mode
// enabled, used when no config file is given
func Default() *Config {
	cfg := &Config{OfflineMode: true}
	cfg.setDefaults()
	return cfg
}

func (c *Config) setDefaults() {
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}

	if c.Database.DSN == "" {
		c.Database.DSN = "file:daytales.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	if c.Schedule.BuildInterval == 0 {
		c.Schedule.BuildInterval = 24 * time.Hour
	}
	if c.Schedule.MaxWorkers == 0 {
		c.Schedule.MaxWorkers = 5
	}
	if c.Schedule.MaxStories == 0 {
		c.Schedule.MaxStories = 3
	}

	if c.Feed.Endpoint == "" {
		c.Feed.Endpoint = "https://api.wikimedia.org/feed/v1/wikipedia"
	}
	if c.Feed.UserAgent == "" {
		c.Feed.UserAgent = "daytales/1.0"
	}
	if c.Feed.Timeout == 0 {
		c.Feed.Timeout = 20 * time.Second
	}

	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-4o-mini"
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.4
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 2000
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 60 * time.Second
	}

	if c.TTS.Timeout == 0 {
		c.TTS.Timeout = 60 * time.Second
	}

	if c.Platform.Timeout == 0 {
		c.Platform.Timeout = 60 * time.Second
	}
	if c.Platform.PollAttempts == 0 {
		c.Platform.PollAttempts = 30
	}
	if c.Platform.PollDelay == 0 {
		c.Platform.PollDelay = 500 * time.Millisecond
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.LLM.Enabled {
		if cfg.LLM.Endpoint == "" {
			return fmt.Errorf("llm.endpoint is required when llm is enabled")
		}
		if cfg.LLM.Model == "" {
			return fmt.Errorf("llm.model is required when llm is enabled")
		}
		if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
			return fmt.Errorf("llm.temperature must be between 0 and 2")
		}
	}

	if cfg.Schedule.MaxStories < 1 {
		return fmt.Errorf("schedule.max_stories must be at least 1")
	}
	if cfg.Schedule.MaxWorkers < 1 {
		return fmt.Errorf("schedule.max_workers must be at least 1")
	}

	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	// network-dependent stages need platform endpoints unless offline
	if !cfg.OfflineMode {
		if cfg.Platform.APIBase == "" {
			return fmt.Errorf("platform.api_base is required unless offline_mode is set")
		}
		if cfg.Platform.AuthBase == "" {
			return fmt.Errorf("platform.auth_base is required unless offline_mode is set")
		}
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetLLMConfig returns LLM configuration
func (c *Config) GetLLMConfig() LLMConfig {
	return c.LLM
}
