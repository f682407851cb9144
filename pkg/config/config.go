package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/umputun/feedboard/pkg/domain"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Database DatabaseConfig `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	LLM      LLMConfig      `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for feedback analysis"`
	Workflow WorkflowConfig `yaml:"workflow" json:"workflow" jsonschema:"description=Analysis workflow configuration"`
	Auth     AuthConfig     `yaml:"auth" json:"auth" jsonschema:"description=Operator authentication"`
	Sources  SourcesConfig  `yaml:"sources" json:"sources" jsonschema:"description=Feedback feeds to import"`
	Notify   NotifyConfig   `yaml:"notify" json:"notify" jsonschema:"description=Webhook notifications for urgent feedback"`
}

// ServerConfig holds http server settings
type ServerConfig struct {
	Listen     string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	WebRoot    string        `yaml:"web_root" json:"web_root" jsonschema:"description=Directory with login.html and index.html for page routes"`
	MaxConns   int           `yaml:"max_conns" json:"max_conns" jsonschema:"default=0,description=Maximum simultaneous connections (0 is unlimited)"`
	CORSOrigin string        `yaml:"cors_origin" json:"cors_origin" jsonschema:"default=*,description=Value of Access-Control-Allow-Origin for API responses"`
}

// DatabaseConfig holds sqlite settings
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:feedboard.db?cache=shared&mode=rwc,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// LLM providers
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// LLMConfig holds LLM configuration for feedback analysis
type LLMConfig struct {
	Provider     string        `yaml:"provider" json:"provider" jsonschema:"default=openai,enum=openai,enum=gemini,description=Completion backend"`
	Endpoint     string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint (openai provider only)"`
	APIKey       string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model        string        `yaml:"model" json:"model" jsonschema:"required,description=Model name (e.g. gpt-4o-mini or gemini-2.0-flash)"`
	Temperature  float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.2,description=Temperature for response generation"`
	MaxTokens    int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=300,description=Maximum tokens in response"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	SystemPrompt string        `yaml:"system_prompt" json:"system_prompt" jsonschema:"description=System prompt for the LLM (optional)"`
}

// WorkflowConfig holds analysis workflow settings
type WorkflowConfig struct {
	MaxWorkers    int           `yaml:"max_workers" json:"max_workers" jsonschema:"default=5,minimum=1,description=Maximum concurrent workflow runs"`
	QueueSize     int           `yaml:"queue_size" json:"queue_size" jsonschema:"default=100,minimum=1,description=Pending runs buffered in memory"`
	MaxAttempts   int           `yaml:"max_attempts" json:"max_attempts" jsonschema:"default=5,minimum=1,description=Attempts per workflow step before giving up"`
	RetryDelay    time.Duration `yaml:"retry_delay" json:"retry_delay" jsonschema:"default=1s,description=Initial delay between step attempts"`
	MaxRetryDelay time.Duration `yaml:"max_retry_delay" json:"max_retry_delay" jsonschema:"default=30s,description=Maximum delay between step attempts"`
}

// session stores
const (
	SessionStoreDB     = "db"
	SessionStoreMemory = "memory"
)

// AuthConfig holds operator credentials and session settings
type AuthConfig struct {
	Username     string        `yaml:"username" json:"username" jsonschema:"required,description=Operator login"`
	Password     string        `yaml:"password" json:"password" jsonschema:"description=Operator password (plain, prefer password_hash)"`
	PasswordHash string        `yaml:"password_hash" json:"password_hash" jsonschema:"description=Bcrypt hash of the operator password"`
	SessionTTL   time.Duration `yaml:"session_ttl" json:"session_ttl" jsonschema:"default=24h,description=Session lifetime"`
	SessionStore string        `yaml:"session_store" json:"session_store" jsonschema:"default=db,enum=db,enum=memory,description=Where sessions are kept"`
}

// SourcesConfig holds feedback feed import settings
type SourcesConfig struct {
	Schedule string        `yaml:"schedule" json:"schedule" jsonschema:"default=@every 15m,description=Cron spec for feed polling"`
	Timeout  time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Feed fetch timeout"`
	Feeds    []FeedSource  `yaml:"feeds" json:"feeds" jsonschema:"description=RSS/Atom feeds to import feedback from"`
}

// FeedSource is a single feed imported as feedback
type FeedSource struct {
	Name string `yaml:"name" json:"name" jsonschema:"description=Source tag stored with imported items (defaults to URL)"`
	URL  string `yaml:"url" json:"url" jsonschema:"required,description=Feed URL"`
}

// NotifyConfig holds webhook notification settings
type NotifyConfig struct {
	WebhookURL string        `yaml:"webhook_url" json:"webhook_url" jsonschema:"description=Webhook receiving urgent feedback (disabled if empty)"`
	MinUrgency string        `yaml:"min_urgency" json:"min_urgency" jsonschema:"default=critical,enum=critical,enum=high,enum=medium,enum=low,description=Lowest urgency to notify about"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Webhook request timeout"`
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

	// validate configuration
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

func (c *Config) setDefaults() {
	// server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}
	if c.Server.CORSOrigin == "" {
		c.Server.CORSOrigin = "*"
	}

	// database
	if c.Database.DSN == "" {
		c.Database.DSN = "file:feedboard.db?cache=shared&mode=rwc&_txlock=immediate"
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

	// llm
	if c.LLM.Provider == "" {
		c.LLM.Provider = ProviderOpenAI
	}
	if c.LLM.Provider == ProviderOpenAI && c.LLM.Endpoint == "" {
		c.LLM.Endpoint = "https://api.openai.com/v1"
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.2
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 300
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 30 * time.Second
	}

	// workflow
	if c.Workflow.MaxWorkers == 0 {
		c.Workflow.MaxWorkers = 5
	}
	if c.Workflow.QueueSize == 0 {
		c.Workflow.QueueSize = 100
	}
	if c.Workflow.MaxAttempts == 0 {
		c.Workflow.MaxAttempts = 5
	}
	if c.Workflow.RetryDelay == 0 {
		c.Workflow.RetryDelay = time.Second
	}
	if c.Workflow.MaxRetryDelay == 0 {
		c.Workflow.MaxRetryDelay = 30 * time.Second
	}

	// auth
	if c.Auth.SessionTTL == 0 {
		c.Auth.SessionTTL = 24 * time.Hour
	}
	if c.Auth.SessionStore == "" {
		c.Auth.SessionStore = SessionStoreDB
	}

	// sources
	if c.Sources.Schedule == "" {
		c.Sources.Schedule = "@every 15m"
	}
	if c.Sources.Timeout == 0 {
		c.Sources.Timeout = 30 * time.Second
	}
	for i := range c.Sources.Feeds {
		if c.Sources.Feeds[i].Name == "" {
			c.Sources.Feeds[i].Name = c.Sources.Feeds[i].URL
		}
	}

	// notify
	if c.Notify.MinUrgency == "" {
		c.Notify.MinUrgency = string(domain.UrgencyCritical)
	}
	if c.Notify.Timeout == 0 {
		c.Notify.Timeout = 10 * time.Second
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	// validate LLM config
	switch cfg.LLM.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("llm.provider must be %q or %q", ProviderOpenAI, ProviderGemini)
	}
	if cfg.LLM.Model == "" {
		return fmt.Errorf("llm.model is required")
	}
	if cfg.LLM.Provider == ProviderGemini && cfg.LLM.APIKey == "" {
		return fmt.Errorf("llm.api_key is required for gemini provider")
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}
	if cfg.LLM.MaxTokens < 1 {
		return fmt.Errorf("llm.max_tokens must be at least 1")
	}

	// validate workflow config
	if cfg.Workflow.MaxWorkers < 1 {
		return fmt.Errorf("workflow.max_workers must be at least 1")
	}
	if cfg.Workflow.MaxAttempts < 1 {
		return fmt.Errorf("workflow.max_attempts must be at least 1")
	}
	if cfg.Workflow.MaxRetryDelay < cfg.Workflow.RetryDelay {
		return fmt.Errorf("workflow.max_retry_delay must not be less than workflow.retry_delay")
	}

	// validate auth config
	if cfg.Auth.Username == "" {
		return fmt.Errorf("auth.username is required")
	}
	if cfg.Auth.Password == "" && cfg.Auth.PasswordHash == "" {
		return fmt.Errorf("auth.password or auth.password_hash is required")
	}
	if cfg.Auth.SessionStore != SessionStoreDB && cfg.Auth.SessionStore != SessionStoreMemory {
		return fmt.Errorf("auth.session_store must be %q or %q", SessionStoreDB, SessionStoreMemory)
	}

	// validate sources config
	for i, f := range cfg.Sources.Feeds {
		if f.URL == "" {
			return fmt.Errorf("sources.feeds[%d].url is required", i)
		}
	}

	// validate notify config
	if !domain.Urgency(cfg.Notify.MinUrgency).Valid() {
		return fmt.Errorf("notify.min_urgency must be one of critical, high, medium, low")
	}

	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	if cfg.Server.MaxConns < 0 {
		return fmt.Errorf("server.max_conns must be non-negative")
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

// GetFullConfig returns the full configuration
func (c *Config) GetFullConfig() *Config {
	return c
}
