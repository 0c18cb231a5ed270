package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	GroqAPIKey  string        `envconfig:"GROQ_API_KEY"`
	GroqBaseURL string        `envconfig:"GROQ_BASE_URL" default:"https://api.groq.com/openai/v1"`
	GroqModel   string        `envconfig:"GROQ_MODEL" default:"llama3-70b-8192"`
	GroqTimeout time.Duration `envconfig:"GROQ_TIMEOUT" default:"60s"`

	KBFile        string `envconfig:"KB_FILE" default:"./kb/knowledge_base.txt"`
	ContextBudget int    `envconfig:"RAG_CONTEXT_BUDGET" default:"6000"`
	ChunkSize     int    `envconfig:"RAG_CHUNK_SIZE" default:"1000"`
	ChunkOverlap  int    `envconfig:"RAG_CHUNK_OVERLAP" default:"0"`

	ChatHistoryLimit int `envconfig:"CHAT_HISTORY_LIMIT" default:"12"`

	// MaxSessions bounds the number of retained chat sessions; 0 keeps
	// every session until process restart.
	MaxSessions          int           `envconfig:"MAX_SESSIONS" default:"0"`
	SessionSweepInterval time.Duration `envconfig:"SESSION_SWEEP_INTERVAL" default:"1m"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("EARLYSTEPS", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.ContextBudget <= 0 {
		return nil, fmt.Errorf("RAG_CONTEXT_BUDGET must be positive, got %d", cfg.ContextBudget)
	}
	if cfg.ChunkSize <= 0 {
		return nil, fmt.Errorf("RAG_CHUNK_SIZE must be positive, got %d", cfg.ChunkSize)
	}
	if cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		return nil, fmt.Errorf("RAG_CHUNK_OVERLAP must be in [0, chunk size), got %d", cfg.ChunkOverlap)
	}
	if cfg.ChatHistoryLimit <= 0 {
		return nil, fmt.Errorf("CHAT_HISTORY_LIMIT must be positive, got %d", cfg.ChatHistoryLimit)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func (c *Config) HasGroq() bool {
	return c.GroqAPIKey != ""
}

func (c *Config) BoundsSessions() bool {
	return c.MaxSessions > 0
}
