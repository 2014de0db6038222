package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration. It is constructed once
// at process start and read-only thereafter; the pipeline receives it by
// reference rather than touching ambient state.
type Config struct {
	Jina       JinaConfig       `yaml:"jina" mapstructure:"jina"`
	Anthropic  AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	Retrieval  RetrievalConfig  `yaml:"retrieval" mapstructure:"retrieval"`
	Extraction ExtractionConfig `yaml:"extraction" mapstructure:"extraction"`
	Pipeline   PipelineConfig   `yaml:"pipeline" mapstructure:"pipeline"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// JinaConfig holds Jina AI Search credentials and endpoints.
type JinaConfig struct {
	Key           string `yaml:"key" mapstructure:"key"`
	SearchBaseURL string `yaml:"search_base_url" mapstructure:"search_base_url"`
}

// AnthropicConfig holds Anthropic API settings for the extraction engine.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// RetrievalConfig configures the retrieval fan-out phase.
type RetrievalConfig struct {
	ResultsPerQuery  int     `yaml:"results_per_query" mapstructure:"results_per_query"`
	QueryTimeoutSecs int     `yaml:"query_timeout_secs" mapstructure:"query_timeout_secs"`
	QueriesPerSec    float64 `yaml:"queries_per_sec" mapstructure:"queries_per_sec"`
	Retries          int     `yaml:"retries" mapstructure:"retries"`
}

// ExtractionConfig configures the single structured-extraction call.
type ExtractionConfig struct {
	TimeoutSecs     int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxContextChars int     `yaml:"max_context_chars" mapstructure:"max_context_chars"`
	MaxOutputTokens int64   `yaml:"max_output_tokens" mapstructure:"max_output_tokens"`
	Temperature     float64 `yaml:"temperature" mapstructure:"temperature"`
}

// PipelineConfig configures request-level pipeline behavior.
type PipelineConfig struct {
	RequestTimeoutSecs    int `yaml:"request_timeout_secs" mapstructure:"request_timeout_secs"`
	CompletenessThreshold int `yaml:"completeness_threshold" mapstructure:"completeness_threshold"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port         int      `yaml:"port" mapstructure:"port"`
	CORSOrigins  []string `yaml:"cors_origins" mapstructure:"cors_origins"`
	AllowAllCORS bool     `yaml:"allow_all_cors" mapstructure:"allow_all_cors"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LEADSCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"http://localhost:*", "http://127.0.0.1:*"})
	// Credential keys need registered defaults so AutomaticEnv sees them.
	v.SetDefault("jina.key", "")
	v.SetDefault("jina.search_base_url", "https://s.jina.ai")
	v.SetDefault("anthropic.key", "")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("retrieval.results_per_query", 10)
	v.SetDefault("retrieval.query_timeout_secs", 15)
	v.SetDefault("retrieval.queries_per_sec", 5)
	v.SetDefault("retrieval.retries", 2)
	v.SetDefault("extraction.timeout_secs", 120)
	v.SetDefault("extraction.max_context_chars", 60000)
	v.SetDefault("extraction.max_output_tokens", 8192)
	v.SetDefault("extraction.temperature", 0.1)
	v.SetDefault("pipeline.request_timeout_secs", 180)
	v.SetDefault("pipeline.completeness_threshold", 50)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
