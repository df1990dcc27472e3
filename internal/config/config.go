// Package config loads runtime settings from defaults, an optional docsim.yaml file,
// DOCSIM_* environment variables and bound command-line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/baditaflorin/go_document_similarity/internal/core/domain"
)

// Keys understood by Load.
const (
	KeyDocumentsDir   = "documents_dir"
	KeyAlgorithm      = "algorithm"
	KeyCountingMode   = "counting_mode"
	KeyNormalizer     = "normalizer"
	KeyThreshold      = "threshold"
	KeyKGramSize      = "kgram.size"
	KeyKGramNormalize = "kgram.normalize"
	KeyLogJSON        = "log.json"
	KeyLogFile        = "log.file"
	KeyLogVerbose     = "log.verbose"
	KeyServerPort     = "server.port"
	KeyReadTimeout    = "server.read_timeout"
	KeyWriteTimeout   = "server.write_timeout"
	KeyMaxRequestSize = "server.max_request_size"
	KeyConcurrency    = "server.concurrency"
	KeyWarmUp         = "server.warm_up"
)

// Config is the resolved runtime configuration.
type Config struct {
	DocumentsDir string
	Algorithm    domain.Algorithm
	CountingMode domain.CountingMode
	Normalizer   string
	Threshold    float64
	KGram        KGramConfig
	Log          LogConfig
	Server       ServerConfig
}

// KGramConfig configures the k-gram metric.
type KGramConfig struct {
	Size      int
	Normalize bool
}

// LogConfig configures logging.
type LogConfig struct {
	JSON    bool
	File    string
	Verbose bool
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxRequestSize int
	Concurrency    int
	WarmUp         bool
}

// New returns a viper instance carrying the defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyDocumentsDir, "test")
	v.SetDefault(KeyAlgorithm, string(domain.KMP))
	v.SetDefault(KeyCountingMode, string(domain.SubstringCounting))
	v.SetDefault(KeyNormalizer, "default")
	v.SetDefault(KeyThreshold, 70.0)
	v.SetDefault(KeyKGramSize, 5)
	v.SetDefault(KeyKGramNormalize, false)
	v.SetDefault(KeyLogJSON, false)
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogVerbose, false)
	v.SetDefault(KeyServerPort, 8080)
	v.SetDefault(KeyReadTimeout, 30*time.Second)
	v.SetDefault(KeyWriteTimeout, 30*time.Second)
	v.SetDefault(KeyMaxRequestSize, 10*1024*1024)
	v.SetDefault(KeyConcurrency, 0)
	v.SetDefault(KeyWarmUp, true)

	v.SetEnvPrefix("DOCSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile merges a config file into v. An empty path searches for docsim.yaml in the
// working directory and $HOME/.config/docsim; a missing search result is not an error.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName("docsim")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/docsim")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Load resolves and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		DocumentsDir: v.GetString(KeyDocumentsDir),
		Normalizer:   v.GetString(KeyNormalizer),
		Threshold:    v.GetFloat64(KeyThreshold),
		KGram: KGramConfig{
			Size:      v.GetInt(KeyKGramSize),
			Normalize: v.GetBool(KeyKGramNormalize),
		},
		Log: LogConfig{
			JSON:    v.GetBool(KeyLogJSON),
			File:    v.GetString(KeyLogFile),
			Verbose: v.GetBool(KeyLogVerbose),
		},
		Server: ServerConfig{
			Port:           v.GetInt(KeyServerPort),
			ReadTimeout:    v.GetDuration(KeyReadTimeout),
			WriteTimeout:   v.GetDuration(KeyWriteTimeout),
			MaxRequestSize: v.GetInt(KeyMaxRequestSize),
			Concurrency:    v.GetInt(KeyConcurrency),
			WarmUp:         v.GetBool(KeyWarmUp),
		},
	}

	algorithm, err := domain.ParseAlgorithm(v.GetString(KeyAlgorithm))
	if err != nil {
		return Config{}, err
	}
	cfg.Algorithm = algorithm

	mode, err := domain.ParseCountingMode(v.GetString(KeyCountingMode))
	if err != nil {
		return Config{}, err
	}
	cfg.CountingMode = mode

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 100 {
		return domain.ErrInvalidThreshold
	}
	if c.KGram.Size < 1 {
		return domain.ErrInvalidKGramSize
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("server port must be between 0 and 65535")
	}
	if c.Server.MaxRequestSize <= 0 {
		return errors.New("max request size must be greater than 0")
	}
	if c.Server.Concurrency < 0 {
		return errors.New("concurrency must not be negative")
	}
	return nil
}
