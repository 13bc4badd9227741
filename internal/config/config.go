package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "RECORDER"

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Google   GoogleConfig   `mapstructure:"google"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type ServerConfig struct {
	Host            string          `mapstructure:"host"`
	Port            int             `mapstructure:"port"`
	ReadTimeout     time.Duration   `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration   `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration   `mapstructure:"shutdown_timeout"`
	MaxUploadBytes  int64           `mapstructure:"max_upload_bytes"`
	RateLimit       RateLimitConfig `mapstructure:"rate_limit"`
}

type RateLimitConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Every   time.Duration `mapstructure:"every"`
	Burst   int           `mapstructure:"burst"`
	Expiry  time.Duration `mapstructure:"expiry"`
}

type StorageConfig struct {
	UploadDir    string `mapstructure:"upload_dir"`
	DatabasePath string `mapstructure:"database_path"`
}

type AnalysisConfig struct {
	Backend           string        `mapstructure:"backend"`
	TextToSpeech      bool          `mapstructure:"text_to_speech"`
	TranscribeTimeout time.Duration `mapstructure:"transcribe_timeout"`
	SentimentTimeout  time.Duration `mapstructure:"sentiment_timeout"`
	SynthesizeTimeout time.Duration `mapstructure:"synthesize_timeout"`
	GenerateTimeout   time.Duration `mapstructure:"generate_timeout"`
}

type GoogleConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// AuthConfig enables bearer tokens on the upload routes when both the JWT
// secret and the bcrypt hash of the access key are set.
type AuthConfig struct {
	JWTSecret     string        `mapstructure:"jwt_secret"`
	AccessKeyHash string        `mapstructure:"access_key_hash"`
	TokenTTL      time.Duration `mapstructure:"token_ttl"`
}

func (a AuthConfig) Enabled() bool {
	return a.JWTSecret != "" && a.AccessKeyHash != ""
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.read_timeout", 30*time.Second)
	// Uploads block for the whole analysis, so the write timeout has to cover
	// the slowest stage.
	v.SetDefault("server.write_timeout", 5*time.Minute)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.max_upload_bytes", 64<<20)
	v.SetDefault("server.rate_limit.enabled", true)
	v.SetDefault("server.rate_limit.every", 2*time.Second)
	v.SetDefault("server.rate_limit.burst", 5)
	v.SetDefault("server.rate_limit.expiry", time.Hour)

	v.SetDefault("storage.upload_dir", "uploads")
	v.SetDefault("storage.database_path", "data/reports.db")

	v.SetDefault("analysis.backend", "gemini")
	v.SetDefault("analysis.text_to_speech", true)
	v.SetDefault("analysis.transcribe_timeout", 90*time.Second)
	v.SetDefault("analysis.sentiment_timeout", 30*time.Second)
	v.SetDefault("analysis.synthesize_timeout", 30*time.Second)
	v.SetDefault("analysis.generate_timeout", 2*time.Minute)

	v.SetDefault("google.credentials_file", "")
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("openai.api_key", "")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.access_key_hash", "")
	v.SetDefault("auth.token_ttl", 24*time.Hour)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.json", false)
}

// Load reads defaults, then configFile (optional), then RECORDER_* variables.
// A .env file in the working directory is loaded into the environment first.
// The conventional GEMINI_API_KEY, OPENAI_API_KEY and
// GOOGLE_APPLICATION_CREDENTIALS variables fill keys left empty.
func Load(configFile string) (*Config, error) {
	_ = godotenv.Load()
	return load(viper.New(), configFile)
}

func load(v *viper.Viper, configFile string) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	applyConventionalEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func applyConventionalEnv(cfg *Config) {
	if cfg.Gemini.APIKey == "" {
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.OpenAI.APIKey == "" {
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.Google.CredentialsFile == "" {
		cfg.Google.CredentialsFile = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	}
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Storage.UploadDir == "" {
		return errors.New("storage.upload_dir must be set")
	}

	switch c.Analysis.Backend {
	case "gemini":
		if c.Gemini.APIKey == "" {
			return errors.New("gemini backend requires GEMINI_API_KEY or gemini.api_key")
		}
	case "whisper":
		if c.OpenAI.APIKey == "" {
			return errors.New("whisper backend requires OPENAI_API_KEY or openai.api_key")
		}
	case "google":
	default:
		return fmt.Errorf("unknown analysis backend %q (want gemini, google or whisper)", c.Analysis.Backend)
	}

	timeouts := map[string]time.Duration{
		"analysis.transcribe_timeout": c.Analysis.TranscribeTimeout,
		"analysis.sentiment_timeout":  c.Analysis.SentimentTimeout,
		"analysis.synthesize_timeout": c.Analysis.SynthesizeTimeout,
		"analysis.generate_timeout":   c.Analysis.GenerateTimeout,
	}
	for key, d := range timeouts {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", key, d)
		}
	}

	if (c.Auth.JWTSecret == "") != (c.Auth.AccessKeyHash == "") {
		return errors.New("auth.jwt_secret and auth.access_key_hash must be set together")
	}
	if c.Server.RateLimit.Enabled && (c.Server.RateLimit.Every <= 0 || c.Server.RateLimit.Burst <= 0) {
		return errors.New("server.rate_limit.every and server.rate_limit.burst must be positive")
	}
	return nil
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
