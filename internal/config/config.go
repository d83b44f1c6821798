// Package config loads studybuddy's configuration from defaults, an
// optional YAML file and the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/logger"
	"github.com/abhisek/studybuddy/internal/telemetry"
)

// Config is the full application configuration.
type Config struct {
	LLM     llm.Config       `yaml:"llm"`
	Cache   llm.CacheConfig  `yaml:"cache"`
	Tracing telemetry.Config `yaml:"tracing"`
	Speech  SpeechConfig     `yaml:"speech"`
	Export  ExportConfig     `yaml:"export"`
	Store   StoreConfig      `yaml:"store"`
	Log     LogConfig        `yaml:"log"`
	UI      UIConfig         `yaml:"ui"`
	Study   StudyConfig      `yaml:"study"`
}

// SpeechConfig configures read-aloud and voice input.
type SpeechConfig struct {
	Enabled bool `yaml:"enabled"`

	// TTSCommand reads text from stdin and speaks it, e.g. "espeak-ng -v tr".
	TTSCommand string `yaml:"tts_command"`

	// RecordCommand writes 16-bit mono PCM to stdout until interrupted.
	RecordCommand string `yaml:"record_command"`
	SampleRate    int    `yaml:"sample_rate"`

	// STT enables Google Cloud Speech-to-Text for voice questions.
	STT bool `yaml:"stt"`
}

// ExportConfig configures note export.
type ExportConfig struct {
	Dir string `yaml:"dir"`

	// Bucket, when set, uploads every export to Cloud Storage.
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
}

// StoreConfig configures the local database.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// LogConfig configures the log file.
type LogConfig struct {
	Mode string `yaml:"mode"` // "dev" or "prod"
	Path string `yaml:"path"`
}

// UIConfig configures the terminal UI.
type UIConfig struct {
	Language string `yaml:"language"` // "en" or "tr"
	Theme    string `yaml:"theme"`    // "dark" or "light"
}

// StudyConfig tunes the study session.
type StudyConfig struct {
	Images        bool `yaml:"images"`
	QuizQuestions int  `yaml:"quiz_questions"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		LLM:     llm.DefaultConfig(),
		Cache:   llm.DefaultCacheConfig(),
		Tracing: telemetry.Config{},
		Speech: SpeechConfig{
			Enabled:       true,
			TTSCommand:    "espeak-ng",
			RecordCommand: "arecord -q -f S16_LE -r 16000 -c 1 -t raw",
			SampleRate:    16000,
		},
		Export: ExportConfig{
			Dir:    ".",
			Prefix: "notes/",
		},
		Log: LogConfig{
			Mode: "dev",
			Path: logger.DefaultPath(),
		},
		UI: UIConfig{
			Language: "en",
			Theme:    "dark",
		},
		Study: StudyConfig{
			Images:        true,
			QuizQuestions: 10,
		},
	}
}

// Load builds the configuration. path names an explicit YAML file; when
// empty, STUDYBUDDY_CONFIG and then the default location are tried, and a
// missing default file is not an error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = getEnv("STUDYBUDDY_CONFIG", "")
		explicit = path != ""
	}
	if !explicit {
		path = DefaultPath()
	}

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return Config{}, err
			}
		}
	}

	cfg.ApplyEnv()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from STUDYBUDDY_* environment variables.
func (c *Config) ApplyEnv() {
	c.LLM.ApplyEnv()
	c.LLM.Timeout = getEnvDuration("STUDYBUDDY_LLM_TIMEOUT", c.LLM.Timeout)
	c.LLM.Retry.MaxAttempts = getEnvInt("STUDYBUDDY_LLM_MAX_ATTEMPTS", c.LLM.Retry.MaxAttempts)

	c.Cache.URL = getEnv("STUDYBUDDY_REDIS_URL", c.Cache.URL)
	c.Cache.TTL = getEnvDuration("STUDYBUDDY_CACHE_TTL", c.Cache.TTL)

	c.Tracing.Enabled = getEnvBool("STUDYBUDDY_TRACING", c.Tracing.Enabled)
	c.Tracing.Path = getEnv("STUDYBUDDY_TRACING_PATH", c.Tracing.Path)

	c.Speech.Enabled = getEnvBool("STUDYBUDDY_SPEECH", c.Speech.Enabled)
	c.Speech.TTSCommand = getEnv("STUDYBUDDY_TTS_COMMAND", c.Speech.TTSCommand)
	c.Speech.RecordCommand = getEnv("STUDYBUDDY_RECORD_COMMAND", c.Speech.RecordCommand)
	c.Speech.STT = getEnvBool("STUDYBUDDY_STT", c.Speech.STT)

	c.Export.Dir = getEnv("STUDYBUDDY_EXPORT_DIR", c.Export.Dir)
	c.Export.Bucket = getEnv("STUDYBUDDY_EXPORT_BUCKET", c.Export.Bucket)

	c.Store.Path = getEnv("STUDYBUDDY_DB", c.Store.Path)

	c.Log.Mode = getEnv("STUDYBUDDY_LOG_MODE", c.Log.Mode)
	c.Log.Path = getEnv("STUDYBUDDY_LOG_PATH", c.Log.Path)

	c.UI.Language = getEnv("STUDYBUDDY_LANG", c.UI.Language)
	c.UI.Theme = getEnv("STUDYBUDDY_THEME", c.UI.Theme)

	c.Study.Images = getEnvBool("STUDYBUDDY_IMAGES", c.Study.Images)
	c.Study.QuizQuestions = getEnvInt("STUDYBUDDY_QUIZ_QUESTIONS", c.Study.QuizQuestions)
}

// Validate checks the provider key and the enumerated settings.
func (c Config) Validate() error {
	if err := c.LLM.Validate(); err != nil {
		return err
	}
	switch strings.ToLower(c.UI.Language) {
	case "en", "tr":
	default:
		return fmt.Errorf("ui.language must be en or tr, got %q", c.UI.Language)
	}
	switch c.UI.Theme {
	case "dark", "light":
	default:
		return fmt.Errorf("ui.theme must be dark or light, got %q", c.UI.Theme)
	}
	if c.Study.QuizQuestions < 1 {
		return fmt.Errorf("study.quiz_questions must be at least 1")
	}
	if c.LLM.Timeout < 0 {
		return fmt.Errorf("llm.timeout must not be negative")
	}
	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/studybuddy/config.yaml, or the
// ~/.config equivalent.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "studybuddy", "config.yaml")
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
