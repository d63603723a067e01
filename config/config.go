// Package config loads docmind settings from defaults, an optional YAML
// file and the environment, in that order.
//
// A .env file in the working directory (or the file named by ENV_FILE) is
// loaded before environment overrides are applied. Fields carrying an
// `env` tag are overridden when that variable is set and non-empty.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"time"

	"github.com/gaurav-prasanna/docmind/core/llm"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the complete docmind configuration.
type Config struct {
	Log       LogConfig       `yaml:"log"`
	Fetch     FetchConfig     `yaml:"fetch"`
	Server    ServerConfig    `yaml:"server"`
	Assistant AssistantConfig `yaml:"assistant"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"DOCMIND_LOG_LEVEL"`
	JSON  bool   `yaml:"json" env:"DOCMIND_LOG_JSON"`
}

type FetchConfig struct {
	Timeout   time.Duration `yaml:"timeout" env:"DOCMIND_FETCH_TIMEOUT"`
	UserAgent string        `yaml:"user_agent" env:"DOCMIND_USER_AGENT"`
	MaxBytes  int64         `yaml:"max_bytes" env:"DOCMIND_FETCH_MAX_BYTES"`
	Markdown  bool          `yaml:"markdown" env:"DOCMIND_MARKDOWN"`
}

type ServerConfig struct {
	Addr       string        `yaml:"addr" env:"DOCMIND_ADDR"`
	SessionTTL time.Duration `yaml:"session_ttl" env:"DOCMIND_SESSION_TTL"`
}

type AssistantConfig struct {
	Groq       EndpointConfig `yaml:"groq"`
	Gemini     EndpointConfig `yaml:"gemini"`
	Embeddings EndpointConfig `yaml:"embeddings"`
}

// EndpointConfig is one OpenAI-compatible backend. The env tags differ per
// backend, so they are applied by applyEndpointEnv instead of struct tags.
type EndpointConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// Endpoint converts to the llm package's form.
func (e EndpointConfig) Endpoint() llm.Endpoint {
	return llm.Endpoint{BaseURL: e.BaseURL, APIKey: e.APIKey, Model: e.Model}
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Fetch: FetchConfig{
			Timeout:  30 * time.Second,
			MaxBytes: 10 << 20,
		},
		Server: ServerConfig{
			Addr:       ":8080",
			SessionTTL: time.Hour,
		},
		Assistant: AssistantConfig{
			Groq: EndpointConfig{
				BaseURL: "https://api.groq.com/openai/v1",
				Model:   "llama-3.3-70b-versatile",
			},
			Gemini: EndpointConfig{
				BaseURL: "https://generativelanguage.googleapis.com/v1beta/openai/",
				Model:   "gemini-2.0-flash-exp",
			},
			Embeddings: EndpointConfig{
				BaseURL: "http://localhost:11434/v1",
				APIKey:  "ollama",
			},
		},
	}
}

// Load builds a Config. path may be empty, in which case only defaults and
// the environment apply. A named file that does not exist is an error.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, fmt.Errorf("load environment files: %w", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvToStruct(reflect.ValueOf(cfg).Elem())
	applyEndpointEnv(&cfg.Assistant.Groq, "GROQ_API_KEY", "DOCMIND_GROQ_BASE_URL", "DOCMIND_GROQ_MODEL")
	applyEndpointEnv(&cfg.Assistant.Gemini, "GEMINI_API_KEY", "DOCMIND_GEMINI_BASE_URL", "DOCMIND_GEMINI_MODEL")
	applyEndpointEnv(&cfg.Assistant.Embeddings, "OPENAI_API_KEY", "OPENAI_BASE_URL", "DOCMIND_EMBEDDING_MODEL")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadEnvFiles loads ENV_FILE if set, otherwise .env when present.
// Variables already in the environment win.
func loadEnvFiles() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func applyEndpointEnv(e *EndpointConfig, keyVar, urlVar, modelVar string) {
	if v := os.Getenv(keyVar); v != "" {
		e.APIKey = v
	}
	if v := os.Getenv(urlVar); v != "" {
		e.BaseURL = v
	}
	if v := os.Getenv(modelVar); v != "" {
		e.Model = v
	}
}

func applyEnvToStruct(v reflect.Value) {
	t := v.Type()
	for i := range v.NumField() {
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}
		if field.Kind() == reflect.Struct {
			applyEnvToStruct(field)
			continue
		}

		name := t.Field(i).Tag.Get("env")
		if name == "" {
			continue
		}
		if val := os.Getenv(name); val != "" {
			setFieldFromString(field, val)
		}
	}
}

// setFieldFromString ignores values that do not parse, keeping the
// previous setting.
func setFieldFromString(field reflect.Value, val string) {
	switch field.Kind() {
	case reflect.String:
		field.SetString(val)
	case reflect.Bool:
		if b, err := strconv.ParseBool(val); err == nil {
			field.SetBool(b)
		}
	case reflect.Int, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			if d, err := time.ParseDuration(val); err == nil {
				field.SetInt(int64(d))
			}
			return
		}
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			field.SetInt(n)
		}
	}
}

// ValidationError names the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks values that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Field: "log.level", Message: "must be one of: debug, info, warn, error"}
	}
	if c.Fetch.Timeout <= 0 {
		return &ValidationError{Field: "fetch.timeout", Message: "must be positive"}
	}
	if c.Fetch.MaxBytes <= 0 {
		return &ValidationError{Field: "fetch.max_bytes", Message: "must be positive"}
	}
	if c.Server.Addr == "" {
		return &ValidationError{Field: "server.addr", Message: "is required"}
	}
	return nil
}
