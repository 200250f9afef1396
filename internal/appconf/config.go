package appconf

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the server and the CLI commands.
type Config struct {
	Port      int
	Env       Environment
	ApiKeys   []string
	RateLimit int // requests per second per API key
	LogLevel  string
}

// FileConfig is the on-disk YAML form of the configuration. Every field
// is optional; command-line flags take precedence over it.
type FileConfig struct {
	Server ServerConfig `yaml:"server"`
	Feed   FeedConfig   `yaml:"feed"`
}

type ServerConfig struct {
	Port      int      `yaml:"port" validate:"omitempty,min=1,max=65535"`
	Env       string   `yaml:"env" validate:"omitempty,oneof=development test production"`
	ApiKeys   []string `yaml:"api_keys" validate:"dive,required"`
	RateLimit int      `yaml:"rate_limit" validate:"omitempty,min=1"`
	LogLevel  string   `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

type FeedConfig struct {
	Source         string        `yaml:"source"`
	DataPath       string        `yaml:"data_path"`
	ReloadInterval time.Duration `yaml:"reload_interval"`
	S3Region       string        `yaml:"s3_region"`
	S3Endpoint     string        `yaml:"s3_endpoint" validate:"omitempty,url"`
}

// LoadFile reads and validates a YAML configuration file.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML configuration bytes.
func Parse(data []byte) (*FileConfig, error) {
	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Apply copies the non-zero server settings onto cfg, skipping any setting
// whose flag name appears in explicit.
func (f *FileConfig) Apply(cfg *Config, explicit map[string]bool) {
	s := f.Server
	if s.Port != 0 && !explicit["port"] {
		cfg.Port = s.Port
	}
	if s.Env != "" && !explicit["env"] {
		cfg.Env = EnvFlagToEnvironment(s.Env)
	}
	if len(s.ApiKeys) > 0 && !explicit["api-keys"] {
		cfg.ApiKeys = append([]string(nil), s.ApiKeys...)
	}
	if s.RateLimit != 0 && !explicit["rate-limit"] {
		cfg.RateLimit = s.RateLimit
	}
	if s.LogLevel != "" && !explicit["log-level"] {
		cfg.LogLevel = s.LogLevel
	}
}

// SplitList splits a comma separated flag value, dropping blanks.
func SplitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
