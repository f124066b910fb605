package gosoup

import (
	"bytes"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// Config mirrors the functional options for callers that load settings from a
// YAML file instead of wiring them in code.
type Config struct {
	Parser             Parser            `yaml:"parser"`
	Timeout            time.Duration     `yaml:"timeout"`
	UserAgent          string            `yaml:"userAgent"`
	Headers            map[string]string `yaml:"headers"`
	MaxRedirects       int               `yaml:"maxRedirects"`
	InsecureSkipVerify bool              `yaml:"insecureSkipVerify"`
	Concurrency        int               `yaml:"concurrency"`
}

// DefaultConfig returns the same defaults the functional options start from.
func DefaultConfig() Config {
	return Config{
		Parser:      ParserNetHTML,
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		Concurrency: DefaultConcurrency,
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig. Unknown keys are
// rejected so typos in config files fail loudly.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Options converts the config into the option list the entry points take.
func (c Config) Options() []Option {
	return []Option{
		WithParser(c.Parser),
		WithTimeout(c.Timeout),
		WithUserAgent(c.UserAgent),
		WithHeaders(c.Headers),
		WithMaxRedirects(c.MaxRedirects),
		WithInsecureSkipVerify(c.InsecureSkipVerify),
		WithConcurrency(c.Concurrency),
	}
}
