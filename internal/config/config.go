package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const DefaultIndexURL = "https://terebess.hu/english/tao/_index.html"

type Config struct {
	IndexURL  string `yaml:"index_url"`
	Output    string `yaml:"output"`
	ManualDir string `yaml:"manual_dir"`

	SourceWorkers  int `yaml:"source_workers"`
	TimeoutSeconds int `yaml:"timeout_seconds"`
	Retries        int `yaml:"retries"`

	UserAgent        string `yaml:"user_agent"`
	CloudflareBypass bool   `yaml:"cloudflare_bypass"`

	DuckDB  bool `yaml:"duckdb"`
	KeepRaw bool `yaml:"keep_raw"`
	Debug   bool `yaml:"debug"`
}

type Options struct {
	IgnoreConfig bool
	Debug        bool

	IndexURL  string
	Output    string
	ManualDir string

	SourceWorkers  int
	TimeoutSeconds int
	Retries        int

	UserAgent        string
	CloudflareBypass bool

	DuckDB  bool
	KeepRaw bool
}

func DefaultConfig() *Config {
	return &Config{
		IndexURL:         DefaultIndexURL,
		Output:           "./corpus",
		ManualDir:        "",
		SourceWorkers:    2,
		TimeoutSeconds:   30,
		Retries:          3,
		UserAgent:        "",
		CloudflareBypass: false,
		DuckDB:           false,
		KeepRaw:          false,
		Debug:            false,
	}
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	return &c, nil
}

func LoadMerged(opts Options) (*Config, string, error) {
	if opts.IgnoreConfig {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(ignored config)", nil
	}

	activePath, err := ActiveConfigPath()
	if err == ErrNoConfig || activePath == "" {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(default config in memory)\nRun `taoscrape config init` to create an actual config\n", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadYAML(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	return cfg, activePath, nil
}

func mergeConfig(c *Config, o Options) {
	if o.IndexURL != "" {
		c.IndexURL = o.IndexURL
	}
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.ManualDir != "" {
		c.ManualDir = o.ManualDir
	}
	if o.SourceWorkers != 0 {
		c.SourceWorkers = o.SourceWorkers
	}
	if o.TimeoutSeconds != 0 {
		c.TimeoutSeconds = o.TimeoutSeconds
	}
	if o.Retries != 0 {
		c.Retries = o.Retries
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.CloudflareBypass {
		c.CloudflareBypass = true
	}
	if o.DuckDB {
		c.DuckDB = true
	}
	if o.KeepRaw {
		c.KeepRaw = true
	}
	if o.Debug {
		c.Debug = true
	}
}

func normalizeDefaults(c *Config) {
	if c.IndexURL == "" {
		c.IndexURL = DefaultIndexURL
	}
	if c.Output == "" {
		c.Output = "./corpus"
	}
	if c.SourceWorkers == 0 {
		c.SourceWorkers = 2
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = 30
	}
	if c.Retries == 0 {
		c.Retries = 3
	}
}

func (c *Config) Print() {
	fmt.Printf(" -index_url: %s\n", c.IndexURL)
	fmt.Printf(" -output: %s\n", c.Output)
	if c.ManualDir != "" {
		fmt.Printf(" -manual_dir: %s\n", c.ManualDir)
	}
	fmt.Printf(" -source_workers: %d\n", c.SourceWorkers)
	fmt.Printf(" -timeout_seconds: %d\n", c.TimeoutSeconds)
	fmt.Printf(" -retries: %d\n", c.Retries)
	if c.UserAgent != "" {
		fmt.Printf(" -user_agent: %s\n", c.UserAgent)
	}
	if c.CloudflareBypass {
		fmt.Printf(" -cloudflare_bypass: %t\n", c.CloudflareBypass)
	}
	if c.DuckDB {
		fmt.Printf(" -duckdb: %t\n", c.DuckDB)
	}
	if c.KeepRaw {
		fmt.Printf(" -keep_raw: %t\n", c.KeepRaw)
	}
	if c.Debug {
		fmt.Printf(" -debug: %t\n", c.Debug)
	}
}
