package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/cli/go-gh/v2/pkg/auth"
)

type Config struct {
	GitHubToken         string  `json:"github_token,omitempty"`
	GitHubBaseURL       string  `json:"github_base_url,omitempty"`
	Language            string  `json:"language"`
	Threshold           float64 `json:"threshold"`
	TitleIssueWords     int     `json:"title_issue_words"`
	Concurrency         int     `json:"concurrency"`
	RequestTimeout      int     `json:"request_timeout"`
	ScrapeRatePerSecond float64 `json:"scrape_rate_per_second"`
	CacheTTLHours       int     `json:"cache_ttl_hours"`
	PathFile            string  `json:"path_file"`
}

const (
	LangEN = "en"
	LangES = "es"

	defaultLang                = LangEN
	defaultThreshold           = 0.5
	defaultTitleIssueWords     = 3
	defaultConcurrency         = 4
	defaultRequestTimeout      = 30
	defaultScrapeRatePerSecond = 2
	defaultCacheTTLHours       = 24

	configDirName  = ".prdupe"
	configFileName = "config.json"
	homeEnv        = "PRDUPE_HOME"
)

// Token sources reported by ResolveToken.
const (
	TokenSourceEnv    = "env"
	TokenSourceConfig = "config"
	TokenSourceGH     = "gh"
	TokenSourceNone   = "none"
)

// ghTokenForHost reads the credential stored by the GitHub CLI.
var ghTokenForHost = auth.TokenForHost

// HomeDir returns PRDUPE_HOME when set and the user's home directory otherwise.
func HomeDir() (string, error) {
	if dir := os.Getenv(homeEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not resolve home directory: %w", err)
	}
	if home == "" {
		return "", errors.New("could not resolve home directory")
	}
	return home, nil
}

// CacheDir is where fetched pull request metadata is cached.
func CacheDir(home string) string {
	return filepath.Join(home, configDirName, "cache")
}

// LoadConfig reads the config file from path, which is either a .json file or
// a home directory holding .prdupe/config.json. A missing file is created
// with defaults. Fields absent from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	var configPath string

	if filepath.Ext(path) == ".json" {
		configPath = path
	} else {
		configDir := filepath.Join(path, configDirName)
		configPath = filepath.Join(configDir, configFileName)

		if _, err := os.Stat(configDir); os.IsNotExist(err) {
			if err := os.MkdirAll(configDir, 0755); err != nil {
				return nil, fmt.Errorf("error creating config directory: %w", err)
			}
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	} else if err != nil {
		return nil, fmt.Errorf("error checking config file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config := defaultConfig(configPath)
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error decoding config JSON: %w", err)
	}
	config.PathFile = configPath

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("loaded config is invalid: %w", err)
	}

	return config, nil
}

func defaultConfig(path string) *Config {
	return &Config{
		Language:            defaultLang,
		Threshold:           defaultThreshold,
		TitleIssueWords:     defaultTitleIssueWords,
		Concurrency:         defaultConcurrency,
		RequestTimeout:      defaultRequestTimeout,
		ScrapeRatePerSecond: defaultScrapeRatePerSecond,
		CacheTTLHours:       defaultCacheTTLHours,
		PathFile:            path,
	}
}

func createDefaultConfig(path string) (*Config, error) {
	config := defaultConfig(path)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return nil, fmt.Errorf("error saving default config: %w", err)
	}

	return config, nil
}

func SaveConfig(config *Config) error {
	if err := validateConfig(config); err != nil {
		return fmt.Errorf("config to save is invalid: %w", err)
	}

	if config.PathFile == "" {
		return errors.New("config file path is not set")
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	if err := os.WriteFile(config.PathFile, data, 0600); err != nil {
		return fmt.Errorf("error saving config: %w", err)
	}

	return nil
}

func (c *Config) RequestTimeoutDuration() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLHours) * time.Hour
}

// WebURL is the browser-facing base URL matching GitHubBaseURL.
func (c *Config) WebURL() string {
	if c.GitHubBaseURL == "" {
		return "https://github.com"
	}
	u, err := url.Parse(c.GitHubBaseURL)
	if err != nil || u.Host == "" {
		return "https://github.com"
	}
	return u.Scheme + "://" + u.Host
}

// ResolveToken picks the GitHub token from GITHUB_TOKEN, GH_TOKEN, the config
// file or the GitHub CLI, in that order. An empty token means unauthenticated
// access.
func ResolveToken(c *Config) (token string, source string) {
	for _, env := range []string{"GITHUB_TOKEN", "GH_TOKEN"} {
		if v := os.Getenv(env); v != "" {
			return v, TokenSourceEnv
		}
	}
	if c.GitHubToken != "" {
		return c.GitHubToken, TokenSourceConfig
	}

	host := "github.com"
	if u, err := url.Parse(c.GitHubBaseURL); err == nil && u.Host != "" {
		host = u.Host
	}
	if v, _ := ghTokenForHost(host); v != "" {
		return v, TokenSourceGH
	}
	return "", TokenSourceNone
}

func validateConfig(config *Config) error {
	switch config.Language {
	case LangEN, LangES:
	case "":
		return errors.New("language cannot be empty")
	default:
		return fmt.Errorf("unsupported language: %s", config.Language)
	}
	if config.Threshold < 0 || config.Threshold > 1 {
		return fmt.Errorf("threshold must be between 0 and 1, got %v", config.Threshold)
	}
	if config.TitleIssueWords <= 0 {
		return errors.New("title_issue_words must be greater than 0")
	}
	if config.Concurrency <= 0 {
		return errors.New("concurrency must be greater than 0")
	}
	if config.RequestTimeout <= 0 {
		return errors.New("request_timeout must be greater than 0")
	}
	if config.ScrapeRatePerSecond <= 0 {
		return errors.New("scrape_rate_per_second must be greater than 0")
	}
	if config.CacheTTLHours < 0 {
		return errors.New("cache_ttl_hours cannot be negative")
	}
	if config.GitHubBaseURL != "" {
		u, err := url.Parse(config.GitHubBaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid github_base_url: %s", config.GitHubBaseURL)
		}
	}
	return nil
}
