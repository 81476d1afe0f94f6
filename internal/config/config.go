package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/naka-gawa/issue-dashboard/internal/domain"
)

// Environment variables read by applyEnvOverrides. GITHUB_REPOSITORY,
// GITHUB_API_URL and GITHUB_GRAPHQL_URL are set by GitHub Actions runners.
const (
	EnvRepository = "GITHUB_REPOSITORY"
	EnvAPIURL     = "GITHUB_API_URL"
	EnvGraphQLURL = "GITHUB_GRAPHQL_URL"
	EnvOutputPath = "ISSUE_DASHBOARD_OUTPUT"
)

// DefaultPaths lists the config files searched in the working directory
// when no explicit path is given.
var DefaultPaths = []string{
	".issue-dashboard.yaml",
	".issue-dashboard.yml",
	".issue-dashboard.toml",
}

// Load builds a Config from defaults, a config file and the environment.
// If configPath is empty the DefaultPaths are tried in order and a missing
// file is not an error.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		for _, path := range DefaultPaths {
			if _, err := os.Stat(path); err != nil {
				continue
			}
			if err := loadFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
			}
			break
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml", "":
		err = yaml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("unsupported config file extension %q", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if cfg.GitHub.TokenEnv == "" {
		cfg.GitHub.TokenEnv = DefaultTokenEnv
	}
	if token := os.Getenv(cfg.GitHub.TokenEnv); token != "" {
		cfg.GitHub.Token = token
	}
	if repo := os.Getenv(EnvRepository); repo != "" {
		cfg.Repository = repo
	}
	if endpoint := os.Getenv(EnvAPIURL); endpoint != "" {
		cfg.GitHub.APIEndpoint = endpoint
	}
	if endpoint := os.Getenv(EnvGraphQLURL); endpoint != "" {
		cfg.GitHub.GraphQLEndpoint = endpoint
	}
	if path := os.Getenv(EnvOutputPath); path != "" {
		cfg.Output.Path = path
	}
}

// ValidateToken checks that a credential is present.
func (c *Config) ValidateToken() error {
	if c.GitHub.Token == "" {
		return fmt.Errorf("%w: GitHub token not found. Set %s or use --token flag",
			domain.ErrMissingConfiguration, c.GitHub.TokenEnv)
	}
	return nil
}

// Validate checks that the credential and repository are present and
// returns the parsed repository. Each missing value gets its own message.
func (c *Config) Validate() (domain.Repository, error) {
	if err := c.ValidateToken(); err != nil {
		return domain.Repository{}, err
	}
	if strings.TrimSpace(c.Repository) == "" {
		return domain.Repository{}, fmt.Errorf("%w: repository not set. Set %s or use --repo flag",
			domain.ErrMissingConfiguration, EnvRepository)
	}
	repo, err := domain.ParseRepository(c.Repository)
	if err != nil {
		return domain.Repository{}, err
	}
	if _, err := c.GitHub.HTTPTimeout(); err != nil {
		return domain.Repository{}, fmt.Errorf("%w: invalid github.timeout %q: %w",
			domain.ErrMissingConfiguration, c.GitHub.Timeout, err)
	}
	if c.Output.Path == "" {
		return domain.Repository{}, fmt.Errorf("%w: output path is empty", domain.ErrMissingConfiguration)
	}
	return repo, nil
}
