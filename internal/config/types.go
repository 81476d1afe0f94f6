// Package config defines the explicit configuration passed into the
// gateway, usecase and report layers, and loads it from files and the
// environment.
package config

import "time"

// Default values.
const (
	DefaultAPIEndpoint     = "https://api.github.com/"
	DefaultGraphQLEndpoint = "https://api.github.com/graphql"
	DefaultAPIVersion      = "2022-11-28"
	DefaultTokenEnv        = "GITHUB_TOKEN"
	DefaultOutputPath      = "docs/dashboard-data.json"
)

// Config is the complete configuration of one run.
type Config struct {
	GitHub     GitHubConfig `yaml:"github" toml:"github"`
	Repository string       `yaml:"repository" toml:"repository"`
	Output     OutputConfig `yaml:"output" toml:"output"`
	Report     ReportConfig `yaml:"report" toml:"report"`
}

// GitHubConfig configures access to the GitHub APIs.
type GitHubConfig struct {
	// Token is never read from a config file; it comes from TokenEnv or a flag.
	Token           string `yaml:"-" toml:"-"`
	TokenEnv        string `yaml:"token_env" toml:"token_env"`
	APIEndpoint     string `yaml:"api_endpoint" toml:"api_endpoint"`
	GraphQLEndpoint string `yaml:"graphql_endpoint" toml:"graphql_endpoint"`
	APIVersion      string `yaml:"api_version" toml:"api_version"`
	// Timeout is a Go duration string. Empty means no client timeout.
	Timeout       string `yaml:"timeout" toml:"timeout"`
	WaitRateLimit bool   `yaml:"wait_rate_limit" toml:"wait_rate_limit"`
}

// OutputConfig configures where the report is written.
type OutputConfig struct {
	Path string `yaml:"path" toml:"path"`
}

// ReportConfig toggles optional report content.
type ReportConfig struct {
	AgeStats   bool `yaml:"age_stats" toml:"age_stats"`
	CrossCheck bool `yaml:"cross_check" toml:"cross_check"`
}

// DefaultConfig returns a Config populated with defaults.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			TokenEnv:        DefaultTokenEnv,
			APIEndpoint:     DefaultAPIEndpoint,
			GraphQLEndpoint: DefaultGraphQLEndpoint,
			APIVersion:      DefaultAPIVersion,
		},
		Output: OutputConfig{
			Path: DefaultOutputPath,
		},
	}
}

// HTTPTimeout parses Timeout. An empty value yields zero.
func (g GitHubConfig) HTTPTimeout() (time.Duration, error) {
	if g.Timeout == "" {
		return 0, nil
	}
	return time.ParseDuration(g.Timeout)
}
