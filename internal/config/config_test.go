package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/issue-dashboard/internal/domain"
)

// clearEnv unsets every variable Load consults so host settings do not leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{DefaultTokenEnv, "CUSTOM_TOKEN", EnvRepository, EnvAPIURL, EnvGraphQLURL, EnvOutputPath} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_Files(t *testing.T) {
	testCases := []struct {
		name     string
		filename string
		content  string
	}{
		{
			name:     "yaml",
			filename: "config.yaml",
			content: `repository: octo/hello
github:
  api_version: "2023-01-01"
  timeout: 30s
output:
  path: out/report.json
report:
  age_stats: true
`,
		},
		{
			name:     "toml",
			filename: "config.toml",
			content: `repository = "octo/hello"

[github]
api_version = "2023-01-01"
timeout = "30s"

[output]
path = "out/report.json"

[report]
age_stats = true
`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			path := filepath.Join(t.TempDir(), tc.filename)
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o600))

			cfg, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, "octo/hello", cfg.Repository)
			assert.Equal(t, "2023-01-01", cfg.GitHub.APIVersion)
			assert.Equal(t, "30s", cfg.GitHub.Timeout)
			assert.Equal(t, "out/report.json", cfg.Output.Path)
			assert.True(t, cfg.Report.AgeStats)
			assert.False(t, cfg.Report.CrossCheck)
			// Unset keys keep their defaults.
			assert.Equal(t, DefaultAPIEndpoint, cfg.GitHub.APIEndpoint)
		})
	}
}

func TestLoad_DefaultPathSearch(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".issue-dashboard.yml"), []byte("repository: octo/found\n"), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "octo/found", cfg.Repository)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("repository: [unterminated"), 0o600))
	_, err = Load(bad)
	assert.Error(t, err)

	unsupported := filepath.Join(dir, "config.ini")
	require.NoError(t, os.WriteFile(unsupported, []byte("x=1"), 0o600))
	_, err = Load(unsupported)
	assert.ErrorContains(t, err, "unsupported config file extension")
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("repository: octo/file\ngithub:\n  token_env: CUSTOM_TOKEN\n"), 0o600))

	t.Setenv("CUSTOM_TOKEN", "secret")
	t.Setenv(EnvRepository, "octo/env")
	t.Setenv(EnvAPIURL, "https://ghe.example.com/api/v3/")
	t.Setenv(EnvGraphQLURL, "https://ghe.example.com/api/graphql")
	t.Setenv(EnvOutputPath, "public/data.json")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.GitHub.Token)
	assert.Equal(t, "octo/env", cfg.Repository)
	assert.Equal(t, "https://ghe.example.com/api/v3/", cfg.GitHub.APIEndpoint)
	assert.Equal(t, "https://ghe.example.com/api/graphql", cfg.GitHub.GraphQLEndpoint)
	assert.Equal(t, "public/data.json", cfg.Output.Path)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg := DefaultConfig()
		cfg.GitHub.Token = "token"
		cfg.Repository = "octo/hello"
		return cfg
	}

	testCases := []struct {
		name           string
		mutate         func(cfg *Config)
		expectedErrMsg string
	}{
		{name: "valid", mutate: func(cfg *Config) {}},
		{
			name:           "missing token",
			mutate:         func(cfg *Config) { cfg.GitHub.Token = "" },
			expectedErrMsg: "GitHub token not found",
		},
		{
			name:           "missing repository",
			mutate:         func(cfg *Config) { cfg.Repository = "" },
			expectedErrMsg: "repository not set",
		},
		{
			name:           "malformed repository",
			mutate:         func(cfg *Config) { cfg.Repository = "octo" },
			expectedErrMsg: "invalid repository format",
		},
		{
			name:           "invalid timeout",
			mutate:         func(cfg *Config) { cfg.GitHub.Timeout = "soon" },
			expectedErrMsg: "invalid github.timeout",
		},
		{
			name:           "empty output path",
			mutate:         func(cfg *Config) { cfg.Output.Path = "" },
			expectedErrMsg: "output path is empty",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)

			repo, err := cfg.Validate()
			if tc.expectedErrMsg == "" {
				require.NoError(t, err)
				assert.Equal(t, domain.Repository{Owner: "octo", Name: "hello"}, repo)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrMissingConfiguration)
			assert.Contains(t, err.Error(), tc.expectedErrMsg)
		})
	}
}

func TestRepositoryFromRemoteURL(t *testing.T) {
	testCases := []struct {
		url         string
		expected    string
		expectError bool
	}{
		{url: "https://github.com/octo/hello.git", expected: "octo/hello"},
		{url: "https://github.com/octo/hello", expected: "octo/hello"},
		{url: "git@github.com:octo/hello.git", expected: "octo/hello"},
		{url: "ssh://git@github.com/octo/hello.git", expected: "octo/hello"},
		{url: "https://github.com/", expectError: true},
		{url: "not-a-remote", expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.url, func(t *testing.T) {
			repo, err := repositoryFromRemoteURL(tc.url)
			if tc.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, repo)
		})
	}
}

func TestDetectRepository(t *testing.T) {
	dir := t.TempDir()
	r, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	_, err = r.CreateRemote(&gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{"git@github.com:octo/hello.git"},
	})
	require.NoError(t, err)

	sub := filepath.Join(dir, "docs")
	require.NoError(t, os.Mkdir(sub, 0o750))

	repo, err := DetectRepository(sub)
	require.NoError(t, err)
	assert.Equal(t, "octo/hello", repo)
}

func TestDetectRepository_NoRemote(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	_, err = DetectRepository(dir)
	assert.ErrorContains(t, err, "origin remote")
}
