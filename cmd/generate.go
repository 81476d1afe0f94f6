package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/issue-dashboard/internal/config"
	"github.com/naka-gawa/issue-dashboard/internal/gateway"
	"github.com/naka-gawa/issue-dashboard/internal/report"
	"github.com/naka-gawa/issue-dashboard/internal/usecase"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Fetches issues and writes the dashboard data file",
		Long: `Fetches all issues of the repository, excludes pull requests, and writes
the summary to docs/dashboard-data.json (or --output).

The token is read from GITHUB_TOKEN (or --token) and the repository from
GITHUB_REPOSITORY (or --repo), in the form <owner>/<name>.`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}

	cmd.Flags().String("config", "", "Config file (default: .issue-dashboard.{yaml,yml,toml} if present)")
	cmd.Flags().StringP("repo", "r", "", "Target repository as <owner>/<name>")
	cmd.Flags().String("token", "", "GitHub token (overrides the token environment variable)")
	cmd.Flags().StringP("output", "o", "", "Output file path (default: "+config.DefaultOutputPath+")")
	cmd.Flags().Bool("detect-repo", false, "Use the origin remote of the current git checkout when no repository is set")
	cmd.Flags().Bool("age-stats", false, "Include open issue age statistics in the summary")
	cmd.Flags().Bool("cross-check", false, "Compare counts against GraphQL totals and warn on mismatch")
	cmd.Flags().Bool("wait-rate-limit", false, "Sleep through secondary rate limits instead of failing")
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	applyGenerateFlags(cmd, cfg)

	// The credential is checked before any other work, repository detection included.
	if err := cfg.ValidateToken(); err != nil {
		return err
	}

	if detect, _ := cmd.Flags().GetBool("detect-repo"); detect && cfg.Repository == "" {
		detected, err := config.DetectRepository(".")
		if err != nil {
			logger.Warn().Err(err).Msg("Could not detect repository from git remote")
		} else {
			logger.Info().Str("repository", detected).Msg("Detected repository from git remote")
			cfg.Repository = detected
		}
	}

	repo, err := cfg.Validate()
	if err != nil {
		return err
	}

	githubGateway, err := gateway.NewGitHubGateway(cfg.GitHub, logger)
	if err != nil {
		return fmt.Errorf("failed to create GitHub gateway: %w", err)
	}
	aggregator := usecase.NewAggregator(githubGateway, logger,
		usecase.WithAgeStats(cfg.Report.AgeStats),
		usecase.WithCrossCheck(cfg.Report.CrossCheck),
	)

	result, err := aggregator.Run(cmd.Context(), repo)
	if err != nil {
		return err
	}

	logger.Info().Str("path", cfg.Output.Path).Msg("[3/3] Writing report...")
	writer := report.NewFileWriter(cfg.Output.Path)
	if err := writer.Write(result); err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d issues of %s to %s\n",
		result.Summary.TotalIssues, result.Repository, writer.Path())
	return nil
}

// applyGenerateFlags gives explicitly set flags precedence over file and environment values.
func applyGenerateFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("repo") {
		cfg.Repository, _ = flags.GetString("repo")
	}
	if flags.Changed("token") {
		cfg.GitHub.Token, _ = flags.GetString("token")
	}
	if flags.Changed("output") {
		cfg.Output.Path, _ = flags.GetString("output")
	}
	if flags.Changed("age-stats") {
		cfg.Report.AgeStats, _ = flags.GetBool("age-stats")
	}
	if flags.Changed("cross-check") {
		cfg.Report.CrossCheck, _ = flags.GetBool("cross-check")
	}
	if flags.Changed("wait-rate-limit") {
		cfg.GitHub.WaitRateLimit, _ = flags.GetBool("wait-rate-limit")
	}
}
