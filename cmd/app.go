package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-techstack/internal/config"
	"github.com/naka-gawa/github-techstack/internal/gateway"
	"github.com/naka-gawa/github-techstack/internal/render"
	"github.com/naka-gawa/github-techstack/internal/usecase"
)

// app bundles the wired dependencies shared by the commands.
type app struct {
	cfg      *config.Config
	logger   *log.Logger
	colors   usecase.ColorTable
	searcher *usecase.Searcher
}

// newApp loads the configuration, applies flag overrides and wires the use case.
func newApp(cmd *cobra.Command) (*app, error) {
	// Get the verbose flag from the root command to set up the logger.
	verbose, _ := cmd.InheritedFlags().GetBool("verbose")
	logger := log.New(io.Discard, "", log.LstdFlags) // Default: discard all logs.
	if verbose {
		logger.SetOutput(os.Stderr) // If verbose, log to standard error.
	}

	configPath, _ := cmd.InheritedFlags().GetString("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}
	logger.Printf("Using API %s (timeout %s)\n", cfg.API.BaseURL, cfg.API.Timeout)

	return newAppFromConfig(cfg, logger)
}

// applyFlags lets explicitly set flags win over the loaded configuration.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("top-languages") {
		cfg.Aggregation.TopLanguages, _ = flags.GetInt("top-languages")
	}
	if flags.Changed("top-repos") {
		cfg.Ranking.TopRepositories, _ = flags.GetInt("top-repos")
	}
	if flags.Changed("concurrency") {
		cfg.Search.Concurrency, _ = flags.GetInt("concurrency")
	}
	if flags.Changed("format") {
		cfg.Output.Format, _ = flags.GetString("format")
	}
	if flags.Changed("no-color") {
		noColor, _ := flags.GetBool("no-color")
		cfg.Output.Color = !noColor
	}
	if flags.Changed("base-url") {
		cfg.API.BaseURL, _ = flags.GetString("base-url")
	}
	if flags.Changed("timeout") {
		cfg.API.Timeout, _ = flags.GetDuration("timeout")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

// newAppFromConfig injects dependencies for the given configuration.
func newAppFromConfig(cfg *config.Config, logger *log.Logger) (*app, error) {
	githubGateway, err := gateway.NewGitHubGateway(gateway.Options{
		BaseURL:   cfg.API.BaseURL,
		UserAgent: cfg.API.UserAgent,
		Timeout:   cfg.API.Timeout,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub gateway: %w", err)
	}
	colors := usecase.DefaultColors().WithOverrides(cfg.Colors.Overrides, cfg.Colors.Default)
	aggregator := usecase.NewAggregator(colors, cfg.Aggregation.TopLanguages, logger)
	return &app{
		cfg:      cfg,
		logger:   logger,
		colors:   colors,
		searcher: usecase.NewSearcher(githubGateway, aggregator, cfg.Ranking.TopRepositories, logger),
	}, nil
}

func (a *app) renderOptions() render.Options {
	return render.Options{NoColor: !a.cfg.Output.Color}
}

// addOutputFlags registers the flags shared by commands that print search results.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", config.FormatText, "Output format: text or json")
	cmd.Flags().Bool("no-color", false, "Disable colored output")
	cmd.Flags().Int("top-languages", usecase.DefaultTopLanguages, "Number of languages in the tech stack")
	cmd.Flags().Int("top-repos", usecase.DefaultRankLimit, "Number of repositories in the ranking")
	cmd.Flags().String("base-url", "", "GitHub API base URL")
	cmd.Flags().Duration("timeout", 0, "Timeout for each API request")
}
