// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"spacearchive/internal/config"
	"spacearchive/internal/httputil"
	"spacearchive/internal/provider"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagBaseURL string
	flagJSON    bool
	flagDebug   bool
)

// cfg holds the loaded configuration (merged: defaults < config file < env < flags).
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "spacearchive [query]",
	Short: "Search the NASA Image and Video Library from the terminal",
	Long: `Spacearchive searches NASA's public image, video and audio library.
Browse results page by page, inspect an item's assets, metadata and captions,
or download an asset.`,
	Args:              cobra.ArbitraryArgs,
	PersistentPreRunE: loadConfig,
	RunE:              searchRun,
}

// Execute runs the root command.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "Upstream API base URL (env: "+config.EnvBaseURL+")")
	rootCmd.PersistentFlags().BoolVarP(&flagJSON, "json", "j", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")

	addSearchFlags(rootCmd)

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(detailCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(featuredCmd)
	rootCmd.AddCommand(suggestCmd)
}

// loadConfig loads and merges configuration: defaults < config file < env < CLI flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override config file values
	if flagBaseURL != "" {
		cfg.BaseURL = flagBaseURL
	}
	if flagDebug {
		cfg.Debug = true
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level := slog.LevelError
	log.SetOutput(os.Stderr)
	if cfg.Debug {
		log.SetPrefix("[spacearchive] ")
		level = slog.LevelDebug
	} else {
		log.SetFlags(0)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	return nil
}

// debugf logs a message if debug mode is enabled.
func debugf(format string, args ...interface{}) {
	if cfg != nil && cfg.Debug {
		log.Printf(format, args...)
	}
}

// newClient creates the HTTP client shared by the provider and downloads.
func newClient() *http.Client {
	return httputil.NewClient(cfg.Timeout.Duration)
}

// newProvider creates the NASA provider for the configured base URL.
func newProvider(client *http.Client) (*provider.NASA, error) {
	t, err := provider.NewTransport(cfg.BaseURL, client, slog.Default())
	if err != nil {
		return nil, err
	}
	debugf("using API at %s", cfg.BaseURL)
	return provider.NewNASA(t), nil
}
