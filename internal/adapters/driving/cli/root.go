// Package cli provides the cobra command tree for the lexiverse binary.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lexiverse-cli/internal/core/ports/driving"
	"github.com/custodia-labs/lexiverse-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Persistent flag values.
var (
	verbose   bool
	configDir string
	baseURL   string
	ephemeral bool
)

// Options carries the persistent flags to the service factory.
type Options struct {
	ConfigDir string
	BaseURL   string
	Verbose   bool
	Ephemeral bool
}

// Services are the driving ports the commands operate on.
type Services struct {
	Session  driving.SessionController
	Chat     driving.ChatEngine
	Settings driving.SettingsService

	// Close releases adapter resources. May be nil.
	Close func() error
}

// ServiceFactory builds services once flags are parsed.
type ServiceFactory func(opts Options) (*Services, error)

var (
	factory  ServiceFactory
	services *Services
)

var errNotConfigured = errors.New("services not configured")

var rootCmd = &cobra.Command{
	Use:   "lexiverse",
	Short: "Summarise and chat with legal documents",
	Long: `LexiVerse uploads a legal document to the analysis service, shows an
AI-generated summary with the important clauses, and lets you ask questions
about the document.

Start with:
  lexiverse analyze contract.pdf
  lexiverse ask "What is the notice period?"

Or open the dashboard with:
  lexiverse tui`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return closeServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.lexiverse)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "",
		"analysis service URL (overrides LEXIVERSE_API_BASE_URL and config)")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "do not persist the session between runs")
}

// SetServiceFactory registers the function used to build services.
func SetServiceFactory(f ServiceFactory) {
	factory = f
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command. Cancelling ctx stops long-running
// commands such as chat, analyze --watch and mcp serve.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// loadServices builds services on first use and restores the persisted
// session so questions continue the previous conversation.
func loadServices(cmd *cobra.Command) (*Services, error) {
	if services != nil {
		return services, nil
	}
	if factory == nil {
		return nil, errNotConfigured
	}

	svc, err := factory(Options{
		ConfigDir: configDir,
		BaseURL:   baseURL,
		Verbose:   verbose,
		Ephemeral: ephemeral,
	})
	if err != nil {
		return nil, fmt.Errorf("initialising: %w", err)
	}
	if svc.Session != nil {
		if err := svc.Session.Restore(cmd.Context()); err != nil {
			logger.Warn("restore session: %v", err)
		}
	}

	services = svc
	return services, nil
}

func closeServices() error {
	if services == nil || services.Close == nil {
		return nil
	}
	err := services.Close()
	services = nil
	return err
}
