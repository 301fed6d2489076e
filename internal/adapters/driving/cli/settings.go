package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lexiverse-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the analysis service address, session persistence,
and chat options.

Use subcommands to change a single setting or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a single setting",
	Long: `Change a single setting by key.

Keys:
  backend.base_url          Analysis service URL
  backend.timeout_seconds   Request timeout
  backend.rate_per_second   Request rate limit (0 = unlimited)
  session.store             file, sqlite, redis or memory
  session.redis_addr        Redis address for the redis store
  session.redis_ttl_hours   Lifetime of the shared session id
  chat.reveal_interval_ms   Word reveal delay (0 = instant)
  log.file                  JSON log file (empty = disabled)`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure the common settings step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	svc, err := loadServices(cmd)
	if err != nil {
		return err
	}
	if svc.Settings == nil {
		return errors.New("settings service not configured")
	}

	settings, err := svc.Settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Backend]")
	cmd.Printf("  Base URL: %s\n", settings.Backend.BaseURL)
	cmd.Printf("  Timeout: %s\n", settings.Backend.Timeout)
	if settings.Backend.RatePerSecond > 0 {
		cmd.Printf("  Rate limit: %g req/s\n", settings.Backend.RatePerSecond)
	} else {
		cmd.Println("  Rate limit: unlimited")
	}
	cmd.Println()

	cmd.Println("[Session]")
	cmd.Printf("  Store: %s\n", settings.Session.Store.Description())
	if settings.Session.Store == domain.SessionStoreRedis {
		cmd.Printf("  Redis address: %s\n", settings.Session.RedisAddr)
		cmd.Printf("  Redis TTL: %s\n", settings.Session.RedisTTL)
	}
	cmd.Println()

	cmd.Println("[Chat]")
	if settings.Chat.RevealInterval > 0 {
		cmd.Printf("  Reveal interval: %s\n", settings.Chat.RevealInterval)
	} else {
		cmd.Println("  Reveal interval: instant")
	}
	cmd.Println()

	cmd.Println("[Log]")
	if settings.Log.File != "" {
		cmd.Printf("  File: %s\n", settings.Log.File)
	} else {
		cmd.Println("  File: (disabled)")
	}
	cmd.Println()

	if err := svc.Settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'lexiverse settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	svc, err := loadServices(cmd)
	if err != nil {
		return err
	}
	if svc.Settings == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := svc.Settings.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	svc, err := loadServices(cmd)
	if err != nil {
		return err
	}
	if svc.Settings == nil {
		return errors.New("settings service not configured")
	}

	current, err := svc.Settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("LexiVerse Settings Wizard")
	cmd.Println("=========================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: Backend
	cmd.Println("Step 1: Analysis Service")
	cmd.Println("------------------------")
	cmd.Printf("Enter base URL [%s]: ", current.Backend.BaseURL)
	if input := readLine(reader); input != "" {
		if err := svc.Settings.Set("backend.base_url", input); err != nil {
			return fmt.Errorf("failed to set base URL: %w", err)
		}
	}
	cmd.Println()

	// Step 2: Session store
	cmd.Println("Step 2: Session Persistence")
	cmd.Println("---------------------------")
	stores := []domain.SessionStoreType{
		domain.SessionStoreFile,
		domain.SessionStoreSQLite,
		domain.SessionStoreRedis,
		domain.SessionStoreMemory,
	}
	defaultIdx := 1
	for i, st := range stores {
		if st == current.Session.Store {
			defaultIdx = i + 1
		}
		cmd.Printf("  %d. %s\n", i+1, st.Description())
	}
	cmd.Printf("\nEnter choice [%d]: ", defaultIdx)
	idx := parseChoice(readLine(reader), len(stores), defaultIdx)
	if idx == 0 {
		return errors.New("invalid selection")
	}
	selected := stores[idx-1]
	if err := svc.Settings.Set("session.store", selected.String()); err != nil {
		return fmt.Errorf("failed to set session store: %w", err)
	}

	if selected == domain.SessionStoreRedis {
		cmd.Printf("Enter Redis address [%s]: ", current.Session.RedisAddr)
		if input := readLine(reader); input != "" {
			if err := svc.Settings.Set("session.redis_addr", input); err != nil {
				return fmt.Errorf("failed to set redis address: %w", err)
			}
		}
	}
	cmd.Println()

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	if err := svc.Settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("All settings are valid and saved.")
	}

	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// parseChoice returns the 1-based choice, defaultVal for empty input,
// or 0 for anything out of range.
func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > maxVal {
		return 0
	}
	return n
}
