package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/kwscope/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change engine, source, cache and catalog settings.

Settings are stored in ~/.kwscope/config.toml. The API token may also be
supplied through KWSCOPE_API_TOKEN, for example from a .env file.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> [value]",
	Short: "Change a setting",
	Long: `Change a single setting by key.

Secret values such as source.token are prompted for without echo when the
value argument is omitted.

Examples:
  kwscope settings set engine.page_size 50
  kwscope settings set source.kind api
  kwscope settings set source.token
  kwscope settings set cache.backend sqlite`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSettingsSet,
}

// readSecret reads a value without echo. Tests replace it.
var readSecret = readPassword

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Engine]")
	cmd.Printf("  Page size: %d\n", settings.Engine.PageSize)
	cmd.Printf("  Increment: %d\n", settings.Engine.Increment)
	cmd.Printf("  Batch size: %d\n", settings.Engine.BatchSize)
	cmd.Printf("  Load delay: %s\n", settings.Engine.LoadDelay)
	cmd.Printf("  Load-more delay: %s\n", settings.Engine.LoadMoreDelay)
	cmd.Printf("  Scroll threshold: %d rows\n", settings.Engine.ScrollThreshold)
	cmd.Println()

	cmd.Println("[Source]")
	cmd.Printf("  Kind: %s\n", settings.Source.Kind.Description())
	if settings.Source.Kind == domain.SourceAPI {
		cmd.Printf("  Base URL: %s\n", valueOrUnset(settings.Source.BaseURL))
		if settings.Source.Token != "" {
			cmd.Printf("  Token: %s\n", maskAPIKey(settings.Source.Token))
		} else {
			cmd.Printf("  Token: (not set)\n")
		}
		cmd.Printf("  Requests/second: %g\n", settings.Source.RequestsPerSecond)
	} else if settings.Source.Seed != 0 {
		cmd.Printf("  Seed: %d\n", settings.Source.Seed)
	}
	status := "configured"
	if !settings.Source.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[Cache]")
	cmd.Printf("  Backend: %s\n", settings.Cache.Backend.Description())
	switch settings.Cache.Backend {
	case domain.CacheSQLite:
		cmd.Printf("  Directory: %s\n", valueOrUnset(settings.Cache.Dir))
	case domain.CacheRedis:
		cmd.Printf("  Address: %s\n", settings.Cache.RedisAddr)
	}
	if settings.Cache.Backend != domain.CacheNone {
		cmd.Printf("  TTL: %s\n", settings.Cache.TTL)
	}
	cmd.Println()

	cmd.Println("[Catalog]")
	if settings.Catalog.Path != "" {
		cmd.Printf("  Path: %s\n", settings.Catalog.Path)
	} else {
		cmd.Printf("  Path: (built-in)\n")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key := args[0]
	var value string
	switch {
	case len(args) == 2:
		value = args[1]
	case isSecretKey(key):
		cmd.Printf("%s: ", key)
		value = readSecret(cmd.InOrStdin())
		cmd.Println()
	default:
		return fmt.Errorf("missing value for %s", key)
	}

	if err := settingsService.Set(key, value); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("unknown setting %q, valid keys: %s", key, strings.Join(settingsService.Keys(), ", "))
		}
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	if isSecretKey(key) {
		cmd.Printf("%s updated\n", key)
	} else {
		cmd.Printf("%s = %s\n", key, value)
	}
	return nil
}

func isSecretKey(key string) bool {
	return strings.HasSuffix(key, ".token")
}

func valueOrUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword(in io.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	reader := bufio.NewReader(in)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
