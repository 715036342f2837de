package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/kwscope/internal/adapters/driving/tui"
	"github.com/custodia-labs/kwscope/internal/core/ports/driving"
)

// TUIConfig holds configuration for the TUI command.
type TUIConfig struct {
	CategoryService driving.CategoryService
	Browser         driving.KeywordBrowser
	ScrollThreshold int

	// InitialCategory is loaded on start when set.
	InitialCategory string
}

// tuiConfig holds the current TUI configuration.
var tuiConfig *TUIConfig

var tuiCategory string

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive keyword table",
	Long: `Launch the interactive terminal interface.

Pick a category, then filter, sort and scroll through its keywords. More rows
load automatically as the cursor approaches the end of the table.

Controls:
  ↑/k, ↓/j  - Move through rows
  /         - Edit the text filter
  b, t, c   - Cycle brand, search type and competition filters
  v         - Cycle volume presets
  1-6       - Sort by column (again to reverse)
  Esc       - Back to categories
  ?         - Toggle help
  q         - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

// SetTUIConfig sets the configuration for the TUI command.
func SetTUIConfig(config *TUIConfig) {
	tuiConfig = config
}

func init() {
	tuiCmd.Flags().StringVarP(&tuiCategory, "category", "c", "", "open this category directly")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := &tui.Ports{}
	if tuiConfig != nil {
		ports.Categories = tuiConfig.CategoryService
		ports.Browser = tuiConfig.Browser
		ports.ScrollThreshold = tuiConfig.ScrollThreshold
		ports.InitialCategory = tuiConfig.InitialCategory
	}
	if tuiCategory != "" {
		ports.InitialCategory = tuiCategory
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
