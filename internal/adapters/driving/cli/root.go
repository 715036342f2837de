// Package cli provides the kwscope command-line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kwscope/internal/core/ports/driving"
	"github.com/custodia-labs/kwscope/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

var verbose bool

// Services used by the commands. main wires them before Execute.
var (
	keywordService  driving.KeywordService
	categoryService driving.CategoryService
	settingsService driving.SettingsService
)

var rootCmd = &cobra.Command{
	Use:   "kwscope",
	Short: "Explore keyword demand by product category",
	Long: `kwscope loads keyword statistics for a product category and lets you
filter, sort and page through them.

Run "kwscope keywords -c fashion" for a one-shot query, "kwscope tui" for the
interactive table, or "kwscope mcp serve" to expose the same queries to an
AI assistant.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logging to stderr")
}

// SetVersion sets the version reported by "kwscope version".
func SetVersion(v string) {
	version = v
}

// SetKeywordService sets the service used for keyword queries.
func SetKeywordService(s driving.KeywordService) {
	keywordService = s
}

// SetCategoryService sets the service used for category lookups.
func SetCategoryService(s driving.CategoryService) {
	categoryService = s
}

// SetSettingsService sets the service used by the settings commands.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
