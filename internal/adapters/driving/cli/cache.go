package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the dataset cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear <category>",
	Short: "Drop the cached dataset for a category",
	Long: `Removes the cached keyword dataset for a category so the next query
fetches fresh data from the keyword source.`,
	Args: cobra.ExactArgs(1),
	RunE: runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	if keywordService == nil {
		return errors.New("keyword service not configured")
	}

	if err := keywordService.Invalidate(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	cmd.Printf("Cleared cached dataset for %s\n", args[0])
	return nil
}
