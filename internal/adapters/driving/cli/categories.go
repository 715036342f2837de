package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kwscope/internal/core/domain"
)

var categoriesJSON bool

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the category taxonomy",
	Long:  `Prints every category with its id, indented by depth.`,
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

func init() {
	categoriesCmd.Flags().BoolVar(&categoriesJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(categoriesCmd)
}

// categoryJSON is the JSON shape of a category node.
type categoryJSON struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Level    int            `json:"level"`
	Children []categoryJSON `json:"children,omitempty"`
}

func toCategoryJSON(nodes []*domain.Category) []categoryJSON {
	out := make([]categoryJSON, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, categoryJSON{
			ID:       n.ID,
			Name:     n.Name,
			Level:    n.Level,
			Children: toCategoryJSON(n.Children),
		})
	}
	return out
}

func runCategories(cmd *cobra.Command, _ []string) error {
	if categoryService == nil {
		return errors.New("category service not configured")
	}

	tree, err := categoryService.Tree(cmd.Context())
	if err != nil {
		return fmt.Errorf("loading categories: %w", err)
	}

	if categoriesJSON {
		data, err := json.MarshalIndent(toCategoryJSON(tree.Roots()), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal categories: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	tree.Walk(func(c *domain.Category) bool {
		cmd.Printf("%s%-*s %s\n", strings.Repeat("  ", c.Level-1), 28-2*(c.Level-1), c.Name, c.ID)
		return true
	})
	return nil
}
