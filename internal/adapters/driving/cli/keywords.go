package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/kwscope/internal/core/domain"
)

var (
	kwCategory     string
	kwSearch       string
	kwMinVolume    string
	kwMaxVolume    string
	kwVolumePreset int
	kwBrand        []string
	kwTypes        []string
	kwCompetition  []string
	kwSort         string
	kwAsc          bool
	kwPages        int
	kwJSON         bool
)

// isInteractive reports whether a picker can be shown. Tests replace it.
var isInteractive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// pickCategory asks the user for a category. Tests replace it.
var pickCategory = promptCategory

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Query keywords for a category",
	Long: `Loads the keyword dataset for a category, applies filters and sort, and
prints the visible page.

Filters combine with AND. Multi-value flags keep records matching any of the
listed values. Without --category an interactive picker is shown.

Examples:
  kwscope keywords -c fashion-shoes -s running
  kwscope keywords -c beauty --min-volume 10,000 --max-volume 20000
  kwscope keywords -c fashion --brand brand --competition low,medium --sort products --asc
  kwscope keywords -c digital --volume-preset 50000 --pages 2 --json`,
	Args: cobra.NoArgs,
	RunE: runKeywords,
}

func init() {
	f := keywordsCmd.Flags()
	f.StringVarP(&kwCategory, "category", "c", "", "category id")
	f.StringVarP(&kwSearch, "search", "s", "", "case-insensitive text filter")
	f.StringVar(&kwMinVolume, "min-volume", "", "minimum monthly searches (custom range)")
	f.StringVar(&kwMaxVolume, "max-volume", "", "maximum monthly searches (custom range)")
	f.IntVar(&kwVolumePreset, "volume-preset", 0, "minimum monthly searches (preset threshold)")
	f.StringSliceVar(&kwBrand, "brand", nil, "brand classes: brand, non-brand")
	f.StringSliceVar(&kwTypes, "type", nil, "search types: shopping, informational")
	f.StringSliceVar(&kwCompetition, "competition", nil, "competition levels: low, medium, high")
	f.StringVar(&kwSort, "sort", string(domain.SortBySearchVolume), "sort key: "+sortKeyList())
	f.BoolVar(&kwAsc, "asc", false, "sort ascending")
	f.IntVar(&kwPages, "pages", 0, "number of extra pages to load")
	f.BoolVar(&kwJSON, "json", false, "output as JSON")
	keywordsCmd.MarkFlagsMutuallyExclusive("volume-preset", "min-volume")
	keywordsCmd.MarkFlagsMutuallyExclusive("volume-preset", "max-volume")
	rootCmd.AddCommand(keywordsCmd)
}

func runKeywords(cmd *cobra.Command, _ []string) error {
	if keywordService == nil {
		return errors.New("keyword service not configured")
	}

	categoryID := kwCategory
	if categoryID == "" {
		if !isInteractive() {
			return errors.New("--category is required when not running in a terminal")
		}
		picked, err := pickCategory(cmd)
		if err != nil {
			return err
		}
		categoryID = picked
	}

	query, err := buildQuery(categoryID)
	if err != nil {
		return err
	}

	page, err := keywordService.Query(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if kwJSON {
		data, err := json.MarshalIndent(page, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printPage(cmd, page)
	return nil
}

func buildQuery(categoryID string) (domain.KeywordQuery, error) {
	criteria := domain.DefaultCriteria().WithText(kwSearch)

	switch {
	case kwVolumePreset > 0:
		criteria = criteria.WithPresetVolume(kwVolumePreset)
	case kwMinVolume != "" || kwMaxVolume != "":
		criteria = criteria.WithCustomVolume(domain.ParseBound(kwMinVolume), domain.ParseBound(kwMaxVolume))
	}

	brands, err := parseAll(kwBrand, domain.ParseBrandClass)
	if err != nil {
		return domain.KeywordQuery{}, err
	}
	criteria.Brand = criteria.Brand.Only(brands...)

	types, err := parseAll(kwTypes, domain.ParseSearchType)
	if err != nil {
		return domain.KeywordQuery{}, err
	}
	criteria.SearchTypes = criteria.SearchTypes.Only(types...)

	levels, err := parseAll(kwCompetition, domain.ParseCompetition)
	if err != nil {
		return domain.KeywordQuery{}, err
	}
	criteria.Competition = criteria.Competition.Only(levels...)

	key, err := domain.ParseSortKey(kwSort)
	if err != nil {
		return domain.KeywordQuery{}, err
	}
	direction := domain.Descending
	if kwAsc {
		direction = domain.Ascending
	}

	return domain.KeywordQuery{
		CategoryID: categoryID,
		Criteria:   criteria,
		Sort:       domain.SortSpec{Key: key, Direction: direction},
		Pages:      max(kwPages, 0),
	}, nil
}

func parseAll[T any](values []string, parse func(string) (T, error)) ([]T, error) {
	out := make([]T, 0, len(values))
	for _, v := range values {
		parsed, err := parse(v)
		if err != nil {
			return nil, err
		}
		out = append(out, parsed)
	}
	return out, nil
}

func sortKeyList() string {
	keys := make([]string, len(domain.AllSortKeys()))
	for i, k := range domain.AllSortKeys() {
		keys[i] = string(k)
	}
	return strings.Join(keys, ", ")
}

func printPage(cmd *cobra.Command, page *domain.KeywordPage) {
	title := page.CategoryName
	if title == "" {
		title = page.CategoryID
	}
	cmd.Printf("%s: %d results found (%d keywords loaded, sorted by %s)\n",
		title, page.Total, page.DatasetSize, page.Sort)
	for _, f := range page.Filters {
		cmd.Printf("  filter: %s\n", f)
	}
	cmd.Println()

	if len(page.Records) == 0 {
		cmd.Println("No keywords match.")
		return
	}

	cmd.Printf("  %-4s %-40s %10s %9s %-7s %-6s %-13s\n",
		"#", "KEYWORD", "VOLUME", "PRODUCTS", "COMP", "BRAND", "TYPE")
	for i, r := range page.Records {
		brand := "no"
		if r.IsBrand {
			brand = "yes"
		}
		cmd.Printf("  %-4d %-40s %10s %9s %-7s %-6s %-13s\n",
			i+1, truncate(r.Text, 40), humanize.Comma(int64(r.SearchVolume)), humanize.Comma(int64(r.ProductCount)),
			r.Competition, brand, r.SearchType)
	}

	if page.HasMore {
		cmd.Printf("\n  showing %d of %d, use --pages to see more\n", len(page.Records), page.Total)
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

func promptCategory(cmd *cobra.Command) (string, error) {
	if categoryService == nil {
		return "", errors.New("category service not configured")
	}
	tree, err := categoryService.Tree(cmd.Context())
	if err != nil {
		return "", fmt.Errorf("loading categories: %w", err)
	}

	var options []huh.Option[string]
	tree.Walk(func(c *domain.Category) bool {
		label := strings.Repeat("  ", c.Level-1) + c.Name
		options = append(options, huh.NewOption(label, c.ID))
		return true
	})

	var selected string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select a category").
				Options(options...).
				Height(15).
				Value(&selected),
		),
	)
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("prompt cancelled: %w", err)
	}
	return selected, nil
}
