package synthetic

import (
	"context"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/kwscope/internal/core/domain"
	"github.com/custodia-labs/kwscope/internal/core/ports/driven"
)

// Name is the source name reported in logs and status output.
const Name = "synthetic"

var (
	brands = []string{"Nike", "Adidas", "Samsung", "Lego", "Zara", "Uniqlo", "Philips", "Sony"}

	shoppingTemplates = []string{
		"%s",
		"%s sale",
		"cheap %s",
		"%s for men",
		"%s for women",
		"%s for kids",
		"%s set",
		"%s gift",
		"premium %s",
		"%s best seller",
		"%s free shipping",
		"new %s",
	}

	informationalTemplates = []string{
		"best %s",
		"how to choose %s",
		"%s reviews",
		"%s ranking",
		"%s size guide",
		"what is %s",
	}

	// Seasonal multipliers for the trend series, January first.
	seasons = [domain.TrendMonths]float64{0.8, 0.75, 0.9, 1.0, 1.05, 1.0, 0.95, 0.9, 1.0, 1.1, 1.3, 1.45}
)

// Ensure Generator implements the interface.
var _ driven.KeywordSource = (*Generator)(nil)

// Generator produces random records with a fixed shape.
// With a non-zero seed the output for a category is reproducible.
type Generator struct {
	seed uint64
}

// New creates a generator. A zero seed draws fresh values on every fetch.
func New(seed uint64) *Generator {
	return &Generator{seed: seed}
}

// Name returns the source name.
func (g *Generator) Name() string {
	return Name
}

// Fetch generates limit records whose text embeds the category name.
func (g *Generator) Fetch(ctx context.Context, category domain.Category, limit int) ([]domain.KeywordRecord, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: negative limit %d", domain.ErrInvalidInput, limit)
	}

	stream := rand.NewChaCha8(g.streamSeed(category.ID))
	rng := rand.New(stream)
	subject := label(category)

	records := make([]domain.KeywordRecord, 0, limit)
	for i := range limit {
		if i%100 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		id, err := uuid.NewRandomFromReader(stream)
		if err != nil {
			return nil, fmt.Errorf("generating id: %w", err)
		}
		records = append(records, record(rng, id.String(), subject, i))
	}
	return records, nil
}

func (g *Generator) streamSeed(categoryID string) [32]byte {
	base := g.seed
	if base == 0 {
		base = rand.Uint64()
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(categoryID))

	var seed [32]byte
	binary.LittleEndian.PutUint64(seed[0:], base)
	binary.LittleEndian.PutUint64(seed[8:], h.Sum64())
	return seed
}

// label is the lowercased display name. An unresolved category has an
// empty name and yields keywords built from the templates alone.
func label(c domain.Category) string {
	return strings.ToLower(strings.TrimSpace(c.Name))
}

func record(rng *rand.Rand, id, subject string, i int) domain.KeywordRecord {
	searchType := domain.SearchTypeShopping
	if rng.IntN(4) == 0 {
		searchType = domain.SearchTypeInformational
	}

	var text string
	if searchType == domain.SearchTypeInformational {
		text = fmt.Sprintf(informationalTemplates[rng.IntN(len(informationalTemplates))], subject)
	} else {
		text = fmt.Sprintf(shoppingTemplates[rng.IntN(len(shoppingTemplates))], subject)
	}

	isBrand := rng.IntN(5) == 0
	if isBrand {
		text = brands[rng.IntN(len(brands))] + " " + text
	}
	if i >= len(shoppingTemplates) {
		text = fmt.Sprintf("%s %d", text, i)
	}
	text = strings.Join(strings.Fields(text), " ")

	// Log-uniform between 10 and ~200k.
	volume := max(10, int(math.Exp(math.Log(10)+rng.Float64()*(math.Log(200_000)-math.Log(10)))))

	competition := domain.AllCompetitions()[rng.IntN(3)]
	products := volume/(2+rng.IntN(20)) + rng.IntN(50)

	var trend domain.TrendSeries
	monthly := float64(volume) / domain.TrendMonths
	for m := range trend {
		noise := 0.85 + rng.Float64()*0.3
		trend[m] = int(monthly * seasons[m] * noise)
	}

	return domain.KeywordRecord{
		ID:           id,
		Text:         text,
		SearchVolume: volume,
		ProductCount: products,
		Competition:  competition,
		Trend:        trend,
		IsBrand:      isBrand,
		SearchType:   searchType,
	}
}
