package keywords

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

var ageBands = []string{"18-24", "25-34", "35-44", "45-54", "55+"}

// Decoration holds illustrative shopper figures shown beside a keyword.
// The figures are derived from the record ID only, so a keyword always
// shows the same values and the engine never sees them.
type Decoration struct {
	AvgPrice    int
	FemaleShare int
	DominantAge string
}

// String renders the decoration for the detail line.
func (d Decoration) String() string {
	return fmt.Sprintf("avg price $%d · %d%% women · mostly %s", d.AvgPrice, d.FemaleShare, d.DominantAge)
}

func decorate(id string) Decoration {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	r := rand.New(rand.NewPCG(h.Sum64(), 0x6b7773636f7065))

	return Decoration{
		AvgPrice:    5 + r.IntN(296),
		FemaleShare: 10 + r.IntN(81),
		DominantAge: ageBands[r.IntN(len(ageBands))],
	}
}

// decorations caches one Decoration per record ID.
type decorations map[string]Decoration

func (d decorations) get(id string) Decoration {
	if dec, ok := d[id]; ok {
		return dec
	}
	dec := decorate(id)
	d[id] = dec
	return dec
}
