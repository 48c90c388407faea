package landmarkselect

import (
	"math/rand/v2"
	"sync"
)

// Selector draws one landmark uniformly at random per call. Draws are
// independent and repeats are allowed.
type Selector struct {
	catalog Catalog

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector returns a selector over catalog. An empty catalog falls back to
// DefaultCatalog; a nil rng uses a randomly seeded source.
func NewSelector(catalog Catalog, rng *rand.Rand) *Selector {
	if len(catalog) == 0 {
		catalog = DefaultCatalog()
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Selector{catalog: catalog, rng: rng}
}

func (s *Selector) Select() string {
	s.mu.Lock()
	i := s.rng.IntN(len(s.catalog))
	s.mu.Unlock()
	return s.catalog[i]
}

// Catalog returns the landmarks this selector draws from.
func (s *Selector) Catalog() Catalog {
	return s.catalog
}
