package stepgen

import (
	"context"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/forgelabs-io/synthetics-forge/classify"
	"github.com/forgelabs-io/synthetics-forge/logger"
)

// Request describes one step-generation invocation. It is transient; nothing
// is retained between invocations.
type Request struct {
	WebsiteURL string
	TestName   string
	Prompt     string
	Analysis   *Analysis
}

// Heuristic maps classification results to concrete verification fragments
// with bounded randomized variety. When the request carries a prompt the
// random draws are seeded from (url, name, prompt) so regenerating the same
// test produces the same script; without a prompt the draws are unseeded.
type Heuristic struct {
	logger logger.Logger

	// newSource is swapped in tests to pin the unseeded path.
	newSource func() rand.Source
}

// NewHeuristic creates a heuristic step generator.
func NewHeuristic(log logger.Logger) *Heuristic {
	return &Heuristic{
		logger: log,
		newSource: func() rand.Source {
			return rand.NewSource(time.Now().UnixNano())
		},
	}
}

// SetRandSource overrides the unseeded randomness source. Tests use this to
// make pool selection deterministic.
func (h *Heuristic) SetRandSource(fn func() rand.Source) {
	h.newSource = fn
}

// Generate produces an ordered, never-empty fragment sequence for the
// request. Category fragments come first in classification priority order,
// then count-driven interactive/search fragments, then one or two picks from
// the generic pool.
func (h *Heuristic) Generate(ctx context.Context, req Request, cls classify.Result) []Fragment {
	rng := h.randFor(req)

	var fragments []Fragment
	for _, category := range cls.Categories {
		fragments = append(fragments, categoryFragments(category, req.Analysis)...)
	}

	if req.Analysis != nil {
		if req.Analysis.Buttons > 0 || req.Analysis.Forms > 0 {
			fragments = append(fragments, interactiveFragment(req.Analysis))
		}
		if req.Analysis.SearchBoxes > 0 {
			fragments = append(fragments, searchFragment)
		}
		// With a real analysis one generic fragment is enough variety.
		fragments = append(fragments, pickGeneric(rng, 1)...)
	} else {
		fragments = append(fragments, pickGeneric(rng, 1+rng.Intn(2))...)
	}

	h.logger.Debug(ctx, "heuristic fragments generated", map[string]interface{}{
		"url":          req.WebsiteURL,
		"primary_type": cls.PrimaryType,
		"fragments":    len(fragments),
	})

	return fragments
}

func (h *Heuristic) randFor(req Request) *rand.Rand {
	if req.Prompt == "" {
		return rand.New(h.newSource())
	}
	return rand.New(rand.NewSource(seedFor(req.WebsiteURL, req.TestName, req.Prompt)))
}

// seedFor derives a stable seed from the (url, name, prompt) triple so that
// regenerated tests for the same inputs are byte-identical and diffable.
func seedFor(url, name, prompt string) int64 {
	h := fnv.New64a()
	h.Write([]byte(url))
	h.Write([]byte{'_'})
	h.Write([]byte(name))
	h.Write([]byte{'_'})
	h.Write([]byte(prompt))
	return int64(h.Sum64() % 10000)
}

// pickGeneric draws n distinct fragments from the generic pool.
func pickGeneric(rng *rand.Rand, n int) []Fragment {
	if n > len(genericPool) {
		n = len(genericPool)
	}
	picked := make([]Fragment, 0, n)
	for _, idx := range rng.Perm(len(genericPool))[:n] {
		picked = append(picked, genericPool[idx])
	}
	return picked
}
