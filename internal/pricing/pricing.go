// Package pricing maps model identifiers and token counts to estimated USD
// cost. Prices are API-equivalent estimates, not subscription charges.
package pricing

import (
	"log"
	"strings"

	"github.com/s3nik/ccjournal/internal/core"
)

// Kind names one priced token category.
type Kind string

const (
	KindInput      Kind = "input"
	KindOutput     Kind = "output"
	KindCacheRead  Kind = "cache_read"
	KindCacheWrite Kind = "cache_write"
)

// Rate holds per-million-token USD prices for one model family. Cache reads
// are discounted 90% off the input rate; cache writes carry a 25% premium.
type Rate struct {
	InputPerMillion      float64
	OutputPerMillion     float64
	CacheReadPerMillion  float64
	CacheWritePerMillion float64
}

var familyRates = map[string]Rate{
	"opus": {
		InputPerMillion:      15.0,
		OutputPerMillion:     75.0,
		CacheReadPerMillion:  1.50,
		CacheWritePerMillion: 18.75,
	},
	"sonnet": {
		InputPerMillion:      3.0,
		OutputPerMillion:     15.0,
		CacheReadPerMillion:  0.30,
		CacheWritePerMillion: 3.75,
	},
	"haiku": {
		InputPerMillion:      0.80,
		OutputPerMillion:     4.0,
		CacheReadPerMillion:  0.08,
		CacheWritePerMillion: 1.0,
	},
}

// matchOrder keeps family lookup deterministic for identifiers that embed
// more than one family name.
var matchOrder = []string{"opus", "haiku", "sonnet"}

// Lookup resolves a model identifier to its rate table by family substring.
func Lookup(model string) (Rate, bool) {
	lower := strings.ToLower(model)
	for _, family := range matchOrder {
		if strings.Contains(lower, family) {
			return familyRates[family], true
		}
	}
	return Rate{}, false
}

func (r Rate) perToken(kind Kind) float64 {
	switch kind {
	case KindInput:
		return r.InputPerMillion / 1_000_000
	case KindOutput:
		return r.OutputPerMillion / 1_000_000
	case KindCacheRead:
		return r.CacheReadPerMillion / 1_000_000
	case KindCacheWrite:
		return r.CacheWritePerMillion / 1_000_000
	default:
		return 0
	}
}

// KindCost prices count tokens of one kind. Unknown models price to zero;
// the miss is logged once per call site, never surfaced as an error.
func KindCost(model string, kind Kind, count int64) float64 {
	rate, ok := Lookup(model)
	if !ok {
		log.Printf("[pricing] unknown model %q, pricing %s tokens at $0", model, kind)
		return 0
	}
	return float64(count) * rate.perToken(kind)
}

// Cost prices a full usage record with cache tiers applied.
func Cost(model string, u core.TokenUsage) float64 {
	rate, ok := Lookup(model)
	if !ok {
		log.Printf("[pricing] unknown model %q, pricing usage at $0", model)
		return 0
	}
	return float64(u.InputTokens)*rate.perToken(KindInput) +
		float64(u.OutputTokens)*rate.perToken(KindOutput) +
		float64(u.CacheReadTokens)*rate.perToken(KindCacheRead) +
		float64(u.CacheWriteTokens)*rate.perToken(KindCacheWrite)
}

// CostWithoutCache prices cache reads and writes at the plain input rate,
// giving the counterfactual cost had no prompt caching been in play.
func CostWithoutCache(model string, u core.TokenUsage) float64 {
	rate, ok := Lookup(model)
	if !ok {
		log.Printf("[pricing] unknown model %q, pricing usage at $0", model)
		return 0
	}
	uncached := u.InputTokens + u.CacheReadTokens + u.CacheWriteTokens
	return float64(uncached)*rate.perToken(KindInput) +
		float64(u.OutputTokens)*rate.perToken(KindOutput)
}

// CacheSavings is the amount prompt caching shaved off the bill. Negative
// values are possible when cache writes dominate reads.
func CacheSavings(model string, u core.TokenUsage) float64 {
	return CostWithoutCache(model, u) - Cost(model, u)
}
