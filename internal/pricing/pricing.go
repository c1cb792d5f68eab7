// Package pricing builds and queries the per-model price book from the
// OpenRouter models feed.
package pricing

import (
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/johnbean393/orstats/internal/model"
)

// DefaultMatchThreshold is the minimum token-set similarity for the fuzzy
// slug fallback in Lookup. Empirical tuning carried over from production
// observation, not a hard invariant.
const DefaultMatchThreshold = 0.7

// RawEntry is one model entry from the pricing feed. Price fields arrive
// as strings and may be empty or malformed.
type RawEntry struct {
	ID            string     `json:"id"`
	CanonicalSlug string     `json:"canonical_slug"`
	Name          string     `json:"name"`
	Pricing       RawPricing `json:"pricing"`
}

// RawPricing holds the feed's per-token price strings.
type RawPricing struct {
	Prompt            string `json:"prompt"`
	Completion        string `json:"completion"`
	InternalReasoning string `json:"internal_reasoning"`
	Image             string `json:"image"`
	WebSearch         string `json:"web_search"`
	InputCacheRead    string `json:"input_cache_read"`
	InputCacheWrite   string `json:"input_cache_write"`
}

// ParsePrice leniently parses a feed price string. Empty or non-numeric
// input yields 0.0; it never fails.
func ParsePrice(value string) float64 {
	if value == "" {
		return 0.0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0.0
	}
	return f
}

// Book is a multi-key index from model identifier aliases to shared price
// records. One logical model is one record, reachable under both its
// canonical slug and its feed id.
type Book struct {
	// MatchThreshold gates the fuzzy fallback in Lookup. Defaults to
	// DefaultMatchThreshold; tests may lower it.
	MatchThreshold float64

	records map[string]*model.PriceRecord
	keys    []string // index keys, sorted, for deterministic fuzzy scans
}

// Build constructs a Book from feed entries. Each entry is indexed under
// both its canonical slug and its id (when present). Later entries
// overwrite earlier ones on key collision; feed order is authoritative.
// A reasoning price that resolves to zero inherits the completion price.
func Build(entries []RawEntry) *Book {
	b := &Book{
		MatchThreshold: DefaultMatchThreshold,
		records:        make(map[string]*model.PriceRecord, len(entries)*2),
	}

	for _, e := range entries {
		rec := &model.PriceRecord{
			ID:              e.ID,
			Name:            e.Name,
			PromptPrice:     ParsePrice(e.Pricing.Prompt),
			CompletionPrice: ParsePrice(e.Pricing.Completion),
			ReasoningPrice:  ParsePrice(e.Pricing.InternalReasoning),
			ImagePrice:      ParsePrice(e.Pricing.Image),
			WebSearchPrice:  ParsePrice(e.Pricing.WebSearch),
			CacheReadPrice:  ParsePrice(e.Pricing.InputCacheRead),
			CacheWritePrice: ParsePrice(e.Pricing.InputCacheWrite),
		}

		// Reasoning is billed at the completion rate unless overridden.
		if rec.ReasoningPrice == 0.0 {
			rec.ReasoningPrice = rec.CompletionPrice
		}

		if e.CanonicalSlug != "" {
			b.records[e.CanonicalSlug] = rec
		}
		if e.ID != "" {
			b.records[e.ID] = rec
		}
	}

	b.keys = lo.Keys(b.records)
	sort.Strings(b.keys)

	return b
}

// Len returns the number of index entries (aliases, not logical models).
func (b *Book) Len() int {
	return len(b.records)
}

// Lookup resolves a model identifier to its price record. It tries an
// exact match, then the identifier with any ":variant" suffix stripped,
// then a fuzzy scan over keys sharing the identifier's provider prefix.
// Leaderboard slugs and feed ids are versioned independently and often
// diverge only in a trailing date or suffix, hence the fallbacks.
func (b *Book) Lookup(slug string) (model.PriceRecord, bool) {
	if rec, ok := b.records[slug]; ok {
		return *rec, true
	}

	base, _, _ := strings.Cut(slug, ":")
	if rec, ok := b.records[base]; ok {
		return *rec, true
	}

	provider, _, _ := strings.Cut(slug, "/")
	prefix := provider + "/"
	for _, key := range b.keys {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		if slugSimilarity(slug, key) > b.MatchThreshold {
			return *b.records[key], true
		}
	}

	return model.PriceRecord{}, false
}

// DisplayName resolves a human-readable name for a slug: the feed name
// under the exact slug, then under the base slug, else a title-cased form
// of the slug's model segment.
func (b *Book) DisplayName(slug string) string {
	if rec, ok := b.records[slug]; ok && rec.Name != "" {
		return rec.Name
	}
	base, _, _ := strings.Cut(slug, ":")
	if rec, ok := b.records[base]; ok && rec.Name != "" {
		return rec.Name
	}

	part := slug
	if i := strings.LastIndex(part, "/"); i >= 0 {
		part = part[i+1:]
	}
	part, _, _ = strings.Cut(part, ":")
	return titleCase(strings.ReplaceAll(part, "-", " "))
}

// slugSimilarity is the Jaccard index over lowercase tokens split on
// whitespace, hyphens, and dots.
func slugSimilarity(a, b string) float64 {
	aParts := slugTokens(a)
	bParts := slugTokens(b)
	if len(aParts) == 0 || len(bParts) == 0 {
		return 0.0
	}

	intersection := 0
	for tok := range aParts {
		if _, ok := bParts[tok]; ok {
			intersection++
		}
	}
	union := len(aParts) + len(bParts) - intersection
	return float64(intersection) / float64(union)
}

func slugTokens(s string) map[string]struct{} {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, ".", " ")

	set := make(map[string]struct{})
	for _, tok := range strings.Fields(s) {
		set[tok] = struct{}{}
	}
	return set
}

// titleCase uppercases the first character of each space-separated word.
// Letters after digits within a word stay lowercase, so "gpt 4o" becomes
// "Gpt 4o" rather than "Gpt 4O".
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
