// Package scrape recovers structured usage data from the rankings page
// and per-model pages. The data lives in embedded script payloads with no
// formal schema, so extraction is tolerant pattern matching plus bounded
// byte scanning rather than DOM parsing.
package scrape

import (
	"errors"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/johnbean393/orstats/internal/model"
)

// ErrNoDataset indicates that no script segment on the rankings page
// yielded any model-level chart entries. Callers must treat this as a
// hard failure for the fetch; there is no synthetic fallback.
var ErrNoDataset = errors.New("scrape: no chart dataset found")

const (
	// Segments smaller than this cannot hold the real dataset.
	minChartSegment = 1000
	// Bound on the brace scan per entry, to cap cost on malformed input.
	maxEntryScan = 10000
)

var (
	scriptRe = regexp.MustCompile(`(?s)<script[^>]*>(.*?)</script>`)
	// Marks the start of one weekly entry: an ISO date "x" followed by
	// the per-model "ys" object.
	chartEntryRe = regexp.MustCompile(`"x":"(\d{4}-\d{2}-\d{2})[^"]*","ys":\{`)
	chartPairRe  = regexp.MustCompile(`"([^"]+)":(\d+(?:\.\d+)?)`)
)

// ExtractChartHistory scans every embedded script payload on a rankings
// page and returns the per-model weekly volume series, sorted ascending
// by week start.
//
// The page carries several chart datasets with superficially identical
// syntax (request counts, provider aggregates). The model-level one is
// identified by its keys: only entries with at least one "/"-bearing key
// (the provider/model separator) are accepted, and the script yielding
// the most accepted entries wins. Ties favor the first script found.
func ExtractChartHistory(html string) ([]model.WeeklyChartEntry, error) {
	var best []model.WeeklyChartEntry

	for _, m := range scriptRe.FindAllStringSubmatch(html, -1) {
		script := m[1]
		if len(script) < minChartSegment {
			continue
		}

		// Payloads double-escape quotes and backslashes.
		unescaped := strings.ReplaceAll(script, `\"`, `"`)
		unescaped = strings.ReplaceAll(unescaped, `\\`, `\`)

		entries := parseChartSegment(unescaped)
		if len(entries) > len(best) {
			best = entries
		}
	}

	if len(best) == 0 {
		return nil, ErrNoDataset
	}

	sort.Slice(best, func(i, j int) bool {
		return best[i].WeekStart < best[j].WeekStart
	})
	return best, nil
}

func parseChartSegment(s string) []model.WeeklyChartEntry {
	var entries []model.WeeklyChartEntry

	for _, loc := range chartEntryRe.FindAllStringSubmatchIndex(s, -1) {
		date := s[loc[2]:loc[3]]
		braceStart := loc[1] - 1 // the opening brace of the ys object

		braceEnd, ok := matchBrace(s, braceStart)
		if !ok {
			continue
		}

		pairs := chartPairRe.FindAllStringSubmatch(s[braceStart:braceEnd+1], -1)
		if len(pairs) == 0 {
			continue
		}

		hasModelSlugs := false
		for _, p := range pairs {
			if strings.Contains(p[1], "/") {
				hasModelSlugs = true
				break
			}
		}
		if !hasModelSlugs {
			continue
		}

		entry := model.WeeklyChartEntry{
			WeekStart: date,
			Models:    make(map[string]int64, len(pairs)),
		}
		for _, p := range pairs {
			f, err := strconv.ParseFloat(p[2], 64)
			if err != nil {
				continue
			}
			tokens := int64(f)
			entry.Total += tokens
			if p[1] == "Others" {
				entry.Others = tokens
			} else {
				entry.Models[p[1]] = tokens
			}
		}
		entries = append(entries, entry)
	}

	return entries
}

// matchBrace finds the closing brace matching the opening brace at start,
// via a depth-counted walk bounded by maxEntryScan. The ys object nests
// arbitrarily, which a regular expression cannot match.
func matchBrace(s string, start int) (int, bool) {
	limit := start + maxEntryScan
	if limit > len(s) {
		limit = len(s)
	}

	depth := 0
	for i := start; i < limit; i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
