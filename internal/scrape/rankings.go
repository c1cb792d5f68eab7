package scrape

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/johnbean393/orstats/internal/model"
)

// navPrefixes are link targets on the rankings page that are navigation,
// not model slugs.
var navPrefixes = []string{
	"docs/", "chat/", "settings/", "compare/", "apps", "models",
	"rankings", "enterprise", "pricing",
}

var (
	gridRowRe   = regexp.MustCompile(`<div[^>]+class="[^"]*grid grid-cols-12`)
	modelLinkRe = regexp.MustCompile(`(?s)<a[^>]+class="[^"]*text-foreground[^"]*"[^>]*href="([^"]*)"[^>]*>(.*?)</a>`)
	hrefFirstRe = regexp.MustCompile(`(?s)<a[^>]+href="([^"]*)"[^>]*class="[^"]*text-foreground[^"]*"[^>]*>(.*?)</a>`)
	tokenColRe  = regexp.MustCompile(`(?s)<div[^>]+class="[^"]*col-span-4[^"]*"[^>]*>(.*?)(?:<div[^>]+class="[^"]*col-span|$)`)
	tokenValRe  = regexp.MustCompile(`(?i)^([0-9.]+)([TGBMK])tokens`)
	pctRe       = regexp.MustCompile(`(\d+)%`)
	redSvgRe    = regexp.MustCompile(`<svg[^>]+class="[^"]*text-red`)
	tagRe       = regexp.MustCompile(`<[^>]*>`)
)

// ParseRankings extracts the ranked model rows from the rankings page.
// Rank positions are dense and assigned in page order; navigation links
// and non-slug hrefs are skipped.
func ParseRankings(html string) []model.RankedModel {
	rowStarts := gridRowRe.FindAllStringIndex(html, -1)

	var results []model.RankedModel
	rank := 0

	for i, start := range rowStarts {
		end := len(html)
		if i+1 < len(rowStarts) {
			end = rowStarts[i+1][0]
		}
		row := html[start[0]:end]

		href, name, ok := findModelLink(row)
		if !ok {
			continue
		}
		slug := strings.TrimPrefix(href, "/")
		if slug == "" || isNavLink(slug) || !strings.Contains(slug, "/") {
			continue
		}

		rank++
		rm := model.RankedModel{
			Rank: rank,
			Slug: slug,
			Name: name,
		}

		if col := tokenColRe.FindStringSubmatch(row); col != nil {
			colText := flattenText(col[1])

			if tv := tokenValRe.FindStringSubmatch(colText); tv != nil {
				rm.TotalTokens = ParseTokenCount(tv[1] + tv[2])
			}
			if pv := pctRe.FindStringSubmatch(colText); pv != nil {
				pct, _ := strconv.Atoi(pv[1])
				// Direction comes from the trend arrow color.
				if redSvgRe.MatchString(col[1]) {
					pct = -pct
				}
				rm.PercentChange = pct
			}
		}

		results = append(results, rm)
	}

	return results
}

func findModelLink(row string) (href, name string, ok bool) {
	if m := modelLinkRe.FindStringSubmatch(row); m != nil {
		return m[1], linkText(m[2]), true
	}
	// Attribute order is not stable between page builds.
	if m := hrefFirstRe.FindStringSubmatch(row); m != nil {
		return m[1], linkText(m[2]), true
	}
	return "", "", false
}

func isNavLink(slug string) bool {
	for _, p := range navPrefixes {
		if strings.HasPrefix(slug, p) {
			return true
		}
	}
	return false
}

// flattenText strips tags and joins the remaining text fragments with no
// separator, mirroring how the page's cell text reads when rendered
// (e.g. "1.16Ttokens222%"). Only for the stat columns; display names go
// through linkText, which keeps their interior spaces.
func flattenText(s string) string {
	s = tagRe.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), "")
}

// linkText strips tags and normalizes whitespace to single spaces.
func linkText(s string) string {
	s = tagRe.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

var tokenCountRe = regexp.MustCompile(`(?i)^([0-9.]+)\s*([TGBMK])?$`)

// ParseTokenCount parses human-readable token counts like "1.16T",
// "706B", "445M", or "13.4K". Returns 0 if unparsable.
func ParseTokenCount(text string) int64 {
	text = strings.ReplaceAll(strings.TrimSpace(text), ",", "")

	m := tokenCountRe.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	number, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}

	var multiplier float64 = 1
	switch strings.ToUpper(m[2]) {
	case "T":
		multiplier = 1_000_000_000_000
	case "B":
		multiplier = 1_000_000_000
	case "M":
		multiplier = 1_000_000
	case "K":
		multiplier = 1_000
	}
	return int64(number * multiplier)
}
