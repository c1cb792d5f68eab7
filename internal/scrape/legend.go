package scrape

import (
	"regexp"

	"github.com/johnbean393/orstats/internal/model"
)

// Legend labels mapped to their activity fields. The legend only shows
// prompt/completion/reasoning; cached tokens and request counts are not
// rendered there.
var legendPatterns = map[string]*regexp.Regexp{
	"Prompt":     legendRe("Prompt"),
	"Completion": legendRe("Completion"),
	"Reasoning":  legendRe("Reasoning"),
}

func legendRe(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?s)aria-label="` + label + `".*?` +
		`<div class="font-medium[^"]*"[^>]*>` + label + `</div>` +
		`.*?<div>([0-9.]+[TGBMK]?)</div>`)
}

// ExtractActivityLegend is the last-resort fallback when a model page has
// no embedded daily analytics: it reads the rounded totals from the HTML
// activity legend. Values are coarse (suffix-rounded), so the embedded
// data is always preferred.
func ExtractActivityLegend(html string) model.ActivityWindow {
	var w model.ActivityWindow

	if m := legendPatterns["Prompt"].FindStringSubmatch(html); m != nil {
		w.PromptTokens = ParseTokenCount(m[1])
	}
	if m := legendPatterns["Completion"].FindStringSubmatch(html); m != nil {
		w.CompletionTokens = ParseTokenCount(m[1])
	}
	if m := legendPatterns["Reasoning"].FindStringSubmatch(html); m != nil {
		w.ReasoningTokens = ParseTokenCount(m[1])
	}

	return w
}
