// Package report generates the Markdown README with Mermaid charts and
// statistics tables from revenue snapshots.
package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/johnbean393/orstats/internal/cli"
	"github.com/johnbean393/orstats/internal/model"
)

// Generate renders the full README content for the current snapshot plus
// the historical series (ascending by date, usually including current).
func Generate(current model.RevenueReport, history []model.RevenueReport) string {
	sections := []string{
		header(current.Date),
		summary(current),
	}

	if len(history) > 0 {
		sections = append(sections, revenueOverTimeChart(history))
	}

	paid := lo.Filter(current.Models, func(r model.RevenueRecord, _ int) bool {
		return !r.IsFree
	})
	if len(paid) > 0 {
		top := paid
		if len(top) > 10 {
			top = top[:10]
		}
		sections = append(sections,
			revenueBarChart(top),
			revenuePieChart(top, current.TotalRevenue),
		)
	}

	if chart := tokenDistributionChart(current.TokenBreakdown); chart != "" {
		sections = append(sections, chart)
	}

	if len(current.Models) > 0 {
		sections = append(sections, modelTable(current.Models))
	}

	sections = append(sections, methodology())

	return strings.Join(sections, "\n\n") + "\n"
}

func header(date string) string {
	return fmt.Sprintf(`# OpenRouter Inference Revenue Statistics

> Estimated inference revenue across models on [OpenRouter](https://openrouter.ai/rankings), calculated from public usage data and pricing.

**Last updated:** %s`, date)
}

func summary(r model.RevenueReport) string {
	return fmt.Sprintf(`## Summary

| Metric | Value |
|--------|-------|
| Estimated Weekly Revenue | **%s** |
| Total Tokens Tracked | **%s** |
| Models Tracked | **%d** (%d paid, %d free) |`,
		cli.FormatDollars(r.TotalRevenue),
		cli.FormatTokens(r.TotalTokens),
		r.TotalModels, r.PaidModels, r.FreeModels)
}

func revenueOverTimeChart(history []model.RevenueReport) string {
	// Thin out x-axis labels so roughly 13 stay visible.
	labelInterval := len(history) / 13
	if labelInterval < 1 {
		labelInterval = 1
	}

	labels := make([]string, 0, len(history))
	values := make([]string, 0, len(history))
	maxRevenue := 0.0

	for i, snap := range history {
		values = append(values, fmt.Sprintf("%.2f", snap.TotalRevenue))
		if snap.TotalRevenue > maxRevenue {
			maxRevenue = snap.TotalRevenue
		}

		if i%labelInterval == 0 || i == len(history)-1 {
			if t, err := time.Parse("2006-01-02", snap.Date); err == nil {
				labels = append(labels, fmt.Sprintf("%q", t.Format("Jan 02, 06")))
			} else {
				labels = append(labels, fmt.Sprintf("%q", snap.Date))
			}
		} else {
			labels = append(labels, `" "`)
		}
	}

	return fmt.Sprintf("## Revenue Over Time\n\n"+
		"```mermaid\n"+
		"xychart-beta\n"+
		"    title \"Estimated Weekly Revenue\"\n"+
		"    x-axis [%s]\n"+
		"    y-axis \"Revenue ($)\" 0 --> %d\n"+
		"    bar [%s]\n"+
		"    line [%s]\n"+
		"```",
		strings.Join(labels, ", "),
		niceAxisMax(maxRevenue),
		strings.Join(values, ", "),
		strings.Join(values, ", "))
}

func revenueBarChart(models []model.RevenueRecord) string {
	labels := lo.Map(models, func(r model.RevenueRecord, _ int) string {
		return fmt.Sprintf("%q", truncateLabel(r.Name, 20))
	})
	values := lo.Map(models, func(r model.RevenueRecord, _ int) string {
		return fmt.Sprintf("%.2f", r.EstimatedRevenue)
	})

	maxVal := 0.0
	for _, r := range models {
		if r.EstimatedRevenue > maxVal {
			maxVal = r.EstimatedRevenue
		}
	}

	return fmt.Sprintf("## Revenue by Model (Top %d)\n\n"+
		"```mermaid\n"+
		"xychart-beta\n"+
		"    title \"Estimated Weekly Revenue by Model\"\n"+
		"    x-axis [%s]\n"+
		"    y-axis \"Revenue ($)\" 0 --> %d\n"+
		"    bar [%s]\n"+
		"```",
		len(models),
		strings.Join(labels, ", "),
		niceAxisMax(maxVal),
		strings.Join(values, ", "))
}

func revenuePieChart(models []model.RevenueRecord, totalRevenue float64) string {
	var lines []string
	shown := 0.0
	for _, r := range models {
		shown += r.EstimatedRevenue
		lines = append(lines, fmt.Sprintf("    \"%s %s\" : %.2f",
			sanitizeMermaidLabel(r.Name), cli.FormatDollars(r.EstimatedRevenue), r.EstimatedRevenue))
	}

	if other := totalRevenue - shown; other > 0 {
		lines = append(lines, fmt.Sprintf("    \"Other %s\" : %.2f",
			cli.FormatDollars(other), other))
	}

	return fmt.Sprintf("## Revenue Share\n\n"+
		"```mermaid\n"+
		"pie\n"+
		"    title Revenue Share by Model\n"+
		"%s\n"+
		"```", strings.Join(lines, "\n"))
}

func tokenDistributionChart(tb model.TokenBreakdown) string {
	// Completion includes reasoning; show the non-reasoning remainder as
	// response tokens so the slices don't overlap.
	responseOnly := tb.CompletionTokens - tb.ReasoningTokens
	if responseOnly < 0 {
		responseOnly = 0
	}

	var lines []string
	if tb.PromptTokens > 0 {
		lines = append(lines, fmt.Sprintf("    \"Prompt Tokens - %s\" : %d",
			cli.FormatTokens(tb.PromptTokens), tb.PromptTokens))
	}
	if tb.CachedTokens > 0 {
		lines = append(lines, fmt.Sprintf("    \"Cached Input Tokens - %s\" : %d",
			cli.FormatTokens(tb.CachedTokens), tb.CachedTokens))
	}
	if responseOnly > 0 {
		lines = append(lines, fmt.Sprintf("    \"Response Tokens - %s\" : %d",
			cli.FormatTokens(responseOnly), responseOnly))
	}
	if tb.ReasoningTokens > 0 {
		lines = append(lines, fmt.Sprintf("    \"Reasoning Tokens - %s\" : %d",
			cli.FormatTokens(tb.ReasoningTokens), tb.ReasoningTokens))
	}

	if len(lines) == 0 {
		return ""
	}

	return fmt.Sprintf("## Token Type Distribution\n\n"+
		"```mermaid\n"+
		"pie\n"+
		"    title Token Distribution Across All Tracked Models\n"+
		"%s\n"+
		"```", strings.Join(lines, "\n"))
}

func modelTable(models []model.RevenueRecord) string {
	var b strings.Builder
	b.WriteString("## Model Breakdown\n\n")
	b.WriteString("| Rank | Model | Total Tokens | Cached | Prompt % | Compl. % " +
		"| Input Price | Output Price | Est. Revenue | WoW |\n")
	b.WriteString("|------|-------|-------------|--------|----------|----------" +
		"|-------------|-------------|-------------|-----|\n")

	for i, m := range models {
		link := fmt.Sprintf("[%s](https://openrouter.ai/%s)", m.Name, m.Slug)
		b.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %.1f%% | %.1f%% | %s | %s | %s | %s |",
			m.Rank, link,
			cli.FormatTokens(m.TotalTokens),
			cli.FormatTokens(m.CachedTokens),
			m.PromptRatio*100, m.CompletionRatio*100,
			cli.FormatPricePerM(m.PromptPrice),
			cli.FormatPricePerM(m.CompletionPrice),
			cli.FormatDollars(m.EstimatedRevenue),
			cli.FormatWoW(m.PercentChange)))
		if i < len(models)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func methodology() string {
	return `## Methodology

This data is collected automatically from public sources:

1. **Model Pricing**: Fetched from the [OpenRouter API](https://openrouter.ai/api/v1/models) — per-token prices for prompt, completion, reasoning, and cache reads
2. **Usage Rankings**: Scraped from the [OpenRouter Rankings](https://openrouter.ai/rankings) page — top models by weekly token volume
3. **Token Breakdown**: Extracted from each model page's embedded daily analytics data — exact daily counts of prompt, completion, reasoning, and cached input tokens, summed over the most recent 7 full days

**Revenue Calculation**:
- ` + "`revenue = prompt_tokens × prompt_price + completion_tokens × output_price + cached_tokens × cache_read_price`" + `
- Completion tokens include reasoning tokens (standard OpenAI convention); reasoning is **not** double-counted
- Cached input tokens are charged at the discounted ` + "`input_cache_read`" + ` rate

**Caveats**:
- Revenue estimates use list prices; actual revenue may differ due to volume discounts or BYOK usage
- Only the top models from the rankings page are tracked; the long tail of smaller models is not included
- Free models (price = $0) contribute $0 to revenue regardless of usage volume

---

*Data collected by [orstats](https://github.com/johnbean393/orstats) and updated weekly via GitHub Actions.*`
}

// sanitizeMermaidLabel removes characters that break Mermaid syntax.
func sanitizeMermaidLabel(text string) string {
	replacer := strings.NewReplacer(
		`"`, "'",
		"(", "", ")", "",
		"[", "", "]", "",
		"{", "", "}", "",
		"#", "",
		":", " -",
		";", "",
	)
	return strings.TrimSpace(replacer.Replace(text))
}

// truncateLabel shortens a label for chart axes. "Provider - Model Name"
// keeps only the model name so several truncated provider prefixes don't
// become indistinguishable.
func truncateLabel(text string, maxLen int) string {
	text = sanitizeMermaidLabel(text)
	if _, after, found := strings.Cut(text, " - "); found {
		text = after
	}
	if len(text) > maxLen {
		return text[:maxLen-2] + ".."
	}
	return text
}

// niceAxisMax rounds a value up to a clean chart axis maximum.
func niceAxisMax(value float64) int {
	if value <= 0 {
		return 1000
	}
	magnitude := math.Pow(10, math.Floor(math.Log10(value)))
	normalized := value / magnitude

	var nice float64
	switch {
	case normalized <= 1.5:
		nice = 2
	case normalized <= 3:
		nice = 3
	case normalized <= 5:
		nice = 5
	case normalized <= 7.5:
		nice = 8
	default:
		nice = 10
	}
	return int(nice * magnitude)
}
