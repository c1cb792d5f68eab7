package report

import (
	"strings"
	"testing"

	"github.com/johnbean393/orstats/internal/model"
)

func snapshot(date string, revenue float64) model.RevenueReport {
	return model.RevenueReport{
		Date:         date,
		TotalRevenue: revenue,
		TotalTokens:  2_000_000_000,
		TotalModels:  2,
		PaidModels:   1,
		FreeModels:   1,
		Models: []model.RevenueRecord{
			{
				Rank:             1,
				Slug:             "anthropic/claude-sonnet-4",
				Name:             "Anthropic: Claude Sonnet 4 (new)",
				TotalTokens:      1_500_000_000,
				EstimatedRevenue: revenue,
				PromptRatio:      0.7,
				CompletionRatio:  0.3,
				PromptPrice:      0.000003,
				CompletionPrice:  0.000015,
				PercentChange:    12,
			},
			{
				Rank:        2,
				Slug:        "meta-llama/llama-4:free",
				Name:        "Meta: Llama 4",
				TotalTokens: 500_000_000,
				IsFree:      true,
			},
		},
		TokenBreakdown: model.TokenBreakdown{
			PromptTokens:     1_000_000_000,
			CompletionTokens: 400_000_000,
			ReasoningTokens:  100_000_000,
			CachedTokens:     250_000_000,
		},
	}
}

func TestGenerate_Sections(t *testing.T) {
	current := snapshot("2025-08-24", 50_000)
	history := []model.RevenueReport{snapshot("2025-08-17", 45_000), current}

	out := Generate(current, history)

	for _, want := range []string{
		"# OpenRouter Inference Revenue Statistics",
		"**Last updated:** 2025-08-24",
		"## Summary",
		"## Revenue Over Time",
		"## Revenue by Model",
		"## Revenue Share",
		"## Token Type Distribution",
		"## Model Breakdown",
		"## Methodology",
		"xychart-beta",
		"pie",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	if !strings.Contains(out, "[Anthropic: Claude Sonnet 4 (new)](https://openrouter.ai/anthropic/claude-sonnet-4)") {
		t.Error("model breakdown link missing")
	}
}

func TestGenerate_SanitizesMermaidLabels(t *testing.T) {
	current := snapshot("2025-08-24", 50_000)
	out := Generate(current, []model.RevenueReport{current})

	// Parentheses break Mermaid pie labels; the raw name must not appear
	// inside any chart block.
	start := strings.Index(out, "## Revenue Share")
	end := strings.Index(out[start:], "## Token Type Distribution")
	pieBlock := out[start : start+end]
	if strings.Contains(pieBlock, "(new)") {
		t.Error("pie chart label kept parentheses")
	}
}

func TestGenerate_FreeModelsExcludedFromRevenueCharts(t *testing.T) {
	current := snapshot("2025-08-24", 50_000)
	out := Generate(current, []model.RevenueReport{current})

	start := strings.Index(out, "## Revenue by Model")
	end := strings.Index(out[start:], "## Revenue Share")
	barBlock := out[start : start+end]
	if strings.Contains(barBlock, "Llama") {
		t.Error("free model appeared in the revenue bar chart")
	}

	// The breakdown table still lists it.
	if !strings.Contains(out, "Meta: Llama 4") {
		t.Error("free model missing from the breakdown table")
	}
}

func TestGenerate_TokenDistributionSplitsReasoning(t *testing.T) {
	current := snapshot("2025-08-24", 50_000)
	out := Generate(current, []model.RevenueReport{current})

	// Completion includes reasoning; the pie shows the remainder
	// (400M - 100M = 300M) as response tokens.
	if !strings.Contains(out, `"Response Tokens - 300.0M"`) {
		t.Error("response token slice missing or miscomputed")
	}
	if !strings.Contains(out, `"Reasoning Tokens - 100.0M"`) {
		t.Error("reasoning token slice missing")
	}
}

func TestGenerate_NoHistoryChart(t *testing.T) {
	current := snapshot("2025-08-24", 50_000)
	out := Generate(current, nil)
	if strings.Contains(out, "## Revenue Over Time") {
		t.Error("time chart rendered without history")
	}
}

func TestSanitizeMermaidLabel(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`OpenAI: GPT-5 (preview)`, "OpenAI - GPT-5 preview"},
		{`A "quoted" name`, "A 'quoted' name"},
		{"plain", "plain"},
	}
	for _, c := range cases {
		if got := sanitizeMermaidLabel(c.in); got != c.want {
			t.Errorf("sanitizeMermaidLabel(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTruncateLabel(t *testing.T) {
	if got := truncateLabel("Anthropic - Claude Sonnet 4", 20); got != "Claude Sonnet 4" {
		t.Errorf("truncateLabel = %q, want provider prefix dropped", got)
	}
	got := truncateLabel("an-extremely-long-model-name-that-keeps-going", 20)
	if len(got) != 20 || !strings.HasSuffix(got, "..") {
		t.Errorf("truncateLabel = %q, want 20 chars ending in ..", got)
	}
}

func TestNiceAxisMax(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{0, 1000},
		{120, 200},
		{250, 300},
		{480, 500},
		{700, 800},
		{900, 1000},
	}
	for _, c := range cases {
		if got := niceAxisMax(c.in); got != c.want {
			t.Errorf("niceAxisMax(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}
