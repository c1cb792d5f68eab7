package pricing

import (
	"testing"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"0.000003", 0.000003},
		{"0", 0},
		{"", 0},
		{"not-a-number", 0},
		{" 0.0000015 ", 0.0000015},
		{"-1", -1},
	}
	for _, c := range cases {
		if got := ParsePrice(c.in); got != c.want {
			t.Errorf("ParsePrice(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func testEntries() []RawEntry {
	return []RawEntry{
		{
			ID:            "openai/gpt-5.2",
			CanonicalSlug: "openai/gpt-5.2-2025-11-01",
			Name:          "OpenAI: GPT-5.2",
			Pricing: RawPricing{
				Prompt:         "0.000003",
				Completion:     "0.000015",
				InputCacheRead: "0.0000005",
			},
		},
		{
			ID:            "deepseek/deepseek-v3",
			CanonicalSlug: "deepseek/deepseek-v3",
			Name:          "DeepSeek: DeepSeek V3",
			Pricing: RawPricing{
				Prompt:            "0.0000002",
				Completion:        "0.0000008",
				InternalReasoning: "0.000001",
			},
		},
		{
			ID:   "meta-llama/llama-4-free",
			Name: "Meta: Llama 4 (free)",
		},
	}
}

func TestBuild_IndexesBothKeys(t *testing.T) {
	book := Build(testEntries())

	byID, ok := book.Lookup("openai/gpt-5.2")
	if !ok {
		t.Fatal("lookup by id failed")
	}
	bySlug, ok := book.Lookup("openai/gpt-5.2-2025-11-01")
	if !ok {
		t.Fatal("lookup by canonical slug failed")
	}
	if byID.PromptPrice != bySlug.PromptPrice || byID.PromptPrice != 0.000003 {
		t.Errorf("aliases resolve differently: %v vs %v", byID, bySlug)
	}
}

func TestBuild_ReasoningFallsBackToCompletion(t *testing.T) {
	book := Build(testEntries())

	gpt, _ := book.Lookup("openai/gpt-5.2")
	if gpt.ReasoningPrice != gpt.CompletionPrice {
		t.Errorf("ReasoningPrice = %v, want completion price %v", gpt.ReasoningPrice, gpt.CompletionPrice)
	}

	// An explicit reasoning price is kept.
	ds, _ := book.Lookup("deepseek/deepseek-v3")
	if ds.ReasoningPrice != 0.000001 {
		t.Errorf("ReasoningPrice = %v, want 0.000001 (explicit)", ds.ReasoningPrice)
	}
}

func TestBuild_LaterEntryWins(t *testing.T) {
	entries := []RawEntry{
		{ID: "a/model", Pricing: RawPricing{Prompt: "0.000001"}},
		{ID: "a/model", Pricing: RawPricing{Prompt: "0.000002"}},
	}
	book := Build(entries)

	rec, ok := book.Lookup("a/model")
	if !ok {
		t.Fatal("lookup failed")
	}
	if rec.PromptPrice != 0.000002 {
		t.Errorf("PromptPrice = %v, want 0.000002 (later entry)", rec.PromptPrice)
	}
}

func TestLookup_StripsVariantSuffix(t *testing.T) {
	book := Build(testEntries())

	rec, ok := book.Lookup("deepseek/deepseek-v3:free")
	if !ok {
		t.Fatal("variant-suffixed lookup failed")
	}
	if rec.PromptPrice != 0.0000002 {
		t.Errorf("PromptPrice = %v, want base model price", rec.PromptPrice)
	}
}

func TestLookup_FuzzyMatchesWithinProvider(t *testing.T) {
	book := Build([]RawEntry{
		{
			ID:   "openai/gpt-5-chat-latest",
			Name: "OpenAI: GPT-5 Chat",
			Pricing: RawPricing{
				Prompt: "0.00000125",
			},
		},
	})

	// {openai/gpt, 5, chat} vs {openai/gpt, 5, chat, latest}: 3/4 = 0.75
	rec, ok := book.Lookup("openai/gpt-5-chat")
	if !ok {
		t.Fatal("fuzzy lookup failed")
	}
	if rec.PromptPrice != 0.00000125 {
		t.Errorf("PromptPrice = %v, want 0.00000125", rec.PromptPrice)
	}

	// Same tokens against a different provider prefix must not match.
	if _, ok := book.Lookup("azure/gpt-5-chat"); ok {
		t.Error("fuzzy lookup crossed provider boundary")
	}
}

func TestLookup_RespectsThreshold(t *testing.T) {
	book := Build([]RawEntry{
		{ID: "openai/gpt-5-mini-high-2025", Pricing: RawPricing{Prompt: "0.000001"}},
	})

	// {openai/gpt, 5, turbo} vs {openai/gpt, 5, mini, high, 2025}: 2/6 = 0.33
	if _, ok := book.Lookup("openai/gpt-5-turbo"); ok {
		t.Fatal("lookup matched below default threshold")
	}

	book.MatchThreshold = 0.3
	if _, ok := book.Lookup("openai/gpt-5-turbo"); !ok {
		t.Error("lowered threshold did not admit the match")
	}
}

func TestLookup_Missing(t *testing.T) {
	book := Build(testEntries())
	if rec, ok := book.Lookup("unknown/model"); ok {
		t.Errorf("lookup of unknown slug returned %v", rec)
	}
}

func TestDisplayName(t *testing.T) {
	book := Build(testEntries())

	if got := book.DisplayName("openai/gpt-5.2"); got != "OpenAI: GPT-5.2" {
		t.Errorf("DisplayName = %q, want feed name", got)
	}
	if got := book.DisplayName("deepseek/deepseek-v3:free"); got != "DeepSeek: DeepSeek V3" {
		t.Errorf("DisplayName = %q, want base model feed name", got)
	}
	if got := book.DisplayName("acme/super-fast-model:beta"); got != "Super Fast Model" {
		t.Errorf("DisplayName = %q, want title-cased slug segment", got)
	}
	// Letters after digits stay lowercase when title-casing a slug.
	if got := book.DisplayName("acme/gpt-4o"); got != "Gpt 4o" {
		t.Errorf("DisplayName = %q, want \"Gpt 4o\"", got)
	}
}

func TestLen_CountsAliases(t *testing.T) {
	book := Build(testEntries())
	// gpt-5.2 has two distinct keys, deepseek's id and slug collide into
	// one, llama has only an id.
	if book.Len() != 4 {
		t.Errorf("Len = %d, want 4", book.Len())
	}
}
