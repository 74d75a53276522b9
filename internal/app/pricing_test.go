package app

import "testing"

func TestLookupModelPricing(t *testing.T) {
	p, ok := LookupModelPricing("openai", "gpt-4")
	if !ok {
		t.Fatalf("expected pricing for openai/gpt-4")
	}
	if p.InputUSDPerMTok != 30.0 || p.OutputUSDPerMTok != 60.0 {
		t.Fatalf("gpt-4 pricing = %+v, want 30/60", p)
	}

	if _, ok := LookupModelPricing("openai", "unknown-model"); ok {
		t.Fatalf("unknown model should have no pricing")
	}
	if _, ok := LookupModelPricing("unknownprovider", "gpt-4"); ok {
		t.Fatalf("unknown provider should have no pricing")
	}
}

func TestLocalModelsAreFree(t *testing.T) {
	p, ok := LookupModelPricing("local", "anything")
	if !ok {
		t.Fatalf("local pricing should always resolve")
	}
	if p.InputUSDPerMTok != 0 || p.OutputUSDPerMTok != 0 {
		t.Fatalf("local pricing should be zero, got %+v", p)
	}
	if cost := EstimateCost("local", "anything", 1_000_000, 1_000_000); cost != 0 {
		t.Fatalf("local cost = %v, want 0", cost)
	}
}

func TestEstimateCost(t *testing.T) {
	// 1M input at $30 + 500k output at $60.
	got := EstimateCost("openai", "gpt-4", 1_000_000, 500_000)
	want := 30.0 + 30.0
	if got != want {
		t.Fatalf("EstimateCost = %v, want %v", got, want)
	}
	if got := EstimateCost("openai", "unknown-model", 1000, 1000); got != 0 {
		t.Fatalf("unknown model cost = %v, want 0", got)
	}
}

func TestContextWindowTokens(t *testing.T) {
	tests := []struct {
		model string
		want  int
		ok    bool
	}{
		{"openai/gpt-4", 8_192, true},
		{"gpt-4-turbo", 128_000, true},
		{"anthropic/claude-3-sonnet-20240229", 200_000, true},
		{"", 0, false},
		{"mystery-model", 0, false},
	}
	for _, tc := range tests {
		got, ok := ContextWindowTokens(tc.model)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ContextWindowTokens(%q) = (%d, %v), want (%d, %v)", tc.model, got, ok, tc.want, tc.ok)
		}
	}
}

func TestEstimateTokens(t *testing.T) {
	if got := EstimateTokens(""); got != 0 {
		t.Fatalf("EstimateTokens(empty) = %d, want 0", got)
	}
	if got := EstimateTokens("hello world, this is a prompt"); got <= 0 {
		t.Fatalf("EstimateTokens should be positive, got %d", got)
	}
}
