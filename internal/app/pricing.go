package app

import "strings"

// ModelPricing is USD per million tokens, split by direction.
type ModelPricing struct {
	InputUSDPerMTok  float64
	OutputUSDPerMTok float64
}

// Pricing data per provider and model. Callers should treat this as
// indicative; providers change prices without notice.
var modelPricing = map[string]map[string]ModelPricing{
	"openrouter": {
		"openai/gpt-4":                       {30.0, 60.0},
		"openai/gpt-4-turbo":                 {10.0, 30.0},
		"openai/gpt-3.5-turbo":               {0.5, 1.5},
		"anthropic/claude-3-opus-20240229":   {15.0, 75.0},
		"anthropic/claude-3-sonnet-20240229": {3.0, 15.0},
		"mistralai/mistral-large":            {4.0, 12.0},
		"google/gemini-pro":                  {0.5, 1.5},
	},
	"openai": {
		"gpt-4":         {30.0, 60.0},
		"gpt-4-turbo":   {10.0, 30.0},
		"gpt-3.5-turbo": {0.5, 1.5},
	},
	"anthropic": {
		"claude-3-opus-20240229":   {15.0, 75.0},
		"claude-3-sonnet-20240229": {3.0, 15.0},
		"claude-3-haiku-20240307":  {0.25, 1.25},
	},
}

// LookupModelPricing returns the price entry for a provider/model pair.
// Local models are always free.
func LookupModelPricing(provider, model string) (ModelPricing, bool) {
	if provider == "local" {
		return ModelPricing{}, true
	}
	models, ok := modelPricing[provider]
	if !ok {
		return ModelPricing{}, false
	}
	p, ok := models[model]
	return p, ok
}

// EstimateCost converts a token count into USD for the given backend.
// Unknown models cost zero rather than guessing.
func EstimateCost(provider, model string, inputTokens, outputTokens int) float64 {
	p, ok := LookupModelPricing(provider, model)
	if !ok {
		return 0
	}
	return float64(inputTokens)/1_000_000*p.InputUSDPerMTok +
		float64(outputTokens)/1_000_000*p.OutputUSDPerMTok
}

// ContextWindowTokens returns the known context window size for a model.
// Callers should still allow an explicit override because providers change
// limits.
func ContextWindowTokens(model string) (int, bool) {
	m := strings.ToLower(strings.TrimSpace(model))
	if m == "" {
		return 0, false
	}
	switch {
	case strings.Contains(m, "gpt-4-turbo"), strings.Contains(m, "gpt-4o"):
		return 128_000, true
	case strings.Contains(m, "gpt-4"):
		return 8_192, true
	case strings.Contains(m, "gpt-3.5"):
		return 16_385, true
	case strings.Contains(m, "claude-3"), strings.Contains(m, "claude"):
		return 200_000, true
	case strings.Contains(m, "gemini"):
		return 128_000, true
	case strings.Contains(m, "mistral"):
		return 32_000, true
	}
	return 0, false
}
