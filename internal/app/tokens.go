package app

import "unicode/utf8"

// EstimateTokens returns a conservative token-count estimate for a piece of
// text. This is not a tokenizer; it only feeds the context-usage display and
// cost estimates, and over-estimating slightly is preferable to under.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	// BPE tokenizers land around 3-4 chars/token for English-ish text.
	b := len(text)
	r := utf8.RuneCountInString(text)
	byBytes := b / 3
	byRunes := r / 2
	if byBytes < byRunes {
		return byRunes
	}
	return byBytes
}
