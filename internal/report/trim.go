package report

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// maxInputTokens caps the user content sent to the LLM, leaving room for the
// system prompt and the reply inside common context windows.
const maxInputTokens = 100000

// trimmer truncates text to a token budget.
type trimmer struct {
	tokenizer *tiktoken.Tiktoken
	budget    int
}

// newTrimmer creates a trimmer for the given model's tokenizer, falling back
// to cl100k_base for unknown models.
func newTrimmer(model string, budget int) (*trimmer, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil, fmt.Errorf("get tokenizer: %w", err)
		}
	}
	return &trimmer{tokenizer: enc, budget: budget}, nil
}

// Trim returns text cut to the token budget. Content under budget is
// returned unchanged.
func (t *trimmer) Trim(text string) string {
	tokens := t.tokenizer.Encode(text, nil, nil)
	if len(tokens) <= t.budget {
		return text
	}
	return t.tokenizer.Decode(tokens[:t.budget]) + "\n\n[Content truncated]"
}
