package services

import (
	"fmt"

	"github.com/jdkato/prose/v2"
)

// LanguageModel is the linguistic preprocessing collaborator behind the
// primary entity extraction strategy. The concrete model is chosen once at
// startup and is read-only, so it is safe to share across requests.
type LanguageModel interface {
	Tokenize(text string) ([]string, error)
}

type proseModel struct{}

// NewProseModel returns the prose-backed language model.
func NewProseModel() LanguageModel {
	return proseModel{}
}

func (proseModel) Tokenize(text string) ([]string, error) {
	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize text: %w", err)
	}

	tokens := doc.Tokens()
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Text)
	}
	return out, nil
}
