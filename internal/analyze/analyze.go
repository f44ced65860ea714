// Package analyze orchestrates the classification pipeline: input
// validation, extraction, normalization, and classification with a
// transparent heuristic fallback. For any classifiable input the pipeline
// terminates in a complete report; external classifier failures never reach
// the caller.
package analyze

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/triago/triago/internal/classify"
	"github.com/triago/triago/internal/extract"
	"github.com/triago/triago/internal/normalize"
)

// ErrMissingInput indicates the caller supplied neither a non-blank text
// nor a file, or supplied both at once.
var ErrMissingInput = errors.New("envie um texto ou um arquivo (.txt ou .pdf) para a análise do email")

// Input is one request's raw material. Exactly one of Text (non-blank
// after trimming) and File must be set.
type Input struct {
	Text string
	File *extract.Upload
}

// Report is the serialized outcome of one analysis. Category, reply and
// confidence are always populated; Content carries the normalized text for
// observability.
type Report struct {
	Category       classify.Category `json:"category"`
	SuggestedReply string            `json:"suggested_reply"`
	Confidence     float64           `json:"confidence"`
	Reason         string            `json:"reason,omitempty"`
	ExtractedChars int               `json:"extracted_chars,omitempty"`
	Content        string            `json:"content,omitempty"`
}

// Analyzer runs the pipeline. Primary may be nil when the LLM classifier
// could not be configured at startup; Fallback must always be set and must
// never fail.
type Analyzer struct {
	Primary  classify.Classifier
	Fallback classify.Classifier
}

// Analyze validates the input, extracts and normalizes the content, and
// classifies it. Extraction and validation errors propagate as caller
// errors; classifier failures are absorbed by falling back to the
// deterministic heuristic on the same normalized content, with the reason
// annotated so the degradation stays observable.
func (a *Analyzer) Analyze(ctx context.Context, in Input) (*Report, error) {
	content, err := a.resolveContent(in)
	if err != nil {
		return nil, err
	}

	normalized := normalize.Normalize(content)
	if normalized == "" {
		return nil, fmt.Errorf("nenhum conteúdo classificável após a normalização: %w", extract.ErrContentEmpty)
	}

	result := a.classifyWithFallback(ctx, normalized)
	return &Report{
		Category:       result.Category,
		SuggestedReply: result.SuggestedReply,
		Confidence:     result.Confidence,
		Reason:         result.Reason,
		ExtractedChars: utf8.RuneCountInString(normalized),
		Content:        normalized,
	}, nil
}

func (a *Analyzer) resolveContent(in Input) (string, error) {
	text := strings.TrimSpace(in.Text)
	hasText := text != ""
	hasFile := in.File != nil
	if hasText == hasFile {
		// Neither or both: the caller must pick exactly one channel.
		return "", ErrMissingInput
	}
	if hasText {
		return text, nil
	}
	return extract.Text(*in.File)
}

func (a *Analyzer) classifyWithFallback(ctx context.Context, normalized string) classify.Result {
	cause := "classificador principal indisponível"
	if a.Primary != nil {
		result, err := a.Primary.Classify(ctx, normalized)
		if err == nil {
			return result
		}
		log.Warn().Err(err).Msg("classificador principal falhou; usando heurística")
		cause = "falha ao consultar o classificador principal"
	}
	// The heuristic is total: it classifies any content without error.
	result, _ := a.Fallback.Classify(ctx, normalized)
	result.Reason = fmt.Sprintf("fallback: %s; %s", cause, result.Reason)
	return result
}
