// Package classify decides whether an email needs action and drafts a
// suggested reply. Two implementations exist behind the Classifier
// interface: an LLM-backed primary and a deterministic keyword heuristic
// used as its fallback.
package classify

import "context"

// Category is one of exactly two fixed wire values. The literals are part
// of the external contract and must not be renamed.
type Category string

const (
	// ActionRequired marks emails needing a decision, response or follow-up.
	ActionRequired Category = "PRODUTIVO"
	// Informational marks emails needing no immediate action.
	Informational Category = "IMPRODUTIVO"
)

// Result is a fully populated classification. Confidence is always in
// [0,1] and SuggestedReply is never empty.
type Result struct {
	Category       Category
	SuggestedReply string
	Confidence     float64
	Reason         string
}

// Classifier turns normalized email content into a Result. Implementations
// must be safe for concurrent use; the orchestrator shares one instance
// across requests.
type Classifier interface {
	Classify(ctx context.Context, content string) (Result, error)
}
