// Package inference wraps the external text-understanding collaborator used
// for the ambiguous free-form import path. Its output is best-effort and
// untrusted: every candidate field is re-validated through the normalizers
// before anything is persisted.
package inference

import "context"

// Candidate is one raw extraction result. All fields are strings as the
// model produced them; nothing here has been validated.
type Candidate struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Business    string `json:"business"`
}

// Extractor asks an external model for structured transaction candidates
// from free-form text.
type Extractor interface {
	Extract(ctx context.Context, raw string) ([]Candidate, error)
}
