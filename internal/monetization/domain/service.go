package domain

import "context"

// Service runs the waterfall. Evaluate is read-only and advisory; Commit is
// the authoritative step and writes at most one consumption row per listing.
type Service interface {
	Evaluate(ctx context.Context, req EvaluateRequest) (*Decision, error)
	Commit(ctx context.Context, req CommitRequest) (*Receipt, error)
}
