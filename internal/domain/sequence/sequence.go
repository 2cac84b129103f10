package sequence

import "context"

// Entity classes with their own ID space. Values double as the collection
// (table) name so a fresh counter can be seeded from existing rows.
const (
	ClassApplications = "applications"
	ClassJudgments    = "judgments"
	ClassContracts    = "contracts"
	ClassBalances     = "balances"
	ClassEntries      = "entries"
	ClassRepayments   = "repayments"
	ClassTerms        = "terms"
	ClassAcceptances  = "acceptances"
)

// Allocator hands out collision-free, monotonically increasing integer IDs
// per entity class. Callers rely on uniqueness and monotonicity only; gaps
// are fine. Retired (soft-deleted) records keep occupying their IDs.
//
// Next must be called inside a storage transaction: the allocation commits
// or rolls back together with the record that consumes the ID.
type Allocator interface {
	Next(ctx context.Context, class string) (uint64, error)
}
