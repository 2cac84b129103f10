package uow

import (
	"context"

	"loanledger/internal/domain/agreement"
	"loanledger/internal/domain/application"
	"loanledger/internal/domain/contract"
	"loanledger/internal/domain/judgment"
	"loanledger/internal/domain/ledger"
	"loanledger/internal/domain/sequence"
)

// Repos bundles every repository bound to one transactional handle.
type Repos struct {
	Applications application.Repository
	Judgments    judgment.Repository
	Contracts    contract.Repository
	Balances     ledger.BalanceRepository
	Entries      ledger.EntryRepository
	Repayments   ledger.RepaymentRepository
	Terms        agreement.TermsRepository
	Acceptances  agreement.AcceptanceRepository
	Sequences    sequence.Allocator
}

type UnitOfWork interface {
	// WithinTx runs fn atomically: every write commits together or, on any
	// returned error, rolls back together. The error propagates unchanged.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinApplicationTx locks the application row first and passes it in.
	// All balance mutations for one application serialize on this lock,
	// which is what keeps concurrent repayments from both reading the
	// pre-decrement balance.
	WithinApplicationTx(ctx context.Context, applicationID uint64, fn func(r Repos, a *application.Application) error) error
}
