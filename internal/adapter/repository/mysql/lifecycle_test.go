package mysql

import (
	"context"
	"errors"
	"testing"

	contractDomain "loanledger/internal/domain/contract"
	"loanledger/internal/domain/fault"
	judgmentDomain "loanledger/internal/domain/judgment"
	ledgerDomain "loanledger/internal/domain/ledger"
	agreementUC "loanledger/internal/usecase/agreement"
	applicationUC "loanledger/internal/usecase/application"
	contractUC "loanledger/internal/usecase/contract"
	judgmentUC "loanledger/internal/usecase/judgment"
	ledgerUC "loanledger/internal/usecase/ledger"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// stack wires the real usecases over a real sqlite-backed unit of work, the
// same composition cmd/api performs against MySQL.
type stack struct {
	db           *gorm.DB
	applications *applicationUC.Usecase
	judgments    *judgmentUC.Usecase
	contracts    *contractUC.Usecase
	ledger       *ledgerUC.Usecase
	agreements   *agreementUC.Usecase
}

func newStack(t *testing.T) *stack {
	t.Helper()
	db := openTestDB(t)
	guow := NewGormUoW(db)
	return &stack{
		db:           db,
		applications: applicationUC.NewUsecase(NewApplicationRepository(db), guow),
		judgments:    judgmentUC.NewUsecase(NewJudgmentRepository(db), guow),
		contracts:    contractUC.NewUsecase(NewContractRepository(db), guow),
		ledger:       ledgerUC.NewUsecase(NewApplicationRepository(db), NewBalanceRepository(db), guow),
		agreements:   agreementUC.NewUsecase(NewTermsRepository(db), NewAcceptanceRepository(db), guow),
	}
}

// onboard runs an application through judgment, contract and activation and
// returns the application and contract IDs.
func (s *stack) onboard(t *testing.T, requested, approved int64) (uint64, uint64) {
	t.Helper()
	ctx := context.Background()

	a, err := s.applications.Create(ctx, applicationUC.CreateApplicationInput{
		Name:            "Budi",
		Phone:           "081234567890",
		Email:           "budi@example.com",
		RequestedAmount: decimal.NewFromInt(requested),
	})
	if err != nil {
		t.Fatalf("create application: %v", err)
	}
	if _, err := s.judgments.Create(ctx, judgmentUC.CreateJudgmentInput{
		ApplicationID:  a.ID,
		Name:           "risk-desk",
		ApprovalAmount: decimal.NewFromInt(approved),
		ApprovalRate:   5,
	}); err != nil {
		t.Fatalf("create judgment: %v", err)
	}
	j, err := s.judgments.GetByApplication(ctx, a.ID)
	if err != nil {
		t.Fatalf("get judgment: %v", err)
	}
	c, err := s.contracts.Create(ctx, contractUC.CreateContractInput{
		ApplicationID: a.ID,
		JudgmentID:    j.ID,
		Amount:        decimal.NewFromInt(approved),
		Rate:          5,
		TermMonths:    36,
	})
	if err != nil {
		t.Fatalf("create contract: %v", err)
	}
	if _, err := s.contracts.UpdateStatus(ctx, contractUC.UpdateStatusInput{ContractID: c.ID, Status: contractDomain.StatusSigned}); err != nil {
		t.Fatalf("sign contract: %v", err)
	}
	if _, err := s.contracts.UpdateStatus(ctx, contractUC.UpdateStatusInput{ContractID: c.ID, Status: contractDomain.StatusActive}); err != nil {
		t.Fatalf("activate contract: %v", err)
	}
	return a.ID, c.ID
}

func TestLifecycle_ActivationFundsBalance(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	appID, contractID := s.onboard(t, 10000, 8000)

	b, err := s.ledger.GetBalance(ctx, appID)
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if b == nil {
		t.Fatal("expected balance after activation")
	}
	if !b.Amount.Equal(decimal.NewFromInt(8000)) {
		t.Fatalf("balance = %s, want 8000", b.Amount)
	}

	// the application carries the judgment's approval amount once contracted
	a, err := s.applications.Get(ctx, appID)
	if err != nil {
		t.Fatal(err)
	}
	if a.ContractedAt == nil || a.ApprovalAmount == nil || !a.ApprovalAmount.Equal(decimal.NewFromInt(8000)) {
		t.Fatalf("application not stamped as contracted: %+v", a)
	}

	c, err := s.contracts.Get(ctx, contractID)
	if err != nil {
		t.Fatal(err)
	}
	if c.Status != contractDomain.StatusActive || c.ActivatedAt == nil {
		t.Fatalf("contract = %+v", c)
	}
}

func TestLifecycle_RepaymentAndOverdraft(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	appID, _ := s.onboard(t, 10000, 8000)

	rp, err := s.ledger.CreateRepayment(ctx, appID, decimal.NewFromInt(3000))
	if err != nil {
		t.Fatalf("repayment: %v", err)
	}
	if !rp.Balance.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("balance after repayment = %s, want 5000", rp.Balance)
	}

	// overdraft: refused, balance untouched
	if _, err := s.ledger.CreateRepayment(ctx, appID, decimal.NewFromInt(6000)); !errors.Is(err, ledgerDomain.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	b, err := s.ledger.GetBalance(ctx, appID)
	if err != nil {
		t.Fatal(err)
	}
	if !b.Amount.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("balance after refused repayment = %s, want 5000", b.Amount)
	}

	// no repayment row was written for the refused attempt
	st, err := s.ledger.Statement(ctx, appID)
	if err != nil {
		t.Fatal(err)
	}
	if len(st.Repayments) != 1 {
		t.Fatalf("repayments = %d, want 1", len(st.Repayments))
	}
}

func TestLifecycle_SecondJudgmentConflicts(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	a, err := s.applications.Create(ctx, applicationUC.CreateApplicationInput{
		Name:            "Sari",
		Phone:           "081200000001",
		Email:           "sari@example.com",
		RequestedAmount: decimal.NewFromInt(4000),
	})
	if err != nil {
		t.Fatal(err)
	}
	first := judgmentUC.CreateJudgmentInput{ApplicationID: a.ID, Name: "desk-a", ApprovalAmount: decimal.NewFromInt(3000), ApprovalRate: 4}
	if _, err := s.judgments.Create(ctx, first); err != nil {
		t.Fatalf("first judgment: %v", err)
	}
	second := judgmentUC.CreateJudgmentInput{ApplicationID: a.ID, Name: "desk-b", ApprovalAmount: decimal.NewFromInt(2000), ApprovalRate: 6}
	_, err = s.judgments.Create(ctx, second)
	if !errors.Is(err, judgmentDomain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	if !fault.IsKind(err, fault.KindConflict) {
		t.Fatalf("expected conflict kind, got %v", err)
	}

	// the first judgment is untouched
	j, err := s.judgments.GetByApplication(ctx, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if j.Name != "desk-a" || !j.ApprovalAmount.Equal(decimal.NewFromInt(3000)) {
		t.Fatalf("judgment = %+v", j)
	}
}

func TestLifecycle_AgreementReplacement(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	t1, err := s.agreements.CreateTerms(ctx, agreementUC.CreateTermsInput{Version: 1, Title: "Privacy", Body: "...", Required: true})
	if err != nil {
		t.Fatal(err)
	}
	t2, err := s.agreements.CreateTerms(ctx, agreementUC.CreateTermsInput{Version: 1, Title: "Marketing", Body: "..."})
	if err != nil {
		t.Fatal(err)
	}

	const userID = 77
	if _, err := s.agreements.Record(ctx, userID, []uint64{t1.ID, t2.ID}); err != nil {
		t.Fatalf("first record: %v", err)
	}
	if _, err := s.agreements.Record(ctx, userID, []uint64{t1.ID}); err != nil {
		t.Fatalf("second record: %v", err)
	}

	accepted, err := s.agreements.ListAccepted(ctx, userID)
	if err != nil {
		t.Fatal(err)
	}
	if len(accepted) != 1 || accepted[0].TermsID != t1.ID {
		t.Fatalf("accepted = %+v, want only terms %d", accepted, t1.ID)
	}

	check, err := s.agreements.CheckRequired(ctx, userID)
	if err != nil {
		t.Fatal(err)
	}
	if !check.Complete || len(check.Missing) != 0 {
		t.Fatalf("required check = %+v", check)
	}
}

func TestLifecycle_AgreementUnknownTermsRollsBack(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	t1, err := s.agreements.CreateTerms(ctx, agreementUC.CreateTermsInput{Version: 1, Title: "Privacy", Body: "...", Required: true})
	if err != nil {
		t.Fatal(err)
	}
	const userID = 42
	if _, err := s.agreements.Record(ctx, userID, []uint64{t1.ID}); err != nil {
		t.Fatal(err)
	}

	// an unknown id anywhere in the set leaves the prior set intact
	if _, err := s.agreements.Record(ctx, userID, []uint64{t1.ID, 99999}); err == nil {
		t.Fatal("expected error for unknown terms id")
	}
	accepted, err := s.agreements.ListAccepted(ctx, userID)
	if err != nil {
		t.Fatal(err)
	}
	if len(accepted) != 1 || accepted[0].TermsID != t1.ID {
		t.Fatalf("prior acceptance set lost: %+v", accepted)
	}
}

// conservation: balance always equals seed + entries - repayments
func TestLifecycle_Conservation(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	appID, _ := s.onboard(t, 10000, 8000)

	ops := []struct {
		entry  int64
		repaid int64
	}{
		{entry: 1000}, {repaid: 2500}, {entry: 300}, {repaid: 4000}, {repaid: 800},
	}
	for _, op := range ops {
		if op.entry > 0 {
			if _, err := s.ledger.CreateEntry(ctx, appID, decimal.NewFromInt(op.entry)); err != nil {
				t.Fatalf("entry %d: %v", op.entry, err)
			}
		} else {
			if _, err := s.ledger.CreateRepayment(ctx, appID, decimal.NewFromInt(op.repaid)); err != nil {
				t.Fatalf("repayment %d: %v", op.repaid, err)
			}
		}
	}

	st, err := s.ledger.Statement(ctx, appID)
	if err != nil {
		t.Fatal(err)
	}
	sum := decimal.NewFromInt(8000) // activation seed
	for _, e := range st.Entries {
		sum = sum.Add(e.Amount)
	}
	for _, r := range st.Repayments {
		sum = sum.Sub(r.Amount)
	}
	if !st.Balance.Amount.Equal(sum) {
		t.Fatalf("balance %s != reconciled %s", st.Balance.Amount, sum)
	}
	if st.Balance.Amount.IsNegative() {
		t.Fatalf("balance went negative: %s", st.Balance.Amount)
	}
}

func TestLifecycle_ReactivationDoesNotDoubleFund(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	appID, contractID := s.onboard(t, 10000, 8000)

	// draw the balance down so a second seed would be visible
	if _, err := s.ledger.CreateRepayment(ctx, appID, decimal.NewFromInt(3000)); err != nil {
		t.Fatal(err)
	}

	// re-applying active is a no-op
	c, err := s.contracts.UpdateStatus(ctx, contractUC.UpdateStatusInput{ContractID: contractID, Status: contractDomain.StatusActive})
	if err != nil {
		t.Fatalf("repeat activation: %v", err)
	}
	if c.Status != contractDomain.StatusActive {
		t.Fatalf("status = %s", c.Status)
	}

	b, err := s.ledger.GetBalance(ctx, appID)
	if err != nil {
		t.Fatal(err)
	}
	if !b.Amount.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("balance = %s, want 5000", b.Amount)
	}
}

func TestLifecycle_InvalidTransitions(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	a, err := s.applications.Create(ctx, applicationUC.CreateApplicationInput{
		Name:            "Tono",
		Phone:           "081200000002",
		Email:           "tono@example.com",
		RequestedAmount: decimal.NewFromInt(2000),
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.judgments.Create(ctx, judgmentUC.CreateJudgmentInput{
		ApplicationID: a.ID, Name: "desk", ApprovalAmount: decimal.NewFromInt(2000), ApprovalRate: 7,
	}); err != nil {
		t.Fatal(err)
	}
	j, err := s.judgments.GetByApplication(ctx, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	c, err := s.contracts.Create(ctx, contractUC.CreateContractInput{
		ApplicationID: a.ID, JudgmentID: j.ID, Amount: decimal.NewFromInt(2000), Rate: 7, TermMonths: 12,
	})
	if err != nil {
		t.Fatal(err)
	}

	// pending cannot jump straight to completed
	if _, err := s.contracts.UpdateStatus(ctx, contractUC.UpdateStatusInput{ContractID: c.ID, Status: contractDomain.StatusCompleted}); !errors.Is(err, contractDomain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	// cancel from pending, then the contract is terminal
	if _, err := s.contracts.UpdateStatus(ctx, contractUC.UpdateStatusInput{ContractID: c.ID, Status: contractDomain.StatusCancelled}); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := s.contracts.UpdateStatus(ctx, contractUC.UpdateStatusInput{ContractID: c.ID, Status: contractDomain.StatusSigned}); !errors.Is(err, contractDomain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition after cancel, got %v", err)
	}

	// cancellation never funded a balance
	b, err := s.ledger.GetBalance(ctx, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if b != nil {
		t.Fatalf("unexpected balance: %+v", b)
	}
}

func TestLifecycle_EntryBeforeContracting(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	a, err := s.applications.Create(ctx, applicationUC.CreateApplicationInput{
		Name:            "Wati",
		Phone:           "081200000003",
		Email:           "wati@example.com",
		RequestedAmount: decimal.NewFromInt(1500),
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.ledger.CreateEntry(ctx, a.ID, decimal.NewFromInt(100)); !errors.Is(err, ledgerDomain.ErrNotContracted) {
		t.Fatalf("expected ErrNotContracted, got %v", err)
	}
	if _, err := s.ledger.CreateRepayment(ctx, a.ID, decimal.NewFromInt(100)); !errors.Is(err, ledgerDomain.ErrNotContracted) {
		t.Fatalf("expected ErrNotContracted, got %v", err)
	}
}

func TestLifecycle_DirectContractingThenFirstEntrySeedsBalance(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	a, err := s.applications.Create(ctx, applicationUC.CreateApplicationInput{
		Name:            "Rina",
		Phone:           "081200000004",
		Email:           "rina@example.com",
		RequestedAmount: decimal.NewFromInt(6000),
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.judgments.Create(ctx, judgmentUC.CreateJudgmentInput{
		ApplicationID: a.ID, Name: "desk", ApprovalAmount: decimal.NewFromInt(5000), ApprovalRate: 5,
	}); err != nil {
		t.Fatal(err)
	}

	ca, err := s.contracts.ContractApplication(ctx, a.ID)
	if err != nil {
		t.Fatalf("contract application: %v", err)
	}
	if !ca.ApprovalAmount.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("approval amount = %s", ca.ApprovalAmount)
	}

	// contracting twice conflicts
	if _, err := s.contracts.ContractApplication(ctx, a.ID); !fault.IsKind(err, fault.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	// without activation there is no balance; the first entry seeds one
	e, err := s.ledger.CreateEntry(ctx, a.ID, decimal.NewFromInt(250))
	if err != nil {
		t.Fatalf("entry: %v", err)
	}
	if !e.Balance.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("balance after first entry = %s, want 250", e.Balance)
	}
	e2, err := s.ledger.CreateEntry(ctx, a.ID, decimal.NewFromInt(100))
	if err != nil {
		t.Fatal(err)
	}
	if !e2.Balance.Equal(decimal.NewFromInt(350)) {
		t.Fatalf("balance after second entry = %s, want 350", e2.Balance)
	}
}
