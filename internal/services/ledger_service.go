package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/venturelink/backend/internal/ledger"
	"github.com/venturelink/backend/internal/storage"
)

const TransactionsCollection = "transactions"

var (
	ErrRoleNotAllowed    = errors.New("operation not available for this role")
	ErrSubmissionDropped = errors.New("amount must be positive and receiver must differ from sender")
)

// AuditLogger records ledger activity. *audit.Logger satisfies it.
type AuditLogger interface {
	LogTransaction(tx ledger.Transaction)
	LogError(reference, subject string, err error)
	LogOperation(reference, subject, operation, details string)
}

// LedgerService owns the in-process ledger state and persists every
// submitted transaction to the store.
type LedgerService struct {
	mu    sync.Mutex
	seed  ledger.BalanceTable
	state ledger.State
	txs   *storage.Collection[ledger.Transaction]
	audit AuditLogger
}

func NewLedgerService(store storage.Store, seed ledger.BalanceTable, audit AuditLogger) *LedgerService {
	return &LedgerService{
		seed:  seed.Clone(),
		state: ledger.InitState(seed),
		txs:   storage.NewCollection[ledger.Transaction](store, TransactionsCollection),
		audit: audit,
	}
}

// Load replaces the current state with the persisted transactions, newest
// first, and balances folded from the seed.
func (s *LedgerService) Load(ctx context.Context) error {
	txs, err := s.txs.All(ctx)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.After(txs[j].Date)
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = ledger.State{Transactions: txs, Balances: ledger.Fold(s.seed, txs)}
	log.Printf("[LEDGER] Loaded %d transactions", len(txs))
	return nil
}

func (s *LedgerService) Deposit(ctx context.Context, role ledger.Role, amount decimal.Decimal) (ledger.Transaction, error) {
	if !ledger.Allowed(role, ledger.TypeDeposit) {
		return ledger.Transaction{}, ErrRoleNotAllowed
	}
	form := ledger.NewDepositForm(role)
	form.SetAmount(amount)
	return s.submit(ctx, role, form)
}

func (s *LedgerService) Withdraw(ctx context.Context, role ledger.Role, amount decimal.Decimal) (ledger.Transaction, error) {
	if !ledger.Allowed(role, ledger.TypeWithdraw) {
		return ledger.Transaction{}, ErrRoleNotAllowed
	}
	form := ledger.NewWithdrawForm(role)
	form.SetAmount(amount)
	return s.submit(ctx, role, form)
}

// Transfer moves amount from sender to receiver. An empty receiver keeps
// the form default (the entrepreneur).
func (s *LedgerService) Transfer(ctx context.Context, sender, receiver ledger.Role, amount decimal.Decimal) (ledger.Transaction, error) {
	if !ledger.Allowed(sender, ledger.TypeTransfer) {
		return ledger.Transaction{}, ErrRoleNotAllowed
	}
	form := ledger.NewTransferForm(sender)
	if receiver != "" {
		form.SetReceiver(receiver)
	}
	form.SetAmount(amount)
	return s.submit(ctx, sender, form)
}

func (s *LedgerService) Fund(ctx context.Context, role ledger.Role, amount decimal.Decimal) (ledger.Transaction, error) {
	if !ledger.Allowed(role, ledger.TypeFunding) {
		return ledger.Transaction{}, ErrRoleNotAllowed
	}
	form := ledger.NewFundingForm()
	form.SetAmount(amount)
	return s.submit(ctx, role, form)
}

func (s *LedgerService) submit(ctx context.Context, role ledger.Role, form *ledger.Form) (ledger.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		recorded   ledger.Transaction
		persistErr error
	)
	ok := form.Submit(func(tx ledger.Transaction, delta ledger.Delta) {
		if err := s.txs.Put(ctx, tx.ID, tx); err != nil {
			persistErr = err
			return
		}
		s.state = ledger.Apply(s.state, tx, delta)
		recorded = tx
	})
	if !ok {
		log.Printf("[LEDGER] %s submission by %s dropped (amount %s)", form.Type(), role, form.Amount())
		return ledger.Transaction{}, ErrSubmissionDropped
	}
	if persistErr != nil {
		s.audit.LogError("", string(role), persistErr)
		return ledger.Transaction{}, fmt.Errorf("persist %s: %w", form.Type(), persistErr)
	}

	s.audit.LogTransaction(recorded)
	log.Printf("[LEDGER] %s %s: %s -> %s (%s)", recorded.Type, recorded.Amount, recorded.Sender, recorded.Receiver, recorded.ID)
	return recorded, nil
}

func (s *LedgerService) Balances() ledger.BalanceTable {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Balances.Clone()
}

func (s *LedgerService) Balance(role ledger.Role) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Balances[role]
}

// History returns the transactions visible to role, newest first.
func (s *LedgerService) History(role ledger.Role) []ledger.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ledger.History(s.state.Transactions, role)
}

func (s *LedgerService) Snapshot() ledger.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ledger.State{Transactions: s.state.Transactions, Balances: s.state.Balances.Clone()}
}

// Reconcile reports balances that no longer match the transaction list.
func (s *LedgerService) Reconcile() ledger.Delta {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ledger.Reconcile(s.state, s.seed)
}

// MergeBalances overwrites the named balances without recording a
// transaction. The change is in-memory only and shows up in Reconcile.
func (s *LedgerService) MergeBalances(updates map[ledger.Role]decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = ledger.Reduce(s.state, ledger.MergeBalances{Updates: updates})
	for role, v := range updates {
		s.audit.LogOperation("", string(role), "BALANCE_ADJUSTMENT", v.String())
	}
}
