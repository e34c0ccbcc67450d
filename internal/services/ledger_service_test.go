package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/venturelink/backend/internal/ledger"
	"github.com/venturelink/backend/internal/storage"
)

func testSeed() ledger.BalanceTable {
	return ledger.BalanceTable{
		ledger.Investor:     decimal.NewFromInt(50000),
		ledger.Entrepreneur: decimal.NewFromInt(10000),
	}
}

func newTestLedger(t *testing.T) (*LedgerService, *storage.MemoryStore, *MockAuditLogger) {
	t.Helper()
	store := storage.NewMemoryStore()
	auditLog := new(MockAuditLogger)
	auditLog.On("LogTransaction", mock.Anything).Return()
	return NewLedgerService(store, testSeed(), auditLog), store, auditLog
}

func TestLedgerService_Deposit(t *testing.T) {
	ctx := context.Background()

	t.Run("entrepreneur deposit credits balance and persists", func(t *testing.T) {
		svc, store, auditLog := newTestLedger(t)

		tx, err := svc.Deposit(ctx, ledger.Entrepreneur, decimal.NewFromInt(500))
		require.NoError(t, err)

		assert.Equal(t, ledger.TypeDeposit, tx.Type)
		assert.Equal(t, ledger.PartyBank, tx.Sender)
		assert.Equal(t, ledger.Party(ledger.Entrepreneur), tx.Receiver)
		assert.Equal(t, ledger.StatusCompleted, tx.Status)
		assert.True(t, decimal.NewFromInt(10500).Equal(svc.Balance(ledger.Entrepreneur)))
		assert.True(t, decimal.NewFromInt(50000).Equal(svc.Balance(ledger.Investor)))

		raw, err := store.List(ctx, TransactionsCollection)
		require.NoError(t, err)
		assert.Contains(t, raw, tx.ID)
		auditLog.AssertCalled(t, "LogTransaction", tx)
	})

	t.Run("investor may not deposit", func(t *testing.T) {
		svc, _, auditLog := newTestLedger(t)

		_, err := svc.Deposit(ctx, ledger.Investor, decimal.NewFromInt(500))
		assert.ErrorIs(t, err, ErrRoleNotAllowed)
		assert.Empty(t, svc.History(ledger.Entrepreneur))
		auditLog.AssertNotCalled(t, "LogTransaction", mock.Anything)
	})

	t.Run("non-positive amount is dropped", func(t *testing.T) {
		svc, store, _ := newTestLedger(t)

		for _, amount := range []int64{0, -50} {
			_, err := svc.Deposit(ctx, ledger.Entrepreneur, decimal.NewFromInt(amount))
			assert.ErrorIs(t, err, ErrSubmissionDropped)
		}

		assert.Empty(t, svc.History(ledger.Entrepreneur))
		assert.Equal(t, testSeed(), svc.Balances())
		raw, _ := store.List(ctx, TransactionsCollection)
		assert.Empty(t, raw)
	})
}

func TestLedgerService_WithdrawAllowsOverdraft(t *testing.T) {
	svc, _, _ := newTestLedger(t)

	_, err := svc.Withdraw(context.Background(), ledger.Entrepreneur, decimal.NewFromInt(12000))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(-2000).Equal(svc.Balance(ledger.Entrepreneur)))
}

func TestLedgerService_Transfer(t *testing.T) {
	ctx := context.Background()

	t.Run("default receiver is the entrepreneur", func(t *testing.T) {
		svc, _, _ := newTestLedger(t)

		tx, err := svc.Transfer(ctx, ledger.Investor, "", decimal.NewFromInt(1000))
		require.NoError(t, err)
		assert.Equal(t, ledger.Party(ledger.Entrepreneur), tx.Receiver)
		assert.True(t, decimal.NewFromInt(49000).Equal(svc.Balance(ledger.Investor)))
		assert.True(t, decimal.NewFromInt(11000).Equal(svc.Balance(ledger.Entrepreneur)))
	})

	t.Run("transfer to self is dropped", func(t *testing.T) {
		svc, _, _ := newTestLedger(t)

		_, err := svc.Transfer(ctx, ledger.Entrepreneur, ledger.Entrepreneur, decimal.NewFromInt(10))
		assert.ErrorIs(t, err, ErrSubmissionDropped)
		assert.Equal(t, testSeed(), svc.Balances())
	})
}

func TestLedgerService_Fund(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestLedger(t)

	_, err := svc.Fund(ctx, ledger.Entrepreneur, decimal.NewFromInt(100))
	assert.ErrorIs(t, err, ErrRoleNotAllowed)

	tx, err := svc.Fund(ctx, ledger.Investor, decimal.NewFromInt(25000))
	require.NoError(t, err)
	assert.Equal(t, ledger.TypeFunding, tx.Type)
	assert.True(t, decimal.NewFromInt(25000).Equal(svc.Balance(ledger.Investor)))
	assert.True(t, decimal.NewFromInt(35000).Equal(svc.Balance(ledger.Entrepreneur)))
}

func TestLedgerService_HistoryNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestLedger(t)

	first, err := svc.Deposit(ctx, ledger.Entrepreneur, decimal.NewFromInt(1))
	require.NoError(t, err)
	second, err := svc.Withdraw(ctx, ledger.Entrepreneur, decimal.NewFromInt(2))
	require.NoError(t, err)

	all := svc.History(ledger.Entrepreneur)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)

	assert.Empty(t, svc.History(ledger.Investor))
}

func TestLedgerService_PersistFailure(t *testing.T) {
	store := &failingStore{MemoryStore: storage.NewMemoryStore(), collection: TransactionsCollection}
	auditLog := new(MockAuditLogger)
	auditLog.On("LogError", "", "entrepreneur", errStoreDown).Return()
	svc := NewLedgerService(store, testSeed(), auditLog)

	_, err := svc.Deposit(context.Background(), ledger.Entrepreneur, decimal.NewFromInt(10))
	assert.ErrorIs(t, err, errStoreDown)
	assert.Equal(t, testSeed(), svc.Balances())
	assert.Empty(t, svc.History(ledger.Entrepreneur))
	auditLog.AssertExpectations(t)
}

func TestLedgerService_Load(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	txs := storage.NewCollection[ledger.Transaction](store, TransactionsCollection)

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, txs.Put(ctx, "b", ledger.Transaction{
		ID: "b", Type: ledger.TypeDeposit, Amount: decimal.NewFromInt(300),
		Sender: ledger.PartyBank, Receiver: ledger.Party(ledger.Entrepreneur),
		Status: ledger.StatusCompleted, Date: base,
	}))
	require.NoError(t, txs.Put(ctx, "a", ledger.Transaction{
		ID: "a", Type: ledger.TypeFunding, Amount: decimal.NewFromInt(1000),
		Sender: ledger.Party(ledger.Investor), Receiver: ledger.Party(ledger.Entrepreneur),
		Status: ledger.StatusCompleted, Date: base.Add(time.Hour),
	}))
	require.NoError(t, store.Put(ctx, TransactionsCollection, "broken", []byte("{not json")))

	svc := NewLedgerService(store, testSeed(), new(MockAuditLogger))
	require.NoError(t, svc.Load(ctx))

	history := svc.History(ledger.Entrepreneur)
	require.Len(t, history, 2)
	assert.Equal(t, "a", history[0].ID)
	assert.True(t, decimal.NewFromInt(11300).Equal(svc.Balance(ledger.Entrepreneur)))
	assert.True(t, decimal.NewFromInt(49000).Equal(svc.Balance(ledger.Investor)))
	assert.Empty(t, svc.Reconcile())
}

func TestLedgerService_MergeBalancesShowsDrift(t *testing.T) {
	svc, _, auditLog := newTestLedger(t)
	auditLog.On("LogOperation", "", "investor", "BALANCE_ADJUSTMENT", "60000").Return()

	svc.MergeBalances(map[ledger.Role]decimal.Decimal{ledger.Investor: decimal.NewFromInt(60000)})

	drift := svc.Reconcile()
	require.Contains(t, drift, ledger.Investor)
	assert.True(t, decimal.NewFromInt(10000).Equal(drift[ledger.Investor]))
	assert.NotContains(t, drift, ledger.Entrepreneur)
	auditLog.AssertExpectations(t)
}

func TestLedgerService_SnapshotIsolated(t *testing.T) {
	svc, _, _ := newTestLedger(t)

	snap := svc.Snapshot()
	snap.Balances[ledger.Investor] = decimal.Zero

	assert.True(t, decimal.NewFromInt(50000).Equal(svc.Balance(ledger.Investor)))
}
