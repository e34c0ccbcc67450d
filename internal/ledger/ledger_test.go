package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed() BalanceTable {
	return BalanceTable{
		Investor:     decimal.NewFromInt(50000),
		Entrepreneur: decimal.NewFromInt(10000),
	}
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func submit(t *testing.T, s State, f *Form, amount int64) (State, bool) {
	t.Helper()
	f.SetAmount(dec(amount))
	next := s
	ok := f.Submit(func(tx Transaction, d Delta) {
		next = Apply(next, tx, d)
	})
	return next, ok
}

func TestForms_NonPositiveAmountDispatchesNothing(t *testing.T) {
	forms := map[string]*Form{
		"deposit":  NewDepositForm(Entrepreneur),
		"withdraw": NewWithdrawForm(Entrepreneur),
		"transfer": NewTransferForm(Investor),
		"funding":  NewFundingForm(),
	}

	for name, f := range forms {
		for _, amount := range []int64{0, -5} {
			t.Run(name, func(t *testing.T) {
				state := InitState(seed())
				next, ok := submit(t, state, f, amount)

				assert.False(t, ok)
				assert.Empty(t, next.Transactions)
				assert.True(t, next.Balances[Investor].Equal(dec(50000)))
				assert.True(t, next.Balances[Entrepreneur].Equal(dec(10000)))
				assert.Equal(t, Editing, f.State())
			})
		}
	}
}

func TestTransferForm(t *testing.T) {
	t.Run("moves amount between roles", func(t *testing.T) {
		state := InitState(seed())
		f := NewTransferForm(Investor)

		next, ok := submit(t, state, f, 1500)
		require.True(t, ok)

		assert.Equal(t, "48500", next.Balances[Investor].String())
		assert.Equal(t, "11500", next.Balances[Entrepreneur].String())
		require.Len(t, next.Transactions, 1)
		tx := next.Transactions[0]
		assert.Equal(t, TypeTransfer, tx.Type)
		assert.Equal(t, Party(Investor), tx.Sender)
		assert.Equal(t, Party(Entrepreneur), tx.Receiver)
		assert.Equal(t, StatusCompleted, tx.Status)
		assert.NotEmpty(t, tx.ID)
	})

	t.Run("overdraft is not checked", func(t *testing.T) {
		state := InitState(seed())
		f := NewTransferForm(Entrepreneur)
		f.SetReceiver(Investor)

		next, ok := submit(t, state, f, 25000)
		require.True(t, ok)

		assert.Equal(t, "-15000", next.Balances[Entrepreneur].String())
		assert.Equal(t, "75000", next.Balances[Investor].String())
	})

	t.Run("same sender and receiver is dropped", func(t *testing.T) {
		state := InitState(seed())
		f := NewTransferForm(Entrepreneur)

		next, ok := submit(t, state, f, 100)
		assert.False(t, ok)
		assert.Empty(t, next.Transactions)
	})
}

func TestFormStateMachine(t *testing.T) {
	f := NewDepositForm(Entrepreneur)
	assert.Equal(t, Editing, f.State())

	f.SetAmount(dec(200))
	var got []Transaction
	ok := f.Submit(func(tx Transaction, _ Delta) { got = append(got, tx) })

	require.True(t, ok)
	assert.Equal(t, Submitted, f.State())
	assert.True(t, f.Amount().IsZero())
	require.Len(t, got, 1)
	assert.Equal(t, PartyBank, got[0].Sender)
	assert.Equal(t, Party(Entrepreneur), got[0].Receiver)

	f.SetAmount(dec(5))
	assert.Equal(t, Editing, f.State())
}

func TestDepositAndWithdraw(t *testing.T) {
	state := InitState(seed())

	state, ok := submit(t, state, NewDepositForm(Entrepreneur), 300)
	require.True(t, ok)
	state, ok = submit(t, state, NewWithdrawForm(Entrepreneur), 100)
	require.True(t, ok)

	assert.Equal(t, "10200", state.Balances[Entrepreneur].String())
	assert.Equal(t, "50000", state.Balances[Investor].String())
	assert.Equal(t, TypeWithdraw, state.Transactions[0].Type, "newest first")
	assert.Equal(t, PartyBank, state.Transactions[0].Receiver)
}

func TestFundingForm(t *testing.T) {
	state, ok := submit(t, InitState(seed()), NewFundingForm(), 20000)
	require.True(t, ok)

	assert.Equal(t, "30000", state.Balances[Investor].String())
	assert.Equal(t, "30000", state.Balances[Entrepreneur].String())
}

func TestReduce(t *testing.T) {
	prior := InitState(seed())
	tx := Transaction{ID: "abc", Type: TypeDeposit, Amount: dec(10), Sender: PartyBank, Receiver: Party(Entrepreneur)}

	t.Run("append does not touch balances or the prior state", func(t *testing.T) {
		next := Reduce(prior, AppendTransaction{Tx: tx})

		assert.Len(t, next.Transactions, 1)
		assert.Empty(t, prior.Transactions)
		assert.Equal(t, "10000", next.Balances[Entrepreneur].String())
	})

	t.Run("merge overwrites only listed roles", func(t *testing.T) {
		next := Reduce(prior, MergeBalances{Updates: map[Role]decimal.Decimal{Investor: dec(1)}})

		assert.Equal(t, "1", next.Balances[Investor].String())
		assert.Equal(t, "10000", next.Balances[Entrepreneur].String())
		assert.Equal(t, "50000", prior.Balances[Investor].String())
	})

	t.Run("duplicate ids are accepted", func(t *testing.T) {
		next := Reduce(Reduce(prior, AppendTransaction{Tx: tx}), AppendTransaction{Tx: tx})
		assert.Len(t, next.Transactions, 2)
	})
}

func TestFoldAndReconcile(t *testing.T) {
	state := InitState(seed())
	state, _ = submit(t, state, NewFundingForm(), 5000)
	state, _ = submit(t, state, NewDepositForm(Entrepreneur), 250)

	assert.Empty(t, Reconcile(state, seed()))
	folded := Fold(seed(), state.Transactions)
	assert.True(t, folded[Investor].Equal(state.Balances[Investor]))
	assert.True(t, folded[Entrepreneur].Equal(state.Balances[Entrepreneur]))

	adjusted := Reduce(state, MergeBalances{Updates: map[Role]decimal.Decimal{Investor: dec(0)}})
	drift := Reconcile(adjusted, seed())
	assert.Equal(t, "-45000", drift[Investor].String())
	assert.NotContains(t, drift, Entrepreneur)
}

func TestHistory(t *testing.T) {
	txs := []Transaction{
		{ID: "1", Type: TypeDeposit, Sender: PartyBank, Receiver: Party(Entrepreneur)},
		{ID: "2", Type: TypeFunding, Sender: Party(Investor), Receiver: Party(Entrepreneur)},
		{ID: "3", Type: TypeTransfer, Sender: Party(Entrepreneur), Receiver: Party(Investor)},
		{ID: "4", Type: TypeWithdraw, Sender: Party(Entrepreneur), Receiver: PartyBank},
	}

	investor := History(txs, Investor)
	require.Len(t, investor, 2)
	for _, tx := range investor {
		assert.True(t, tx.Sender == Party(Investor) || tx.Receiver == Party(Investor))
	}

	assert.Equal(t, txs, History(txs, Entrepreneur))
}

func TestAllowed(t *testing.T) {
	assert.True(t, Allowed(Entrepreneur, TypeDeposit))
	assert.True(t, Allowed(Entrepreneur, TypeWithdraw))
	assert.False(t, Allowed(Investor, TypeDeposit))
	assert.True(t, Allowed(Investor, TypeFunding))
	assert.False(t, Allowed(Entrepreneur, TypeFunding))
	assert.True(t, Allowed(Investor, TypeTransfer))
	assert.False(t, Allowed(Role("admin"), TypeTransfer))
}

func TestNewID(t *testing.T) {
	id := NewID()
	assert.NotEmpty(t, id)
	assert.Regexp(t, "^[0-9a-z]+$", id)
}

func TestFormUsesClock(t *testing.T) {
	f := NewFundingForm()
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	f.now = func() time.Time { return fixed }
	f.newID = func() string { return "fixed" }
	f.SetAmount(dec(1))

	var got Transaction
	f.Submit(func(tx Transaction, _ Delta) { got = tx })

	assert.Equal(t, "fixed", got.ID)
	assert.Equal(t, fixed, got.Date)
}
