package ledger

import "github.com/shopspring/decimal"

// State is the ledger as seen by the payments screen.
type State struct {
	Transactions []Transaction `json:"transactions"`
	Balances     BalanceTable  `json:"balances"`
}

// Action is a ledger state transition.
type Action interface {
	isAction()
}

// AppendTransaction adds a record to the front of the transaction list.
type AppendTransaction struct {
	Tx Transaction
}

// MergeBalances overwrites the balances of the listed roles.
type MergeBalances struct {
	Updates map[Role]decimal.Decimal
}

func (AppendTransaction) isAction() {}
func (MergeBalances) isAction()     {}

// InitState seeds an empty ledger.
func InitState(seed BalanceTable) State {
	return State{Transactions: []Transaction{}, Balances: seed.Clone()}
}

// Reduce combines a prior state and an action into a new state. The prior
// state is never modified and no input is rejected.
func Reduce(s State, action Action) State {
	switch a := action.(type) {
	case AppendTransaction:
		txs := make([]Transaction, 0, len(s.Transactions)+1)
		txs = append(txs, a.Tx)
		txs = append(txs, s.Transactions...)
		return State{Transactions: txs, Balances: s.Balances}
	case MergeBalances:
		balances := s.Balances.Clone()
		for r, v := range a.Updates {
			balances[r] = v
		}
		return State{Transactions: s.Transactions, Balances: balances}
	default:
		return s
	}
}

// Apply dispatches a submitted record and its delta the way the payments
// screen does: append the record, then merge the updated balances.
func Apply(s State, tx Transaction, delta Delta) State {
	next := Reduce(s, AppendTransaction{Tx: tx})
	return Reduce(next, MergeBalances{Updates: ApplyDelta(next.Balances, delta)})
}
