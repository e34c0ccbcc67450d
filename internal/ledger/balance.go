package ledger

import "github.com/shopspring/decimal"

// BalanceTable maps each role to its current balance.
type BalanceTable map[Role]decimal.Decimal

// Delta is a signed per-role balance change.
type Delta map[Role]decimal.Decimal

func (b BalanceTable) Clone() BalanceTable {
	out := make(BalanceTable, len(b))
	for r, v := range b {
		out[r] = v
	}
	return out
}

// Effect is the one rule that turns a transaction into balance changes: the
// sender loses the amount and the receiver gains it. Bank and system parties
// hold no balance, so a deposit only credits its receiver and a withdrawal
// only debits its sender.
func Effect(tx Transaction) Delta {
	d := Delta{}
	if r, ok := tx.Sender.Role(); ok {
		d[r] = d[r].Sub(tx.Amount)
	}
	if r, ok := tx.Receiver.Role(); ok {
		d[r] = d[r].Add(tx.Amount)
	}
	return d
}

// ApplyDelta returns the absolute balances for the roles named in delta,
// suitable as a MergeBalances payload.
func ApplyDelta(b BalanceTable, delta Delta) map[Role]decimal.Decimal {
	out := make(map[Role]decimal.Decimal, len(delta))
	for r, v := range delta {
		out[r] = b[r].Add(v)
	}
	return out
}

// Fold derives balances from a seed and the full transaction list.
func Fold(seed BalanceTable, txs []Transaction) BalanceTable {
	out := seed.Clone()
	for _, tx := range txs {
		for r, v := range Effect(tx) {
			out[r] = out[r].Add(v)
		}
	}
	return out
}

// Reconcile compares the state's balance table with the folded balances and
// returns the roles that differ, valued actual minus expected.
func Reconcile(s State, seed BalanceTable) Delta {
	expected := Fold(seed, s.Transactions)
	drift := Delta{}
	for _, r := range Roles {
		if diff := s.Balances[r].Sub(expected[r]); !diff.IsZero() {
			drift[r] = diff
		}
	}
	return drift
}
