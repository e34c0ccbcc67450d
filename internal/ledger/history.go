package ledger

// History is the transaction list shown to role. Investors see only records
// they sent or received; every other role sees the full list.
func History(txs []Transaction, role Role) []Transaction {
	if role != Investor {
		return txs
	}
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Sender == Party(Investor) || tx.Receiver == Party(Investor) {
			out = append(out, tx)
		}
	}
	return out
}

// Allowed reports whether role may submit transactions of type t. Deposits
// and withdrawals are entrepreneur-only, funding is investor-only.
func Allowed(role Role, t Type) bool {
	switch t {
	case TypeDeposit, TypeWithdraw:
		return role == Entrepreneur
	case TypeFunding:
		return role == Investor
	case TypeTransfer:
		return role == Entrepreneur || role == Investor
	}
	return false
}
