// Package ledger holds the simulated payments bookkeeping: transaction
// records, the per-role balance table, the reducer that combines them and
// the forms that produce new records.
package ledger

import "fmt"

// Role is one of the two user categories that hold a balance.
type Role string

const (
	Entrepreneur Role = "entrepreneur"
	Investor     Role = "investor"
)

// Roles lists every role in display order.
var Roles = []Role{Investor, Entrepreneur}

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case Entrepreneur, Investor:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Party is a sender or receiver label: a Role or one of the external
// literals below. Parties are labels, not account references.
type Party string

const (
	PartyBank   Party = "Bank"
	PartySystem Party = "system"
)

// Role reports whether the party is a balance-holding role.
func (p Party) Role() (Role, bool) {
	switch Role(p) {
	case Entrepreneur, Investor:
		return Role(p), true
	}
	return "", false
}
