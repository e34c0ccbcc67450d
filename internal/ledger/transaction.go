package ledger

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
)

// Type is the kind of money movement a Transaction records.
type Type string

const (
	TypeDeposit  Type = "deposit"
	TypeWithdraw Type = "withdraw"
	TypeTransfer Type = "transfer"
	TypeFunding  Type = "funding"
)

const StatusCompleted = "completed"

// Transaction is an immutable record of one money movement.
type Transaction struct {
	ID       string          `json:"id"`
	Type     Type            `json:"type"`
	Amount   decimal.Decimal `json:"amount"`
	Sender   Party           `json:"sender"`
	Receiver Party           `json:"receiver"`
	Status   string          `json:"status"`
	Date     time.Time       `json:"date"`
}

var idSpace = new(big.Int).Exp(big.NewInt(36), big.NewInt(11), nil)

// NewID returns a random base-36 id. Ids are not checked for uniqueness.
func NewID() string {
	n, err := rand.Int(rand.Reader, idSpace)
	if err != nil {
		return big.NewInt(time.Now().UnixNano()).Text(36)
	}
	return n.Text(36)
}
