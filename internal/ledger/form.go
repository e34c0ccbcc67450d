package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// FormState is either editing or submitted.
type FormState int

const (
	Editing FormState = iota
	Submitted
)

func (s FormState) String() string {
	if s == Submitted {
		return "submitted"
	}
	return "editing"
}

// Form collects an amount and turns it into a Transaction on submit.
type Form struct {
	kind     Type
	sender   Party
	receiver Party
	amount   decimal.Decimal
	state    FormState

	newID func() string
	now   func() time.Time
}

func newForm(kind Type, sender, receiver Party) *Form {
	return &Form{
		kind:     kind,
		sender:   sender,
		receiver: receiver,
		newID:    NewID,
		now:      time.Now,
	}
}

// NewDepositForm credits role with money from the bank.
func NewDepositForm(role Role) *Form {
	return newForm(TypeDeposit, PartyBank, Party(role))
}

// NewWithdrawForm debits role, paying out to the bank.
func NewWithdrawForm(role Role) *Form {
	return newForm(TypeWithdraw, Party(role), PartyBank)
}

// NewTransferForm moves money from sender to a selectable receiver, which
// starts as the entrepreneur.
func NewTransferForm(sender Role) *Form {
	return newForm(TypeTransfer, Party(sender), Party(Entrepreneur))
}

// NewFundingForm moves money from the investor to the entrepreneur.
func NewFundingForm() *Form {
	return newForm(TypeFunding, Party(Investor), Party(Entrepreneur))
}

func (f *Form) Type() Type              { return f.kind }
func (f *Form) State() FormState        { return f.state }
func (f *Form) Amount() decimal.Decimal { return f.amount }
func (f *Form) Receiver() Party         { return f.receiver }

func (f *Form) SetAmount(amount decimal.Decimal) {
	f.amount = amount
	f.state = Editing
}

// SetReceiver changes the receiver of a transfer form. Other forms have a
// fixed receiver and ignore the call.
func (f *Form) SetReceiver(r Role) {
	if f.kind != TypeTransfer {
		return
	}
	f.receiver = Party(r)
	f.state = Editing
}

// Submit builds the record, hands it and its delta to onTx and resets the
// amount. It returns false without calling onTx when the amount is not
// positive or a transfer targets its own sender.
func (f *Form) Submit(onTx func(Transaction, Delta)) bool {
	if !f.amount.IsPositive() {
		return false
	}
	if f.kind == TypeTransfer && f.receiver == f.sender {
		return false
	}

	tx := Transaction{
		ID:       f.newID(),
		Type:     f.kind,
		Amount:   f.amount,
		Sender:   f.sender,
		Receiver: f.receiver,
		Status:   StatusCompleted,
		Date:     f.now().UTC(),
	}

	onTx(tx, Effect(tx))
	f.amount = decimal.Zero
	f.state = Submitted
	return true
}
