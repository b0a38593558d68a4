package ledger

import (
	"fmt"
	"strings"

	"github.com/minibank-dev/minibank/internal/money"
)

// Kind tags the two holdable account variants. Behavior differences
// (overdraft chaining, interest) are selected by kind, not by subtype.
type Kind string

const (
	KindChecking Kind = "checking"
	KindSavings  Kind = "savings"
)

// OverdraftFee is the fixed fee, in cents, posted when a checking withdrawal
// draws on its overdraft source.
const OverdraftFee = 25_00

// Account tracks a balance and its transaction history. All mutation goes
// through Bank operations; fields stay unexported so the
// balance-equals-sum-of-transactions invariant cannot be bypassed.
type Account struct {
	id                string
	kind              Kind
	name              string
	ownerID           string // owning user's id; resolved through the registry
	overdraftSourceID string // checking only; empty means no source
	balance           int64
	transactions      []Transaction
}

// ID returns the account id, e.g. "c0".
func (a *Account) ID() string { return a.id }

// Kind returns the account kind.
func (a *Account) Kind() Kind { return a.kind }

// Name returns the display name.
func (a *Account) Name() string { return a.name }

// OwnerID returns the id of the owning user.
func (a *Account) OwnerID() string { return a.ownerID }

// OverdraftSourceID returns the overdraft source account id, or "".
func (a *Account) OverdraftSourceID() string { return a.overdraftSourceID }

// Balance returns the current balance in cents.
func (a *Account) Balance() int64 { return a.balance }

// Transactions returns a copy of the transaction history, oldest first.
func (a *Account) Transactions() []Transaction {
	out := make([]Transaction, len(a.transactions))
	copy(out, a.transactions)
	return out
}

// BalanceString renders the balance, signed only when negative: "$4.00",
// "-$25.00".
func (a *Account) BalanceString() string {
	return money.Format(a.balance, money.SignNegative)
}

// TransactionsString renders the history one line per transaction, oldest
// first. Empty history renders as "".
func (a *Account) TransactionsString(indent int) string {
	if len(a.transactions) == 0 {
		return ""
	}
	lines := make([]string, len(a.transactions))
	for i, t := range a.transactions {
		lines[i] = t.Render(indent)
	}
	return strings.Join(lines, "\n")
}

// Render formats the account header and, when present, its history indented
// four further spaces.
func (a *Account) Render(indent int) string {
	header := fmt.Sprintf("%s%s (%s, %s): %s",
		strings.Repeat(" ", indent), a.name, a.kind, a.id, a.BalanceString())
	if len(a.transactions) == 0 {
		return header
	}
	return header + "\n" + a.TransactionsString(indent+4)
}

// post appends one history record. Always exactly one append, no validation.
func (a *Account) post(amount int64, description string) {
	a.transactions = append(a.transactions, Transaction{Amount: amount, Description: description})
}

// deposit credits the account. The only failure is a negative amount.
func (a *Account) deposit(amount int64, description string) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	a.balance += amount
	a.post(amount, orDefault(description, "Deposit"))
	return nil
}

// withdrawBase debits the account under the base rule: the balance may not
// go negative. Checking overdraft chaining lives in Bank.withdrawLocked.
func (a *Account) withdrawBase(amount int64, description string) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	if amount > a.balance {
		return ErrInsufficientFunds
	}
	a.balance -= amount
	a.post(-amount, orDefault(description, "Withdrawal"))
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// withDetail appends a caller-supplied description to a generated message:
// withDetail("Overdraft partial", "rent") -> "Overdraft partial - rent".
func withDetail(msg, description string) string {
	if description == "" {
		return msg
	}
	return msg + " - " + description
}
