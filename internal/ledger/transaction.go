package ledger

import (
	"fmt"
	"strings"

	"github.com/minibank-dev/minibank/internal/money"
)

// Transaction is one immutable line in an account's history. Positive
// amounts are credits, negative amounts are debits. The sum of all
// transaction amounts on an account always equals its balance.
type Transaction struct {
	Amount      int64
	Description string
}

// Render formats the transaction as a statement line: "+$4.00 - Deposit".
func (t Transaction) Render(indent int) string {
	return fmt.Sprintf("%s%s - %s",
		strings.Repeat(" ", indent),
		money.Format(t.Amount, money.SignAlways),
		t.Description)
}
