package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionRender(t *testing.T) {
	tx := Transaction{Amount: 400, Description: "Deposit"}
	assert.Equal(t, "+$4.00 - Deposit", tx.Render(0))
	assert.Equal(t, "    +$4.00 - Deposit", tx.Render(4))

	fee := Transaction{Amount: -2500, Description: "Fee for overdraft from Savings Account"}
	assert.Equal(t, "-$25.00 - Fee for overdraft from Savings Account", fee.Render(0))
}

func TestAccountBalanceString(t *testing.T) {
	b := newTestBank(t)
	registerUser(t, b, "Ada", "ada")
	savings := openAccount(t, b, "ada", KindSavings, "", "")
	checking := openAccount(t, b, "ada", KindChecking, "", "s0")
	require.NoError(t, b.Deposit("s0", 100_000, ""))

	assert.Equal(t, "$1,000.00", savings.BalanceString(), "positive balances carry no sign")

	require.NoError(t, b.Withdraw("c0", 100, ""))
	assert.Equal(t, "-$25.00", checking.BalanceString())
}

func TestAccountRender(t *testing.T) {
	b := newTestBank(t)
	registerUser(t, b, "Ada", "ada")
	acc := openAccount(t, b, "ada", KindChecking, "", "")

	assert.Equal(t, "Checking Account (checking, c0): $0.00", acc.Render(0))

	require.NoError(t, b.Deposit("c0", 400, ""))
	require.NoError(t, b.Withdraw("c0", 150, "coffee"))

	want := "Checking Account (checking, c0): $2.50\n" +
		"    +$4.00 - Deposit\n" +
		"    -$1.50 - coffee"
	assert.Equal(t, want, acc.Render(0))
}

func TestUserRender(t *testing.T) {
	b := newTestBank(t)
	u := registerUser(t, b, "Ada Lovelace", "ada")

	assert.Equal(t, "User Account: Ada Lovelace (u0)\n    No accounts", u.Render(0))

	openAccount(t, b, "ada", KindChecking, "", "")
	openAccount(t, b, "ada", KindSavings, "", "")
	require.NoError(t, b.Deposit("c0", 400, ""))

	want := "User Account: Ada Lovelace (u0)\n" +
		"    Checking Account (checking, c0): $4.00\n" +
		"        +$4.00 - Deposit\n" +
		"    Savings Account (savings, s0): $0.00"
	assert.Equal(t, want, u.Render(0))
}
