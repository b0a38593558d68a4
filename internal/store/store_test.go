package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minibank-dev/minibank/internal/ledger"
)

const testRounds = 16

func buildBank(t *testing.T) *ledger.Bank {
	t.Helper()
	b := ledger.New(testRounds)

	_, err := b.Register("Ada Lovelace", "ada", "password", "1234")
	require.NoError(t, err)
	_, err = b.Register("Grace Hopper", "grace", "hunter2", "9999")
	require.NoError(t, err)

	_, err = b.OpenAccount("ada", ledger.KindSavings, "", "")
	require.NoError(t, err)
	_, err = b.OpenAccount("ada", ledger.KindChecking, "", "s0")
	require.NoError(t, err)
	_, err = b.OpenAccount("grace", ledger.KindChecking, "Bills", "")
	require.NoError(t, err)

	require.NoError(t, b.Deposit("s0", 100_000, ""))
	require.NoError(t, b.Deposit("c0", 500, ""))
	require.NoError(t, b.Withdraw("c0", 2000, "rent"))
	require.NoError(t, b.Deposit("c1", 7500, "paycheck, week 1"))
	return b
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(dir))

	headers := map[string]string{
		"users.csv":        UsersHeader,
		"accounts.csv":     AccountsHeader,
		"transactions.csv": TransactionsHeader,
		"state.csv":        StateHeader,
	}
	for name, header := range headers {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, "%s should exist", name)
		assert.Equal(t, header+"\n", string(data))
	}

	// An initialized-but-empty directory loads as an empty bank.
	b, err := Load(dir, testRounds)
	require.NoError(t, err)
	assert.Empty(t, b.Users())
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	b := buildBank(t)
	require.NoError(t, Save(dir, b.Snapshot()))

	loaded, err := Load(dir, testRounds)
	require.NoError(t, err)

	for _, accID := range []string{"s0", "c0", "c1"} {
		orig, ok := b.FindAccount(accID)
		require.True(t, ok)
		got, ok := loaded.FindAccount(accID)
		require.True(t, ok, "account %s survives the round trip", accID)

		assert.Equal(t, orig.Balance(), got.Balance())
		assert.Equal(t, orig.Kind(), got.Kind())
		assert.Equal(t, orig.Name(), got.Name())
		assert.Equal(t, orig.OverdraftSourceID(), got.OverdraftSourceID())
		assert.Equal(t, orig.Transactions(), got.Transactions(), "history order preserved, commas and all")
	}

	_, ok := loaded.Login("ada", "password")
	assert.True(t, ok)
	_, ok = loaded.Login("grace", "hunter2")
	assert.True(t, ok)
	_, ok = loaded.Login("grace", "password")
	assert.False(t, ok)

	assert.Empty(t, loaded.Verify())
}

func TestSaveLoad_ClosedIDsStayBurned(t *testing.T) {
	dir := t.TempDir()
	b := buildBank(t)
	require.NoError(t, b.CloseAccount("grace", "c1"))
	require.NoError(t, Save(dir, b.Snapshot()))

	loaded, err := Load(dir, testRounds)
	require.NoError(t, err)

	acc, err := loaded.OpenAccount("grace", ledger.KindChecking, "", "")
	require.NoError(t, err)
	assert.Equal(t, "c2", acc.ID())
}

func TestLoad_MissingDirIsEmptyBank(t *testing.T) {
	b, err := Load(t.TempDir(), testRounds)
	require.NoError(t, err)
	assert.Empty(t, b.Users())
}

func TestLoad_TamperedBalance(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Save(dir, buildBank(t).Snapshot()))

	path := filepath.Join(dir, "accounts.csv")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	tampered := strings.Replace(string(data), ",7500", ",9999", 1)
	require.NotEqual(t, string(data), tampered)
	require.NoError(t, os.WriteFile(path, []byte(tampered), 0o644))

	_, err = Load(dir, testRounds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transaction sum")
}

func TestLoad_UnknownOwner(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Save(dir, buildBank(t).Snapshot()))

	path := filepath.Join(dir, "accounts.csv")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	tampered := strings.ReplaceAll(string(data), ",grace,", ",ghost,")
	require.NoError(t, os.WriteFile(path, []byte(tampered), 0o644))

	_, err = Load(dir, testRounds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown owner")
}

func TestLoad_UnknownTransactionAccount(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Save(dir, buildBank(t).Snapshot()))

	f, err := os.OpenFile(filepath.Join(dir, "transactions.csv"), os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("c99,100,phantom\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = Load(dir, testRounds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown account")
}

func TestUserMarshalRoundTrip(t *testing.T) {
	b := buildBank(t)
	snap := b.Snapshot()

	for _, us := range snap.Users {
		got, err := UnmarshalUser(MarshalUser(us))
		require.NoError(t, err)
		us.Accounts = nil
		assert.Equal(t, us, got)
	}
}
