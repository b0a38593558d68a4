// Package store persists a bank to a directory of CSV files. The ledger
// itself stays in-memory; commands load the directory, mutate, and save it
// back. Everything re-enters through ledger.Restore, so stored balances are
// rechecked against their transactions on every load.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/minibank-dev/minibank/internal/ledger"
)

const (
	usersFile        = "users.csv"
	accountsFile     = "accounts.csv"
	transactionsFile = "transactions.csv"
	stateFile        = "state.csv"
)

// Init writes empty CSV files (headers only) into dir.
func Init(dir string) error {
	files := map[string]string{
		usersFile:        UsersHeader,
		accountsFile:     AccountsHeader,
		transactionsFile: TransactionsHeader,
		stateFile:        StateHeader,
	}
	for name, header := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(header+"\n"), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}
	return nil
}

// Save writes the full bank state to dir, replacing the previous files.
func Save(dir string, snap ledger.Snapshot) error {
	var userRows, acctRows, txRows [][]string
	for _, us := range snap.Users {
		userRows = append(userRows, MarshalUser(us))
		for _, as := range us.Accounts {
			acctRows = append(acctRows, marshalAccount(accountRecord{Owner: us.Username, Account: as}))
			for _, tx := range as.Transactions {
				txRows = append(txRows, marshalTransaction(transactionRecord{AccountID: as.ID, Transaction: tx}))
			}
		}
	}

	var stateRows [][]string
	namespaces := make([]string, 0, len(snap.Counters))
	for ns := range snap.Counters {
		namespaces = append(namespaces, ns)
	}
	sort.Strings(namespaces)
	for _, ns := range namespaces {
		stateRows = append(stateRows, marshalState(ns, snap.Counters[ns]))
	}

	if err := writeFile(dir, usersFile, UsersHeader, userRows); err != nil {
		return err
	}
	if err := writeFile(dir, accountsFile, AccountsHeader, acctRows); err != nil {
		return err
	}
	if err := writeFile(dir, transactionsFile, TransactionsHeader, txRows); err != nil {
		return err
	}
	return writeFile(dir, stateFile, StateHeader, stateRows)
}

// Load rebuilds a Bank from dir. A directory with no users.csv yields an
// empty bank. authRounds applies to users registered after the load;
// existing credentials keep the rounds they were hashed with.
func Load(dir string, authRounds int) (*ledger.Bank, error) {
	var snap ledger.Snapshot

	stateRows, err := readFile(dir, stateFile, stateFields)
	if err != nil {
		return nil, err
	}
	if stateRows != nil {
		snap.Counters = make(map[string]int)
		for i, row := range stateRows {
			ns, next, err := unmarshalState(row)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: %w", stateFile, i+2, err)
			}
			snap.Counters[ns] = next
		}
	}

	userRows, err := readFile(dir, usersFile, userFields)
	if err != nil {
		return nil, err
	}

	userIdx := make(map[string]int)
	for i, row := range userRows {
		us, err := UnmarshalUser(row)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", usersFile, i+2, err)
		}
		userIdx[us.Username] = len(snap.Users)
		snap.Users = append(snap.Users, us)
	}

	acctRows, err := readFile(dir, accountsFile, acctFields)
	if err != nil {
		return nil, err
	}
	acctIdx := make(map[string][2]int) // account id -> (user index, account index)
	for i, row := range acctRows {
		rec, err := unmarshalAccount(row)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", accountsFile, i+2, err)
		}
		ui, ok := userIdx[rec.Owner]
		if !ok {
			return nil, fmt.Errorf("%s row %d: unknown owner %q", accountsFile, i+2, rec.Owner)
		}
		acctIdx[rec.Account.ID] = [2]int{ui, len(snap.Users[ui].Accounts)}
		snap.Users[ui].Accounts = append(snap.Users[ui].Accounts, rec.Account)
	}

	txRows, err := readFile(dir, transactionsFile, txFields)
	if err != nil {
		return nil, err
	}
	for i, row := range txRows {
		rec, err := unmarshalTransaction(row)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", transactionsFile, i+2, err)
		}
		loc, ok := acctIdx[rec.AccountID]
		if !ok {
			return nil, fmt.Errorf("%s row %d: unknown account %q", transactionsFile, i+2, rec.AccountID)
		}
		acct := &snap.Users[loc[0]].Accounts[loc[1]]
		acct.Transactions = append(acct.Transactions, rec.Transaction)
	}

	bank, err := ledger.Restore(snap, authRounds)
	if err != nil {
		return nil, fmt.Errorf("restoring bank from %s: %w", dir, err)
	}
	return bank, nil
}

func writeFile(dir, name, header string, rows [][]string) error {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	if err := writeRows(f, header, rows); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return f.Close()
}

func readFile(dir, name string, fields int) ([][]string, error) {
	f, err := os.Open(filepath.Join(dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	rows, err := readRows(f, fields)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return rows, nil
}
