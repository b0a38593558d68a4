package store

import (
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/minibank-dev/minibank/internal/auth"
	"github.com/minibank-dev/minibank/internal/ledger"
)

// UsersHeader is the CSV header for users.csv.
const UsersHeader = "username,user_id,name,pbkdf2_rounds,salt,password_hash,pin_hash"

const (
	userFields      = 7
	colUsername     = 0
	colUserID       = 1
	colUserName     = 2
	colRounds       = 3
	colSalt         = 4
	colPasswordHash = 5
	colPINHash      = 6
)

// AccountsHeader is the CSV header for accounts.csv.
const AccountsHeader = "account_id,kind,name,owner,overdraft_source,balance"

const (
	acctFields    = 6
	colAcctID     = 0
	colAcctKind   = 1
	colAcctName   = 2
	colAcctOwner  = 3
	colAcctSource = 4
	colAcctBal    = 5
)

// TransactionsHeader is the CSV header for transactions.csv.
const TransactionsHeader = "account_id,amount,description"

const (
	txFields  = 3
	colTxAcct = 0
	colTxAmt  = 1
	colTxDesc = 2
)

// StateHeader is the CSV header for state.csv, which records the next
// sequence number per id namespace so closed-account ids stay burned
// across reloads.
const StateHeader = "namespace,next_sequence"

const (
	stateFields  = 2
	colStateNS   = 0
	colStateNext = 1
)

// accountRecord pairs an account snapshot with its owner's username, which
// is how rows in accounts.csv reference users.csv.
type accountRecord struct {
	Owner   string
	Account ledger.AccountSnapshot
}

// transactionRecord pairs a transaction with its account id.
type transactionRecord struct {
	AccountID   string
	Transaction ledger.Transaction
}

// MarshalUser converts a user snapshot to a CSV row. Credential bytes are
// hex-encoded.
func MarshalUser(us ledger.UserSnapshot) []string {
	row := make([]string, userFields)
	row[colUsername] = us.Username
	row[colUserID] = us.ID
	row[colUserName] = us.Name
	row[colRounds] = strconv.Itoa(us.Credentials.Rounds)
	row[colSalt] = hex.EncodeToString(us.Credentials.Salt)
	row[colPasswordHash] = hex.EncodeToString(us.Credentials.PasswordHash)
	row[colPINHash] = hex.EncodeToString(us.Credentials.PINHash)
	return row
}

// UnmarshalUser converts a CSV row to a user snapshot (without accounts).
func UnmarshalUser(record []string) (ledger.UserSnapshot, error) {
	if len(record) != userFields {
		return ledger.UserSnapshot{}, fmt.Errorf("expected %d fields, got %d", userFields, len(record))
	}

	rounds, err := strconv.Atoi(record[colRounds])
	if err != nil {
		return ledger.UserSnapshot{}, fmt.Errorf("parsing pbkdf2_rounds %q: %w", record[colRounds], err)
	}

	salt, err := hex.DecodeString(record[colSalt])
	if err != nil {
		return ledger.UserSnapshot{}, fmt.Errorf("parsing salt: %w", err)
	}
	passwordHash, err := hex.DecodeString(record[colPasswordHash])
	if err != nil {
		return ledger.UserSnapshot{}, fmt.Errorf("parsing password_hash: %w", err)
	}
	pinHash, err := hex.DecodeString(record[colPINHash])
	if err != nil {
		return ledger.UserSnapshot{}, fmt.Errorf("parsing pin_hash: %w", err)
	}

	return ledger.UserSnapshot{
		ID:       record[colUserID],
		Username: record[colUsername],
		Name:     record[colUserName],
		Credentials: auth.Credentials{
			Salt:         salt,
			PasswordHash: passwordHash,
			PINHash:      pinHash,
			Rounds:       rounds,
		},
	}, nil
}

func marshalAccount(rec accountRecord) []string {
	row := make([]string, acctFields)
	row[colAcctID] = rec.Account.ID
	row[colAcctKind] = string(rec.Account.Kind)
	row[colAcctName] = rec.Account.Name
	row[colAcctOwner] = rec.Owner
	row[colAcctSource] = rec.Account.OverdraftSourceID
	row[colAcctBal] = strconv.FormatInt(rec.Account.Balance, 10)
	return row
}

func unmarshalAccount(record []string) (accountRecord, error) {
	if len(record) != acctFields {
		return accountRecord{}, fmt.Errorf("expected %d fields, got %d", acctFields, len(record))
	}

	balance, err := strconv.ParseInt(record[colAcctBal], 10, 64)
	if err != nil {
		return accountRecord{}, fmt.Errorf("parsing balance %q: %w", record[colAcctBal], err)
	}

	return accountRecord{
		Owner: record[colAcctOwner],
		Account: ledger.AccountSnapshot{
			ID:                record[colAcctID],
			Kind:              ledger.Kind(record[colAcctKind]),
			Name:              record[colAcctName],
			OverdraftSourceID: record[colAcctSource],
			Balance:           balance,
		},
	}, nil
}

func marshalTransaction(rec transactionRecord) []string {
	row := make([]string, txFields)
	row[colTxAcct] = rec.AccountID
	row[colTxAmt] = strconv.FormatInt(rec.Transaction.Amount, 10)
	row[colTxDesc] = rec.Transaction.Description
	return row
}

func unmarshalTransaction(record []string) (transactionRecord, error) {
	if len(record) != txFields {
		return transactionRecord{}, fmt.Errorf("expected %d fields, got %d", txFields, len(record))
	}

	amount, err := strconv.ParseInt(record[colTxAmt], 10, 64)
	if err != nil {
		return transactionRecord{}, fmt.Errorf("parsing amount %q: %w", record[colTxAmt], err)
	}

	return transactionRecord{
		AccountID: record[colTxAcct],
		Transaction: ledger.Transaction{
			Amount:      amount,
			Description: record[colTxDesc],
		},
	}, nil
}

func marshalState(namespace string, next int) []string {
	row := make([]string, stateFields)
	row[colStateNS] = namespace
	row[colStateNext] = strconv.Itoa(next)
	return row
}

func unmarshalState(record []string) (string, int, error) {
	if len(record) != stateFields {
		return "", 0, fmt.Errorf("expected %d fields, got %d", stateFields, len(record))
	}
	next, err := strconv.Atoi(record[colStateNext])
	if err != nil {
		return "", 0, fmt.Errorf("parsing next_sequence %q: %w", record[colStateNext], err)
	}
	return record[colStateNS], next, nil
}

func readRows(r io.Reader, fields int) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = fields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}
	return records[1:], nil
}

func writeRows(w io.Writer, header string, rows [][]string) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}
