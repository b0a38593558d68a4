package ledger

import (
	"fmt"
	"sort"
	"sync"

	"github.com/minibank-dev/minibank/internal/auth"
	"github.com/minibank-dev/minibank/internal/id"
	"github.com/minibank-dev/minibank/internal/money"
)

// Bank is the registry of users and the single entry point for every
// account mutation. One mutex serializes all operations; transfer and
// overdraft chaining touch two accounts in one logical step and must not
// interleave, or the balance-equals-sum-of-transactions invariant breaks.
type Bank struct {
	mu         sync.Mutex
	ids        *id.Generator
	users      map[string]*User // by username
	authRounds int
}

// New creates an empty Bank. authRounds is the PBKDF2 iteration count used
// for new credentials.
func New(authRounds int) *Bank {
	return &Bank{
		ids:        id.NewGenerator(),
		users:      make(map[string]*User),
		authRounds: authRounds,
	}
}

// Register creates a user account. The username must be unused.
func (b *Bank) Register(name, username, password, pin string) (*User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if name == "" {
		return nil, ErrEmptyName
	}
	if _, taken := b.users[username]; taken {
		return nil, fmt.Errorf("%q: %w", username, ErrUsernameTaken)
	}

	creds, err := auth.NewCredentials(password, pin, b.authRounds)
	if err != nil {
		return nil, fmt.Errorf("hashing credentials: %w", err)
	}

	u := &User{
		id:       b.ids.Next("u"),
		username: username,
		name:     name,
		creds:    creds,
	}
	b.users[username] = u
	return u, nil
}

// Login returns the user on a credential match. An unknown username and a
// wrong password are indistinguishable misses.
func (b *Bank) Login(username, password string) (*User, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	u, ok := b.users[username]
	if !ok || !u.CheckPassword(password) {
		return nil, false
	}
	return u, true
}

// UsernameTaken reports whether a username is already registered.
func (b *Bank) UsernameTaken(username string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, taken := b.users[username]
	return taken
}

// GetUser returns a registered user by username.
func (b *Bank) GetUser(username string) (*User, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u, ok := b.users[username]
	return u, ok
}

// Users returns all registered users, ordered by username.
func (b *Bank) Users() []*User {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]*User, 0, len(b.users))
	for _, u := range b.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].username < out[j].username })
	return out
}

// DeleteUser removes a user and destroys all their accounts. Their ids are
// never reused.
func (b *Bank) DeleteUser(username string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	u, ok := b.users[username]
	if !ok {
		return fmt.Errorf("%q: %w", username, ErrUserNotFound)
	}
	delete(b.users, username)
	for _, acc := range u.accounts {
		b.clearOverdraftReferencesLocked(acc.id)
	}
	return nil
}

// OpenAccount creates a checking or savings account for a user. name
// defaults per kind. overdraftSourceID, allowed on checking only, must name
// an existing account (possibly another user's); it is borrowed, never
// owned.
func (b *Bank) OpenAccount(username string, kind Kind, name, overdraftSourceID string) (*Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	u, ok := b.users[username]
	if !ok {
		return nil, fmt.Errorf("%q: %w", username, ErrUserNotFound)
	}

	var namespace, defaultName string
	switch kind {
	case KindChecking:
		namespace, defaultName = "c", "Checking Account"
	case KindSavings:
		namespace, defaultName = "s", "Savings Account"
		if overdraftSourceID != "" {
			return nil, ErrNotChecking
		}
	default:
		return nil, fmt.Errorf("%q: %w", kind, ErrInvalidKind)
	}

	if overdraftSourceID != "" {
		if _, ok := b.findAccountLocked(overdraftSourceID); !ok {
			return nil, fmt.Errorf("overdraft source %q: %w", overdraftSourceID, ErrAccountNotFound)
		}
	}

	acc := &Account{
		id:                b.ids.Next(namespace),
		kind:              kind,
		name:              orDefault(name, defaultName),
		ownerID:           u.id,
		overdraftSourceID: overdraftSourceID,
	}
	u.accounts = append(u.accounts, acc)
	return acc, nil
}

// CloseAccount removes an account from its owner permanently. The history
// is destroyed with it; the id is never reused.
func (b *Bank) CloseAccount(username, accountID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	u, ok := b.users[username]
	if !ok {
		return fmt.Errorf("%q: %w", username, ErrUserNotFound)
	}
	for i, acc := range u.accounts {
		if acc.id == accountID {
			u.accounts = append(u.accounts[:i], u.accounts[i+1:]...)
			b.clearOverdraftReferencesLocked(accountID)
			return nil
		}
	}
	return fmt.Errorf("%q: %w", accountID, ErrAccountNotFound)
}

// clearOverdraftReferencesLocked detaches any checking account whose
// overdraft source was just destroyed. The source was only ever borrowed;
// losing it downgrades those accounts to plain insufficient-funds behavior.
func (b *Bank) clearOverdraftReferencesLocked(accountID string) {
	for _, u := range b.users {
		for _, acc := range u.accounts {
			if acc.overdraftSourceID == accountID {
				acc.overdraftSourceID = ""
			}
		}
	}
}

// RenameAccount changes an account's display name.
func (b *Bank) RenameAccount(accountID, name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if name == "" {
		return ErrEmptyName
	}
	acc, ok := b.findAccountLocked(accountID)
	if !ok {
		return fmt.Errorf("%q: %w", accountID, ErrAccountNotFound)
	}
	acc.name = name
	return nil
}

// FindAccount looks an account up across all users, e.g. to validate a
// transfer destination.
func (b *Bank) FindAccount(accountID string) (*Account, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.findAccountLocked(accountID)
}

// Deposit credits an account and posts one transaction.
func (b *Bank) Deposit(accountID string, amount int64, description string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	acc, ok := b.findAccountLocked(accountID)
	if !ok {
		return fmt.Errorf("%q: %w", accountID, ErrAccountNotFound)
	}
	return acc.deposit(amount, description)
}

// Withdraw debits an account. Checking accounts may chain to their
// overdraft source; see withdrawLocked.
func (b *Bank) Withdraw(accountID string, amount int64, description string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	acc, ok := b.findAccountLocked(accountID)
	if !ok {
		return fmt.Errorf("%q: %w", accountID, ErrAccountNotFound)
	}
	return b.withdrawLocked(acc, amount, description)
}

// Transfer withdraws from src and deposits to dst as one atomic step.
// The deposit runs strictly after a successful withdraw and cannot itself
// fail (the amount is already known non-negative), so a failed withdraw
// leaves both accounts untouched.
func (b *Bank) Transfer(srcID, dstID string, amount int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	src, ok := b.findAccountLocked(srcID)
	if !ok {
		return fmt.Errorf("%q: %w", srcID, ErrAccountNotFound)
	}
	dst, ok := b.findAccountLocked(dstID)
	if !ok {
		return fmt.Errorf("%q: %w", dstID, ErrAccountNotFound)
	}
	if src == dst {
		return ErrSelfTransfer
	}
	if amount < 0 {
		return ErrInvalidAmount
	}

	toMsg := "Transfer to " + b.displayNameLocked(dst, src)
	fromMsg := "Transfer from " + b.displayNameLocked(src, dst)

	if err := b.withdrawLocked(src, amount, toMsg); err != nil {
		return err
	}
	if err := dst.deposit(amount, fromMsg); err != nil {
		// Unreachable: the amount was validated non-negative above.
		return err
	}
	return nil
}

// AddInterest accrues interest on a savings account. rate is in thousandths
// of a percent (10525 = 10.525%); the credited amount is
// balance*rate/1_000_000, truncated. Returns the credited amount.
// Negative rates are rejected: a debit labeled "Interest" would be
// misleading on a statement.
func (b *Bank) AddInterest(accountID string, rate int64) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	acc, ok := b.findAccountLocked(accountID)
	if !ok {
		return 0, fmt.Errorf("%q: %w", accountID, ErrAccountNotFound)
	}
	if acc.kind != KindSavings {
		return 0, fmt.Errorf("%s: %w", acc.id, ErrNotSavings)
	}
	if rate < 0 {
		return 0, ErrInvalidAmount
	}

	amount := acc.balance * rate / 1_000_000
	acc.balance += amount
	acc.post(amount, "Interest of "+money.FormatRate(rate))
	return amount, nil
}

// withdrawLocked applies the per-kind withdrawal rules. For checking:
//   - a negative balance blocks any further withdrawal until resolved
//   - a covered amount debits normally
//   - a shortfall is withdrawn from the overdraft source first (subject to
//     that account's own rules; on failure this account is untouched), then
//     the remaining balance is zeroed by an "Overdraft partial" debit and a
//     separate fee debit leaves the balance at exactly -OverdraftFee. Two
//     records for one logical withdrawal keeps the fee auditable on the
//     statement.
func (b *Bank) withdrawLocked(acc *Account, amount int64, description string) error {
	if acc.kind != KindChecking {
		return acc.withdrawBase(amount, description)
	}

	if acc.balance < 0 {
		return ErrAlreadyOverdrawn
	}
	if amount < 0 {
		return ErrInvalidAmount
	}
	if amount <= acc.balance {
		acc.balance -= amount
		acc.post(-amount, orDefault(description, "Withdrawal"))
		return nil
	}

	if acc.overdraftSourceID == "" {
		return ErrInsufficientFunds
	}
	src, ok := b.findAccountLocked(acc.overdraftSourceID)
	if !ok {
		return fmt.Errorf("overdraft source %q: %w", acc.overdraftSourceID, ErrAccountNotFound)
	}

	shortfall := amount - acc.balance
	if err := b.withdrawLocked(src, shortfall, withDetail("Overdraft from "+acc.name, description)); err != nil {
		return err
	}

	prior := acc.balance
	acc.post(-prior, withDetail("Overdraft partial", description))
	acc.post(-OverdraftFee, withDetail("Fee for overdraft from "+src.name, description))
	acc.balance = -OverdraftFee
	return nil
}

// findAccountLocked scans every user's accounts. At most one account may
// carry an id; two is corrupted state, not a recoverable miss.
func (b *Bank) findAccountLocked(accountID string) (*Account, bool) {
	var found *Account
	for _, u := range b.users {
		for _, acc := range u.accounts {
			if acc.id == accountID {
				if found != nil {
					panic(fmt.Sprintf("ledger: duplicate account id %q", accountID))
				}
				found = acc
			}
		}
	}
	return found, found != nil
}

// displayNameLocked formats an account for transfer descriptions. Owner
// attribution appears only when the two accounts have different owners;
// same-owner transfers omit it.
func (b *Bank) displayNameLocked(acc, relativeTo *Account) string {
	if relativeTo == nil || acc.ownerID == relativeTo.ownerID {
		return fmt.Sprintf("%s (%s)", acc.name, acc.id)
	}
	owner, ok := b.userByIDLocked(acc.ownerID)
	if !ok {
		return fmt.Sprintf("%s (%s)", acc.name, acc.id)
	}
	return fmt.Sprintf("%s (%s) owned by %s (%s)", acc.name, acc.id, owner.name, owner.id)
}

func (b *Bank) userByIDLocked(userID string) (*User, bool) {
	for _, u := range b.users {
		if u.id == userID {
			return u, true
		}
	}
	return nil, false
}
