package ledger

import (
	"fmt"

	"github.com/minibank-dev/minibank/internal/auth"
)

// Snapshot is a plain-data export of a Bank, for persistence layers. The
// ledger package owns the only path back in (Restore), so stored data
// re-enters through the same integrity checks live data lives under.
type Snapshot struct {
	Users []UserSnapshot

	// Counters holds the next sequence number per id namespace. Closed
	// accounts leave no row behind, so without this their ids would be
	// reissued after a reload.
	Counters map[string]int
}

// UserSnapshot is one user and their accounts.
type UserSnapshot struct {
	ID          string
	Username    string
	Name        string
	Credentials auth.Credentials
	Accounts    []AccountSnapshot
}

// AccountSnapshot is one account with its full history.
type AccountSnapshot struct {
	ID                string
	Kind              Kind
	Name              string
	OverdraftSourceID string
	Balance           int64
	Transactions      []Transaction
}

// Snapshot exports the bank's full state. Users appear in username order,
// accounts in opening order.
func (b *Bank) Snapshot() Snapshot {
	snap := Snapshot{Counters: b.ids.Counters()}
	for _, u := range b.Users() {
		us := UserSnapshot{
			ID:          u.id,
			Username:    u.username,
			Name:        u.name,
			Credentials: u.creds,
		}
		for _, acc := range u.accounts {
			us.Accounts = append(us.Accounts, AccountSnapshot{
				ID:                acc.id,
				Kind:              acc.kind,
				Name:              acc.name,
				OverdraftSourceID: acc.overdraftSourceID,
				Balance:           acc.balance,
				Transactions:      acc.Transactions(),
			})
		}
		snap.Users = append(snap.Users, us)
	}
	return snap
}

// Restore rebuilds a Bank from a snapshot. Each account's stored balance
// must equal the sum of its transactions, usernames and account ids must be
// unique, and every id is observed so the generators never reissue one.
func Restore(snap Snapshot, authRounds int) (*Bank, error) {
	b := New(authRounds)
	for ns, next := range snap.Counters {
		b.ids.SetFloor(ns, next)
	}
	seenAccounts := make(map[string]bool)

	for _, us := range snap.Users {
		if _, dup := b.users[us.Username]; dup {
			return nil, fmt.Errorf("duplicate username %q", us.Username)
		}

		u := &User{
			id:       us.ID,
			username: us.Username,
			name:     us.Name,
			creds:    us.Credentials,
		}
		b.ids.Observe(us.ID)

		for _, as := range us.Accounts {
			if seenAccounts[as.ID] {
				return nil, fmt.Errorf("duplicate account id %q", as.ID)
			}
			seenAccounts[as.ID] = true

			var sum int64
			for _, t := range as.Transactions {
				sum += t.Amount
			}
			if sum != as.Balance {
				return nil, fmt.Errorf("account %s: stored balance %d != transaction sum %d",
					as.ID, as.Balance, sum)
			}

			acc := &Account{
				id:                as.ID,
				kind:              as.Kind,
				name:              as.Name,
				ownerID:           u.id,
				overdraftSourceID: as.OverdraftSourceID,
				balance:           as.Balance,
			}
			acc.transactions = make([]Transaction, len(as.Transactions))
			copy(acc.transactions, as.Transactions)
			b.ids.Observe(as.ID)

			u.accounts = append(u.accounts, acc)
		}
		b.users[us.Username] = u
	}
	return b, nil
}
