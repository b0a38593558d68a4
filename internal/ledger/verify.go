package ledger

import "fmt"

// ValidationError describes a single invariant violation found in a bank.
type ValidationError struct {
	Invariant   int
	AccountID   string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invariant %d [%s]: %s", e.Invariant, e.AccountID, e.Description)
}

// Verify checks four invariants over the whole bank:
//  1. every balance equals the sum of its transaction amounts
//  2. account ids are unique across all users
//  3. an overdraft source, when set, names an existing account
//  4. only checking accounts carry an overdraft source
//
// A healthy bank returns nil; the slice exists for the verify command and
// for tests asserting corruption is caught.
func (b *Bank) Verify() []ValidationError {
	b.mu.Lock()
	defer b.mu.Unlock()

	var errs []ValidationError

	allIDs := make(map[string]int)
	for _, u := range b.users {
		for _, acc := range u.accounts {
			allIDs[acc.id]++
		}
	}

	for _, u := range b.users {
		for _, acc := range u.accounts {
			var sum int64
			for _, t := range acc.transactions {
				sum += t.Amount
			}
			if sum != acc.balance {
				errs = append(errs, ValidationError{
					Invariant:   1,
					AccountID:   acc.id,
					Description: fmt.Sprintf("balance %d != transaction sum %d", acc.balance, sum),
				})
			}

			if allIDs[acc.id] > 1 {
				errs = append(errs, ValidationError{
					Invariant:   2,
					AccountID:   acc.id,
					Description: fmt.Sprintf("id held by %d accounts", allIDs[acc.id]),
				})
			}

			if acc.overdraftSourceID != "" {
				if _, ok := allIDs[acc.overdraftSourceID]; !ok {
					errs = append(errs, ValidationError{
						Invariant:   3,
						AccountID:   acc.id,
						Description: fmt.Sprintf("overdraft source %q does not exist", acc.overdraftSourceID),
					})
				}
				if acc.kind != KindChecking {
					errs = append(errs, ValidationError{
						Invariant:   4,
						AccountID:   acc.id,
						Description: fmt.Sprintf("%s account carries an overdraft source", acc.kind),
					})
				}
			}
		}
	}

	return errs
}
