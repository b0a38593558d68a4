package ledger

import "errors"

// Failures of account mutations are expected outcomes, not panics; callers
// match on these sentinels and decide whether to re-prompt or surface.
var (
	ErrInvalidAmount     = errors.New("amount cannot be negative")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAlreadyOverdrawn  = errors.New("currently overdrawn; cannot withdraw")
	ErrSelfTransfer      = errors.New("cannot transfer to self")
	ErrUsernameTaken     = errors.New("username already taken")
	ErrAccountNotFound   = errors.New("account not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrNotSavings        = errors.New("account does not accrue interest")
	ErrNotChecking       = errors.New("only checking accounts take an overdraft source")
	ErrInvalidKind       = errors.New("invalid account kind")
	ErrEmptyName         = errors.New("name cannot be empty")
)
