package ledger

import (
	"fmt"
	"strings"

	"github.com/minibank-dev/minibank/internal/auth"
)

// User owns an ordered collection of checking/savings accounts. Users are
// accounts too: they carry an id from the "u" namespace and a display name.
type User struct {
	id       string
	username string
	name     string
	creds    auth.Credentials
	accounts []*Account
}

// ID returns the user's account id, e.g. "u0".
func (u *User) ID() string { return u.id }

// Username returns the registry key.
func (u *User) Username() string { return u.username }

// Name returns the display name.
func (u *User) Name() string { return u.name }

// Accounts returns the user's accounts in opening order.
func (u *User) Accounts() []*Account {
	out := make([]*Account, len(u.accounts))
	copy(out, u.accounts)
	return out
}

// CheckPassword reports whether password matches.
func (u *User) CheckPassword(password string) bool {
	return u.creds.CheckPassword(password)
}

// CheckPIN reports whether pin matches.
func (u *User) CheckPIN(pin string) bool {
	return u.creds.CheckPIN(pin)
}

// SetPassword replaces the user's password.
func (u *User) SetPassword(password string) {
	u.creds.SetPassword(password)
}

// SetPIN replaces the user's PIN.
func (u *User) SetPIN(pin string) {
	u.creds.SetPIN(pin)
}

// Render formats the user header and each owned account indented four
// further spaces.
func (u *User) Render(indent int) string {
	pad := strings.Repeat(" ", indent)
	header := fmt.Sprintf("%sUser Account: %s (%s)", pad, u.name, u.id)
	if len(u.accounts) == 0 {
		return fmt.Sprintf("%s\n%sNo accounts", header, strings.Repeat(" ", indent+4))
	}

	lines := make([]string, 0, len(u.accounts)+1)
	lines = append(lines, header)
	for _, acc := range u.accounts {
		lines = append(lines, acc.Render(indent+4))
	}
	return strings.Join(lines, "\n")
}
