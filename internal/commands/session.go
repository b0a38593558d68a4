package commands

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/minibank-dev/minibank/internal/auditlog"
	"github.com/minibank-dev/minibank/internal/config"
	"github.com/minibank-dev/minibank/internal/gitops"
	"github.com/minibank-dev/minibank/internal/ledger"
	"github.com/minibank-dev/minibank/internal/store"
)

// errLoginFailed covers both unknown usernames and wrong passwords; the two
// are deliberately indistinguishable.
var errLoginFailed = errors.New("login failed")

// authFlags is the common flag set for commands acting on a bank directory
// as a logged-in user.
type authFlags struct {
	dir      string
	user     string
	password string
	pin      string
}

func (a *authFlags) install(cmd *cobra.Command, needPIN bool) {
	cmd.Flags().StringVar(&a.dir, "dir", ".", "bank directory")
	cmd.Flags().StringVar(&a.user, "user", "", "username (required)")
	_ = cmd.MarkFlagRequired("user")
	cmd.Flags().StringVar(&a.password, "password", "", "password (required)")
	_ = cmd.MarkFlagRequired("password")
	if needPIN {
		cmd.Flags().StringVar(&a.pin, "pin", "", "PIN (required)")
		_ = cmd.MarkFlagRequired("pin")
	}
}

// session is a loaded bank directory with an authenticated user.
type session struct {
	dir  string
	cfg  *config.Config
	bank *ledger.Bank
	user *ledger.User
}

// loadBank reads bank.yaml and the stored CSVs from dir.
func loadBank(dir string) (string, *config.Config, *ledger.Bank, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(absDir, "bank.yaml"))
	if err != nil {
		return "", nil, nil, fmt.Errorf("%s is not a bank directory (run init first): %w", absDir, err)
	}

	bank, err := store.Load(absDir, cfg.Auth.PBKDF2Rounds)
	if err != nil {
		return "", nil, nil, err
	}
	return absDir, cfg, bank, nil
}

// open loads the bank and authenticates. Money operations additionally
// require the PIN.
func (a *authFlags) open() (*session, error) {
	dir, cfg, bank, err := loadBank(a.dir)
	if err != nil {
		return nil, err
	}

	user, ok := bank.Login(a.user, a.password)
	if !ok {
		return nil, errLoginFailed
	}
	if a.pin != "" && !user.CheckPIN(a.pin) {
		return nil, errors.New("invalid PIN")
	}

	return &session{dir: dir, cfg: cfg, bank: bank, user: user}, nil
}

// ownAccount resolves an account id within the session user's accounts.
// Someone else's account is the same miss as a nonexistent one.
func (s *session) ownAccount(accountID string) (*ledger.Account, error) {
	acc, ok := s.bank.FindAccount(accountID)
	if !ok || acc.OwnerID() != s.user.ID() {
		return nil, fmt.Errorf("%q: %w", accountID, ledger.ErrAccountNotFound)
	}
	return acc, nil
}

// save persists the bank, appends one audit entry, and auto-commits when
// configured.
func (s *session) save(action, accountID string, amount int64, details string) error {
	return persist(s.dir, s.cfg, s.bank, auditlog.Entry{
		Username:  s.user.Username(),
		Action:    action,
		AccountID: accountID,
		Amount:    amount,
		Details:   details,
	})
}

func persist(dir string, cfg *config.Config, bank *ledger.Bank, entry auditlog.Entry) error {
	if err := store.Save(dir, bank.Snapshot()); err != nil {
		return err
	}

	entry.Timestamp = time.Now()
	if err := auditlog.Append(dir, []auditlog.Entry{entry}); err != nil {
		return err
	}

	if cfg.Git.AutoCommit && gitops.IsRepo(dir) {
		msg := entry.Action
		if entry.AccountID != "" {
			msg += ": " + entry.AccountID
		}
		if _, err := gitops.CommitAll(dir, msg, cfg.Git.AuthorName, cfg.Git.AuthorEmail); err != nil {
			return fmt.Errorf("auto-commit: %w", err)
		}
	}
	return nil
}
