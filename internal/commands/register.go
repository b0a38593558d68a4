package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minibank-dev/minibank/internal/auditlog"
)

func newRegisterCommand() *cobra.Command {
	var dir, name, username, password, pin string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(dir, name, username, password, pin)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "bank directory")
	cmd.Flags().StringVar(&name, "name", "", "display name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&username, "user", "", "username (required)")
	_ = cmd.MarkFlagRequired("user")
	cmd.Flags().StringVar(&password, "password", "", "password (required)")
	_ = cmd.MarkFlagRequired("password")
	cmd.Flags().StringVar(&pin, "pin", "", "PIN (required)")
	_ = cmd.MarkFlagRequired("pin")

	return cmd
}

func runRegister(dir, name, username, password, pin string) error {
	absDir, cfg, bank, err := loadBank(dir)
	if err != nil {
		return err
	}

	user, err := bank.Register(name, username, password, pin)
	if err != nil {
		return err
	}

	if err := persist(absDir, cfg, bank, auditlog.Entry{
		Username: username,
		Action:   "register",
	}); err != nil {
		return err
	}

	fmt.Printf("Registered %s as %q (%s)\n", name, username, user.ID())
	return nil
}
