package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minibank-dev/minibank/internal/ledger"
)

func newOpenCommand() *cobra.Command {
	var auth authFlags
	var accountName, overdraftSource string

	cmd := &cobra.Command{
		Use:   "open <checking|savings>",
		Short: "Open a checking or savings account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := auth.open()
			if err != nil {
				return err
			}

			acc, err := s.bank.OpenAccount(s.user.Username(), ledger.Kind(args[0]), accountName, overdraftSource)
			if err != nil {
				return err
			}

			if err := s.save("open", acc.ID(), 0, string(acc.Kind())); err != nil {
				return err
			}

			fmt.Printf("Opened %s (%s, %s)\n", acc.Name(), acc.Kind(), acc.ID())
			return nil
		},
	}

	auth.install(cmd, false)
	cmd.Flags().StringVar(&accountName, "account-name", "", "display name (defaults per kind)")
	cmd.Flags().StringVar(&overdraftSource, "overdraft-source", "", "account id to draw on when overdrawn (checking only)")

	return cmd
}

func newCloseCommand() *cobra.Command {
	var auth authFlags

	cmd := &cobra.Command{
		Use:   "close <account-id>",
		Short: "Close one of your accounts permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := auth.open()
			if err != nil {
				return err
			}

			acc, err := s.ownAccount(args[0])
			if err != nil {
				return err
			}
			if err := s.bank.CloseAccount(s.user.Username(), acc.ID()); err != nil {
				return err
			}

			if err := s.save("close", acc.ID(), 0, acc.Name()); err != nil {
				return err
			}

			fmt.Printf("Closed %s (%s)\n", acc.Name(), acc.ID())
			return nil
		},
	}

	auth.install(cmd, false)
	return cmd
}

func newRenameCommand() *cobra.Command {
	var auth authFlags

	cmd := &cobra.Command{
		Use:   "rename <account-id> <name>",
		Short: "Rename one of your accounts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := auth.open()
			if err != nil {
				return err
			}

			acc, err := s.ownAccount(args[0])
			if err != nil {
				return err
			}
			if err := s.bank.RenameAccount(acc.ID(), args[1]); err != nil {
				return err
			}

			if err := s.save("rename", acc.ID(), 0, args[1]); err != nil {
				return err
			}

			fmt.Printf("Renamed %s to %s\n", acc.ID(), acc.Name())
			return nil
		},
	}

	auth.install(cmd, false)
	return cmd
}

func newStatementCommand() *cobra.Command {
	var auth authFlags

	cmd := &cobra.Command{
		Use:   "statement [account-id]",
		Short: "Print your accounts and their histories",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := auth.open()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				fmt.Println(s.user.Render(0))
				return nil
			}

			acc, err := s.ownAccount(args[0])
			if err != nil {
				return err
			}
			fmt.Println(acc.Render(0))
			return nil
		},
	}

	auth.install(cmd, false)
	return cmd
}
