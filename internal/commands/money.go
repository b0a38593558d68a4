package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minibank-dev/minibank/internal/money"
)

func newDepositCommand() *cobra.Command {
	var auth authFlags
	var description string

	cmd := &cobra.Command{
		Use:   "deposit <account-id> <amount>",
		Short: "Deposit into one of your accounts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cents, err := money.ParseCents(args[1])
			if err != nil {
				return err
			}

			s, err := auth.open()
			if err != nil {
				return err
			}

			acc, err := s.ownAccount(args[0])
			if err != nil {
				return err
			}
			if err := s.bank.Deposit(acc.ID(), cents, description); err != nil {
				return err
			}

			if err := s.save("deposit", acc.ID(), cents, description); err != nil {
				return err
			}

			fmt.Printf("Deposited %s into %s (%s): balance %s\n",
				money.Format(cents, money.SignNegative), acc.Name(), acc.ID(), acc.BalanceString())
			return nil
		},
	}

	auth.install(cmd, true)
	cmd.Flags().StringVar(&description, "description", "", "statement line description")

	return cmd
}

func newWithdrawCommand() *cobra.Command {
	var auth authFlags
	var description string

	cmd := &cobra.Command{
		Use:   "withdraw <account-id> <amount>",
		Short: "Withdraw from one of your accounts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cents, err := money.ParseCents(args[1])
			if err != nil {
				return err
			}

			s, err := auth.open()
			if err != nil {
				return err
			}

			acc, err := s.ownAccount(args[0])
			if err != nil {
				return err
			}
			if err := s.bank.Withdraw(acc.ID(), cents, description); err != nil {
				return err
			}

			if err := s.save("withdraw", acc.ID(), cents, description); err != nil {
				return err
			}

			fmt.Printf("Withdrew %s from %s (%s): balance %s\n",
				money.Format(cents, money.SignNegative), acc.Name(), acc.ID(), acc.BalanceString())
			return nil
		},
	}

	auth.install(cmd, true)
	cmd.Flags().StringVar(&description, "description", "", "statement line description")

	return cmd
}

func newTransferCommand() *cobra.Command {
	var auth authFlags

	cmd := &cobra.Command{
		Use:   "transfer <from-id> <to-id> <amount>",
		Short: "Transfer between accounts",
		Long: "Transfer from one of your accounts to any account in the bank. " +
			"The destination may belong to another user.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cents, err := money.ParseCents(args[2])
			if err != nil {
				return err
			}

			s, err := auth.open()
			if err != nil {
				return err
			}

			src, err := s.ownAccount(args[0])
			if err != nil {
				return err
			}
			if err := s.bank.Transfer(src.ID(), args[1], cents); err != nil {
				return err
			}

			if err := s.save("transfer", src.ID(), cents, "to "+args[1]); err != nil {
				return err
			}

			fmt.Printf("Transferred %s from %s to %s: balance %s\n",
				money.Format(cents, money.SignNegative), src.ID(), args[1], src.BalanceString())
			return nil
		},
	}

	auth.install(cmd, true)
	return cmd
}

func newInterestCommand() *cobra.Command {
	var auth authFlags

	cmd := &cobra.Command{
		Use:   "interest <account-id> <percent>",
		Short: "Accrue interest on a savings account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rate, err := money.ParseRate(args[1])
			if err != nil {
				return err
			}

			s, err := auth.open()
			if err != nil {
				return err
			}

			acc, err := s.ownAccount(args[0])
			if err != nil {
				return err
			}
			credited, err := s.bank.AddInterest(acc.ID(), rate)
			if err != nil {
				return err
			}

			if err := s.save("interest", acc.ID(), credited, money.FormatRate(rate)); err != nil {
				return err
			}

			fmt.Printf("Credited %s of interest to %s (%s): balance %s\n",
				money.Format(credited, money.SignNegative), acc.Name(), acc.ID(), acc.BalanceString())
			return nil
		},
	}

	auth.install(cmd, true)
	return cmd
}
