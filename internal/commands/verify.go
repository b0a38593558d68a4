package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVerifyCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check the stored ledger's invariants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, _, bank, err := loadBank(dir)
			if err != nil {
				return err
			}

			errs := bank.Verify()
			if len(errs) == 0 {
				fmt.Printf("%s: ok\n", absDir)
				return nil
			}

			for _, ve := range errs {
				fmt.Println(ve.Error())
			}
			return fmt.Errorf("%d invariant violation(s)", len(errs))
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "bank directory")
	return cmd
}
