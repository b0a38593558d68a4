package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minibank-dev/minibank/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "minibank",
		Short:   "Terminal banking over a directory of CSVs",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newInitCommand(),
		newRegisterCommand(),
		newOpenCommand(),
		newCloseCommand(),
		newRenameCommand(),
		newDepositCommand(),
		newWithdrawCommand(),
		newTransferCommand(),
		newInterestCommand(),
		newStatementCommand(),
		newVerifyCommand(),
	)

	return rootCmd
}
