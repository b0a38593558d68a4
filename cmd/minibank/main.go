package main

import (
	"os"

	"github.com/minibank-dev/minibank/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
