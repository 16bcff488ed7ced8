package main

import (
	"os"

	"github.com/jhoicas/chronos-ledger/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
