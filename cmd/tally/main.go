package main

import (
	"os"

	"github.com/tallyware/tally/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
