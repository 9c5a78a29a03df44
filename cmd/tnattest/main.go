package main

import (
	"os"

	"github.com/trufnetwork/tnattest/cmd/tnattest/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
