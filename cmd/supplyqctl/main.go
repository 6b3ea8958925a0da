package main

import (
	"os"

	"github.com/supplyq/supplyq/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
