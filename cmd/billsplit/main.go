package main

import (
	"fmt"
	"os"

	"github.com/mkravets/billsplit/internal/cli"
	"github.com/mkravets/billsplit/pkg/logging"
)

func main() {
	logging.Setup()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
