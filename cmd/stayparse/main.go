package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joseph-ayodele/stayparse/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		if !errors.Is(err, cli.ErrParseFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
