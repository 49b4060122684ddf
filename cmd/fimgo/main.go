// fimgo mines closed frequent itemsets from FIMI transaction files.
package main

import (
	"fmt"
	"os"

	"github.com/hupe1980/fimgo/cmd/fimgo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
