// main holds the entry logic for the wefarm CLI.
package main

import (
	"fmt"
	"os"

	"github.com/datakit/wefarm/cmd"
)

// main is the entry point for the wefarm analyzer.
func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Println("❌", err)
		os.Exit(1)
	}
}
