// Command treevent runs document scenarios against the treevent event model
// and inspects dispatch journals.
package main

import (
	"fmt"
	"os"

	"github.com/randalmurphal/treevent/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "treevent:", err)
		os.Exit(1)
	}
}
