// Command antennacheck runs the antenna rule checker against a design
// fixture and reports antenna-effect violations (spec.md §6.3).
package main

import (
	"fmt"
	"os"

	"github.com/exa-laboratories/OpenROAD/cmd/antennacheck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
