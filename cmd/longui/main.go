// Command longui builds widget descriptions and inspects their layout.
package main

import (
	"fmt"
	"os"

	"github.com/go-longui/longui/cmd/longui/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
