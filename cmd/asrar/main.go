// Command asrar is the Asrar numerology and timing engine.
package main

import (
	"os"

	"github.com/zaibaitech/asrar-sub001/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
