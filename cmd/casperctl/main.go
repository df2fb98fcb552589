// Command casperctl is a small command line client for a Casper server.
package main

import (
	"os"

	"github.com/casper-db/casper-go/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
