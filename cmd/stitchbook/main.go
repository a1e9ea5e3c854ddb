package main

import (
	"os"

	"github.com/stitchbook-dev/stitchbook/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
