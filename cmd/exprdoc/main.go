package main

import (
	"fmt"
	"os"

	"github.com/phillarmonic/exprdoc/cmd/exprdoc/app"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cli := app.NewApp(version, commit, date)
	if err := cli.Execute(); err != nil {
		fmt.Fprint(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}
