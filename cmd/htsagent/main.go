package main

import (
	"os"

	"github.com/tradedesk/htsagent/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
