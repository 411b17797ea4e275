package main

import (
	"os"

	"github.com/rgtlai/ai-newsletter/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
