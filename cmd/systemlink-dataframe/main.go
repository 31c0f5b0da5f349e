package main

import (
	"os"

	"github.com/rbell517/systemlink-go/cmd/systemlink-dataframe/cli"
)

func main() {
	if err := cli.RootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
