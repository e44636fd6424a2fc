package main

import (
	"os"

	"github.com/drillq/drillq/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
