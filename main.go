package main

import (
	"os"

	"github.com/nestlingapp/nestling/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
