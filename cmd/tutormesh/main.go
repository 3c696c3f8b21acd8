package main

import (
	"os"

	"github.com/tutormesh/tutormesh/cmd/tutormesh/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
