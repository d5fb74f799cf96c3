package main

import (
	"os"

	"github.com/Sternrassler/postfeed/cmd/postfeed/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
