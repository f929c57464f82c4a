package main

import (
	"os"

	"github.com/jhoicas/invoice-draft/cmd/draftctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
