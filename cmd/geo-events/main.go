package main

import (
	"os"

	"github.com/klabast/wb-services/geo-events/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
