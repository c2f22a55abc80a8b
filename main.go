package main

import (
	"os"

	"github.com/daye-lim/shelfmate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
