package main

import (
	"os"

	"github.com/Kshitijkb28/port-manager/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
