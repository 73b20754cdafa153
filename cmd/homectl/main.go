package main

import (
	"os"

	"github.com/homelink/smarthome-system/cmd/homectl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
