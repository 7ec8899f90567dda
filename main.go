package main

import (
	"fmt"

	"github.com/nomutin/Push2D/commands"
)

// main entry point to collection, replay, comparison and serving
func main() {
	rootCommand := commands.GetRootCommand()
	if err := rootCommand.Execute(); err != nil {
		fmt.Println(err)
	}
}
