package main

import (
	"os"

	"github.com/bnema/topicd/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
