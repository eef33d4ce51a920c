package main

import (
	"github.com/deso-protocol/purehash/cmd"
)

func main() {
	// Flags are managed by viper, so every command reads its settings through
	// cmd.LoadConfig. For example:
	// $ ./purehash sum -a sha3-256 file.txt
	// triggers RunSum in cmd/sum.go.
	cmd.Execute()
}
