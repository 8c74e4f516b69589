package main

import (
	"os"

	"github.com/manaql/manaql-mcp/cmd/manaql"
)

func main() {
	if err := manaql.Execute(); err != nil {
		os.Exit(1)
	}
}
