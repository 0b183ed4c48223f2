package main

import (
	"os"

	"github.com/SscSPs/ledger_engine/cmd/ledger_backend/cmd"
)

//go:generate swag init -g cmd/ledger_backend/cmd/serve.go -o cmd/docs -d ../../ --outputTypes go --overridesFile ../../.swaggo

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
