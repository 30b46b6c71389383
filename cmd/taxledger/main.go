package main

import "github.com/LeJamon/goTaxLedger/internal/cli"

func main() {
	cli.Execute()
}
