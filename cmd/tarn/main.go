package main

import (
	"os"

	"github.com/tarn-lang/tarn/pkg/cli"
)

func main() {
	os.Exit(cli.Entry(os.Args[1:], os.Stdout, os.Stderr))
}
