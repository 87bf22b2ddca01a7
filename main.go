package main

import (
	"os"

	"logogrip/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
