package main

import (
	"os"

	"github.com/archivetools/petabox/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
