package main

import (
	"os"

	"github.com/Mr-H-06/Rcompiler/cmd"
)

func main() {
	os.Exit(cmd.Execute(cmd.NoFrontend{}))
}
