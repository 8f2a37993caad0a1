package main

import (
	"os"

	"github.com/color-game/palettetool/cli"
)

func main() {
	os.Exit(cli.Execute())
}
