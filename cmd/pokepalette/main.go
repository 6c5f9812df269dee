// pokepalette - themed colour palettes from creature sprites
//
// pokepalette clusters a sprite image into a five-colour base palette and
// extends it with complementary and monochromatic variants.
package main

import (
	"os"

	"github.com/jmylchreest/pokepalette/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
