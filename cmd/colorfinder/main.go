// Color Finder - find the key colours of an image
//
// Color Finder extracts the light vibrant, vibrant, dark vibrant, light
// muted, muted and dark muted colours of an image and copies their hex
// codes to the clipboard.
package main

import (
	"os"

	"github.com/jmylchreest/colorfinder/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
