//go:build ignore

// Writes sample.png: six colour bands, one for each swatch kind, with band
// heights that give each kind a different population.
//
//	go run testdata/generate_sample.go [output]
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

var bands = []struct {
	name   string
	c      color.RGBA
	height int
}{
	{"light vibrant", color.RGBA{R: 0xFF, G: 0x80, B: 0x80, A: 0xFF}, 60},
	{"vibrant", color.RGBA{R: 0x00, G: 0x00, B: 0xFF, A: 0xFF}, 90},
	{"dark vibrant", color.RGBA{R: 0x00, G: 0x00, B: 0x80, A: 0xFF}, 50},
	{"light muted", color.RGBA{R: 0xA0, G: 0xB0, B: 0xC0, A: 0xFF}, 70},
	{"muted", color.RGBA{R: 0x60, G: 0x70, B: 0x80, A: 0xFF}, 80},
	{"dark muted", color.RGBA{R: 0x30, G: 0x38, B: 0x40, A: 0xFF}, 50},
}

func main() {
	out := "testdata/sample.png"
	if len(os.Args) > 1 {
		out = os.Args[1]
	}

	const width = 200
	height := 0
	for _, b := range bands {
		height += b.height
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	y := 0
	for _, b := range bands {
		for ; y < height && b.height > 0; b.height-- {
			for x := 0; x < width; x++ {
				img.Set(x, y, b.c)
			}
			y++
		}
	}

	f, err := os.Create(out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create %s: %v\n", out, err)
		os.Exit(1)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode image: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (%dx%d)\n", out, width, height)
}
