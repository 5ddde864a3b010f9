package palette

import (
	"context"
	"fmt"
	"image"
	"math"
	"slices"

	"github.com/EdlinOrg/prominentcolor"
	"github.com/cenkalti/dominantcolor"
	"github.com/hashicorp/go-hclog"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/jmylchreest/colorfinder/internal/colour"
	"github.com/jmylchreest/colorfinder/internal/security"
)

// Candidate is a quantized colour and the number of pixels it represents.
type Candidate struct {
	RGB        colour.RGB
	Population int
}

// Quantizer reduces an image to at most maxColours weighted colours.
type Quantizer interface {
	Quantize(ctx context.Context, img image.Image, maxColours int) ([]Candidate, error)
}

// Algorithm names a quantizer backend.
type Algorithm string

const (
	// AlgorithmVibrant selects the six swatches with generaltso/vibrant, a port
	// of Android's Palette. It is a Provider, not a Quantizer.
	AlgorithmVibrant Algorithm = "vibrant"

	// AlgorithmKMeans clusters sampled pixels with muesli/kmeans.
	AlgorithmKMeans Algorithm = "kmeans"

	// AlgorithmDominant uses cenkalti/dominantcolor.
	AlgorithmDominant Algorithm = "dominant"

	// AlgorithmProminent uses EdlinOrg/prominentcolor.
	AlgorithmProminent Algorithm = "prominent"
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{AlgorithmVibrant, AlgorithmKMeans, AlgorithmDominant, AlgorithmProminent}
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	return slices.Contains(ValidAlgorithms(), alg)
}

// String implements pflag.Value.
func (a *Algorithm) String() string {
	return string(*a)
}

// Set implements pflag.Value.
func (a *Algorithm) Set(s string) error {
	alg := Algorithm(s)
	if !IsValidAlgorithm(alg) {
		return fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", s, ValidAlgorithms())
	}
	*a = alg
	return nil
}

// Type implements pflag.Value.
func (a *Algorithm) Type() string {
	return "algorithm"
}

// NewQuantizer creates a Quantizer for the specified algorithm.
func NewQuantizer(alg Algorithm, logger hclog.Logger) (Quantizer, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	switch alg {
	case AlgorithmKMeans:
		return &KMeansQuantizer{fallback: DominantQuantizer{}, logger: logger}, nil
	case AlgorithmDominant:
		return DominantQuantizer{}, nil
	case AlgorithmProminent:
		return ProminentQuantizer{}, nil
	case AlgorithmVibrant:
		return nil, fmt.Errorf("%s selects swatches itself and has no quantizer", alg)
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", alg, ValidAlgorithms())
	}
}

// KMeansQuantizer clusters sampled pixels in RGB space. When clustering
// yields nothing it falls back to another quantizer.
type KMeansQuantizer struct {
	fallback Quantizer
	logger   hclog.Logger
}

const kmeansMaxSamples = 6000

// Quantize implements Quantizer.
func (q *KMeansQuantizer) Quantize(ctx context.Context, img image.Image, maxColours int) ([]Candidate, error) {
	dataset := sampleObservations(img, kmeansMaxSamples)
	if len(dataset) == 0 {
		return nil, ErrEmptyImage
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Extra centres on duplicate points never settle, so cap k by distinct colours.
	k := min(maxColours, distinctObservations(dataset))
	km := kmeans.New()
	cc, err := km.Partition(dataset, k)
	if err != nil || len(cc) == 0 {
		if q.fallback == nil {
			return nil, fmt.Errorf("failed to partition pixels: %w", err)
		}
		q.logger.Warn("kmeans returned empty palette, falling back", "error", err)
		return q.fallback.Quantize(ctx, img, maxColours)
	}

	candidates := make([]Candidate, 0, len(cc))
	for _, c := range cc {
		if len(c.Observations) == 0 || len(c.Center) < 3 {
			continue
		}
		candidates = append(candidates, Candidate{
			RGB:        unitToRGB(c.Center[0], c.Center[1], c.Center[2]),
			Population: len(c.Observations),
		})
	}
	return mergeCandidates(candidates), nil
}

// sampleObservations grid-samples opaque pixels as unit RGB coordinates.
func sampleObservations(img image.Image, maxSamples int) clusters.Observations {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return nil
	}

	step := 1
	if width*height > maxSamples {
		step = int(math.Sqrt(float64(width*height)/float64(maxSamples))) + 1
	}

	dataset := make(clusters.Observations, 0, min(width*height, maxSamples))
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r16, g16, b16, a16 := img.At(x, y).RGBA()
			if a16 == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(r16) / 65535.0,
				float64(g16) / 65535.0,
				float64(b16) / 65535.0,
			})
		}
	}
	return dataset
}

func distinctObservations(dataset clusters.Observations) int {
	seen := make(map[[3]float64]struct{})
	for _, o := range dataset {
		c := o.Coordinates()
		seen[[3]float64{c[0], c[1], c[2]}] = struct{}{}
	}
	return len(seen)
}

func unitToRGB(r, g, b float64) colour.RGB {
	conv := func(v float64) uint8 {
		return security.SafeUint8(int(math.Round(v * 255)))
	}
	return colour.RGB{R: conv(r), G: conv(g), B: conv(b)}
}

// DominantQuantizer finds weighted dominant colours with cenkalti/dominantcolor.
type DominantQuantizer struct{}

// dominantScale converts dominantcolor's fractional weights into populations.
const dominantScale = 10000

// Quantize implements Quantizer.
func (DominantQuantizer) Quantize(ctx context.Context, img image.Image, maxColours int) ([]Candidate, error) {
	if img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	found := dominantcolor.FindWeight(img, maxColours)
	candidates := make([]Candidate, 0, len(found))
	for _, c := range found {
		pop := int(math.Round(c.Weight * dominantScale))
		if pop <= 0 {
			pop = 1
		}
		candidates = append(candidates, Candidate{
			RGB:        colour.RGB{R: c.RGBA.R, G: c.RGBA.G, B: c.RGBA.B},
			Population: pop,
		})
	}
	return mergeCandidates(candidates), nil
}

// ProminentQuantizer uses EdlinOrg/prominentcolor's k-means without cropping
// or background masks.
type ProminentQuantizer struct{}

// Quantize implements Quantizer.
func (ProminentQuantizer) Quantize(ctx context.Context, img image.Image, maxColours int) ([]Candidate, error) {
	if img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items, err := prominentcolor.KmeansWithAll(
		maxColours,
		img,
		prominentcolor.ArgumentNoCropping,
		prominentcolor.DefaultSize,
		[]prominentcolor.ColorBackgroundMask{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find prominent colours: %w", err)
	}

	candidates := make([]Candidate, 0, len(items))
	for _, item := range items {
		if item.Cnt <= 0 {
			continue
		}
		candidates = append(candidates, Candidate{
			RGB: colour.RGB{
				R: uint8(min(item.Color.R, 255)),
				G: uint8(min(item.Color.G, 255)),
				B: uint8(min(item.Color.B, 255)),
			},
			Population: item.Cnt,
		})
	}
	return mergeCandidates(candidates), nil
}

// mergeCandidates folds identical colours together, keeping first-seen order.
func mergeCandidates(in []Candidate) []Candidate {
	index := make(map[colour.RGB]int, len(in))
	out := make([]Candidate, 0, len(in))
	for _, c := range in {
		if i, ok := index[c.RGB]; ok {
			out[i].Population += c.Population
			continue
		}
		index[c.RGB] = len(out)
		out = append(out, c)
	}
	return out
}
