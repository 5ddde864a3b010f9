package palette

import "math"

// Target describes the lightness and saturation a swatch kind looks for, and
// how much each property (plus population) counts when scoring candidates.
type Target struct {
	Kind Kind

	MinSaturation, TargetSaturation, MaxSaturation float64
	MinLightness, TargetLightness, MaxLightness    float64

	SaturationWeight, LightnessWeight, PopulationWeight float64

	// Exclusive targets claim their swatch so later targets cannot reuse it.
	Exclusive bool
}

const (
	weightSaturation = 0.24
	weightLightness  = 0.52
	weightPopulation = 0.24

	targetDarkLuma   = 0.26
	maxDarkLuma      = 0.45
	minLightLuma     = 0.55
	targetLightLuma  = 0.74
	minNormalLuma    = 0.3
	targetNormalLuma = 0.5
	maxNormalLuma    = 0.7
	targetMutedSat   = 0.3
	maxMutedSat      = 0.4
	targetVibrantSat = 1.0
	minVibrantSat    = 0.35
	defaultMinValue  = 0.0
	defaultMaxValue  = 1.0
)

// DefaultTargets returns the six targets in presentation order.
func DefaultTargets() []Target {
	light := func(t Target) Target {
		t.MinLightness, t.TargetLightness, t.MaxLightness = minLightLuma, targetLightLuma, defaultMaxValue
		return t
	}
	normal := func(t Target) Target {
		t.MinLightness, t.TargetLightness, t.MaxLightness = minNormalLuma, targetNormalLuma, maxNormalLuma
		return t
	}
	dark := func(t Target) Target {
		t.MinLightness, t.TargetLightness, t.MaxLightness = defaultMinValue, targetDarkLuma, maxDarkLuma
		return t
	}
	vibrant := func(k Kind) Target {
		return Target{
			Kind:             k,
			MinSaturation:    minVibrantSat,
			TargetSaturation: targetVibrantSat,
			MaxSaturation:    defaultMaxValue,
			SaturationWeight: weightSaturation,
			LightnessWeight:  weightLightness,
			PopulationWeight: weightPopulation,
			Exclusive:        true,
		}
	}
	muted := func(k Kind) Target {
		return Target{
			Kind:             k,
			MinSaturation:    defaultMinValue,
			TargetSaturation: targetMutedSat,
			MaxSaturation:    maxMutedSat,
			SaturationWeight: weightSaturation,
			LightnessWeight:  weightLightness,
			PopulationWeight: weightPopulation,
			Exclusive:        true,
		}
	}

	return []Target{
		light(vibrant(LightVibrant)),
		normal(vibrant(Vibrant)),
		dark(vibrant(DarkVibrant)),
		light(muted(LightMuted)),
		normal(muted(Muted)),
		dark(muted(DarkMuted)),
	}
}

// accepts reports whether the swatch lies inside the target's ranges.
func (t Target) accepts(s *Swatch) bool {
	_, sat, l := s.HSL()
	return sat >= t.MinSaturation && sat <= t.MaxSaturation &&
		l >= t.MinLightness && l <= t.MaxLightness
}

// score rates a swatch for this target; higher is better.
func (t Target) score(s *Swatch, maxPopulation int) float64 {
	_, sat, l := s.HSL()

	total := t.SaturationWeight + t.LightnessWeight + t.PopulationWeight
	if total <= 0 {
		return 0
	}

	satScore := t.SaturationWeight / total * (1 - math.Abs(sat-t.TargetSaturation))
	lumScore := t.LightnessWeight / total * (1 - math.Abs(l-t.TargetLightness))
	popScore := 0.0
	if maxPopulation > 0 {
		popScore = t.PopulationWeight / total * (float64(s.Population) / float64(maxPopulation))
	}

	return satScore + lumScore + popScore
}
