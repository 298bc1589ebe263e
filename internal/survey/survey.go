// Package survey holds the test definitions for the six dimensions and the
// scoring engine that converts raw external-test results into normalized
// dimension values. Definitions are pure data interpreted by one evaluator;
// adding a dimension or swapping a test never touches the state machine.
package survey

import (
	"fmt"
	"math"

	"github.com/RiseHunter/RiseHuntBot/internal"
)

// LabelBand maps the normalized score range starting at Min (inclusive) to a
// qualitative label. Bands must be sorted ascending by Min.
type LabelBand struct {
	Min   float64 `yaml:"min"`
	Label string  `yaml:"label"`
}

// TestDefinition describes one dimension's external test: where to take it,
// which raw scores are valid, and how the raw result maps onto [0.1, 10.0].
type TestDefinition struct {
	Tag         internal.Direction `yaml:"tag"`
	Name        string             `yaml:"name"`
	Emoji       string             `yaml:"emoji"`
	BasicURL    string             `yaml:"basic_url"`
	AdvancedURL string             `yaml:"advanced_url"`
	RawMin      float64            `yaml:"raw_min"`
	RawMax      float64            `yaml:"raw_max"`
	Bands       []LabelBand        `yaml:"bands"`
}

// URL picks the advanced test variant once the user has leveled past 1.
func (d TestDefinition) URL(level int) string {
	if level > 1 && d.AdvancedURL != "" {
		return d.AdvancedURL
	}
	return d.BasicURL
}

// Normalize maps a raw test result linearly onto [0.1, 10.0], rounded to one
// decimal. Raw values outside [RawMin, RawMax] are rejected.
func (d TestDefinition) Normalize(raw float64) (float64, error) {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, internal.ErrInvalidFormat
	}
	if raw < d.RawMin || raw > d.RawMax {
		return 0, fmt.Errorf("%w: %s accepts %.0f..%.0f", internal.ErrOutOfRange, d.Tag, d.RawMin, d.RawMax)
	}
	return Clamp((raw-d.RawMin)/(d.RawMax-d.RawMin)*9.9 + 0.1), nil
}

// Label returns the qualitative label for a normalized score.
func (d TestDefinition) Label(score float64) string {
	label := ""
	for _, b := range d.Bands {
		if score >= b.Min {
			label = b.Label
		}
	}
	return label
}

func (d TestDefinition) validate() error {
	if !internal.ValidDirection(d.Tag) {
		return fmt.Errorf("survey: unknown dimension tag %q", d.Tag)
	}
	if d.RawMax <= d.RawMin {
		return fmt.Errorf("survey: %s has empty raw range %.1f..%.1f", d.Tag, d.RawMin, d.RawMax)
	}
	if len(d.Bands) == 0 {
		return fmt.Errorf("survey: %s has no label bands", d.Tag)
	}
	for i := 1; i < len(d.Bands); i++ {
		if d.Bands[i].Min <= d.Bands[i-1].Min {
			return fmt.Errorf("survey: %s label bands not ascending", d.Tag)
		}
	}
	return nil
}

// Clamp is the single bounding+rounding function applied to every dimension
// write: round(max(0.1, min(10.0, x)), 1).
func Clamp(x float64) float64 {
	if x < internal.DimensionMin {
		x = internal.DimensionMin
	}
	if x > internal.DimensionMax {
		x = internal.DimensionMax
	}
	return math.Round(x*10) / 10
}
