package survey

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/RiseHunter/RiseHuntBot/internal"
)

// Registry holds the test definition for every dimension. Loaded once at
// startup, read-only afterwards.
type Registry struct {
	defs  map[internal.Direction]TestDefinition
	order []internal.Direction
}

func newRegistry(defs []TestDefinition) (*Registry, error) {
	r := &Registry{defs: make(map[internal.Direction]TestDefinition, len(defs))}
	for _, d := range defs {
		if err := d.validate(); err != nil {
			return nil, err
		}
		if _, dup := r.defs[d.Tag]; dup {
			return nil, fmt.Errorf("survey: duplicate definition for %s", d.Tag)
		}
		r.defs[d.Tag] = d
		r.order = append(r.order, d.Tag)
	}
	for _, tag := range internal.Directions {
		if _, ok := r.defs[tag]; !ok {
			return nil, fmt.Errorf("survey: missing definition for %s", tag)
		}
	}
	return r, nil
}

// DefaultRegistry returns the built-in test table.
func DefaultRegistry() *Registry {
	r, err := newRegistry(defaultDefinitions)
	if err != nil {
		// The built-in table is validated by tests; a failure here is a
		// programming error.
		panic(err)
	}
	return r
}

// LoadRegistry reads a full test table from a YAML file. The file must
// define all six dimensions.
func LoadRegistry(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("survey: read %s: %w", path, err)
	}
	var defs []TestDefinition
	if err := yaml.Unmarshal(raw, &defs); err != nil {
		return nil, fmt.Errorf("survey: parse %s: %w", path, err)
	}
	return newRegistry(defs)
}

func (r *Registry) Get(tag internal.Direction) (TestDefinition, bool) {
	d, ok := r.defs[tag]
	return d, ok
}

// All returns definitions in display order.
func (r *Registry) All() []TestDefinition {
	out := make([]TestDefinition, 0, len(r.order))
	for _, tag := range r.order {
		out = append(out, r.defs[tag])
	}
	return out
}

var defaultDefinitions = []TestDefinition{
	{
		Tag:         internal.DirectionPV,
		Name:        "Physical Vitality",
		Emoji:       "💪",
		BasicURL:    "https://wheeloflife.com",
		AdvancedURL: "https://www.topendsports.com/testing/tests.htm",
		RawMin:      0,
		RawMax:      100,
		Bands: []LabelBand{
			{Min: 0.1, Label: "depleted"},
			{Min: 3.0, Label: "low energy"},
			{Min: 5.0, Label: "steady"},
			{Min: 7.0, Label: "energetic"},
			{Min: 9.0, Label: "peak condition"},
		},
	},
	{
		Tag:         internal.DirectionCI,
		Name:        "Cognitive Intelligence",
		Emoji:       "🧠",
		BasicURL:    "https://www.mensa.org/public/mensa-iq-challenge",
		AdvancedURL: "https://www.cambridgebrainsciences.com",
		RawMin:      0,
		RawMax:      40,
		Bands: []LabelBand{
			{Min: 0.1, Label: "foggy"},
			{Min: 3.5, Label: "developing"},
			{Min: 6.0, Label: "sharp"},
			{Min: 8.5, Label: "brilliant"},
		},
	},
	{
		// Classic 33-question EQ inventory, 1..5 per question.
		Tag:         internal.DirectionEI,
		Name:        "Emotional Intelligence",
		Emoji:       "❤️",
		BasicURL:    "https://greatergood.berkeley.edu/quizzes/ei_quiz",
		AdvancedURL: "https://www.psychologytoday.com/tests/personality/emotional-intelligence-test",
		RawMin:      33,
		RawMax:      165,
		Bands: []LabelBand{
			{Min: 0.1, Label: "numb"},
			{Min: 2.0, Label: "guarded"},
			{Min: 3.5, Label: "aware"},
			{Min: 5.0, Label: "attuned"},
			{Min: 6.5, Label: "empathic"},
			{Min: 8.0, Label: "deeply empathic"},
			{Min: 9.5, Label: "radiant"},
		},
	},
	{
		Tag:         internal.DirectionSI,
		Name:        "Social Intelligence",
		Emoji:       "🤝",
		BasicURL:    "https://www.idrlabs.com/social-intelligence/test.php",
		AdvancedURL: "https://psychology-tools.com/test/tromso-social-intelligence-scale",
		RawMin:      0,
		RawMax:      120,
		Bands: []LabelBand{
			{Min: 0.1, Label: "withdrawn"},
			{Min: 2.5, Label: "reserved"},
			{Min: 4.5, Label: "comfortable"},
			{Min: 6.5, Label: "connected"},
			{Min: 8.0, Label: "magnetic"},
			{Min: 9.5, Label: "inspiring"},
		},
	},
	{
		Tag:         internal.DirectionAI,
		Name:        "Adaptive Intelligence",
		Emoji:       "🔄",
		BasicURL:    "https://www.idrlabs.com/resilience/test.php",
		AdvancedURL: "https://mindgardens.com/burnout-test",
		RawMin:      0,
		RawMax:      60,
		Bands: []LabelBand{
			{Min: 0.1, Label: "rigid"},
			{Min: 3.0, Label: "coping"},
			{Min: 5.5, Label: "flexible"},
			{Min: 8.0, Label: "antifragile"},
		},
	},
	{
		Tag:         internal.DirectionEX,
		Name:        "Existential Awareness",
		Emoji:       "🕯️",
		BasicURL:    "https://www.viacharacter.org/survey/account/register",
		AdvancedURL: "https://www.authentichappiness.sas.upenn.edu/testcenter",
		RawMin:      0,
		RawMax:      75,
		Bands: []LabelBand{
			{Min: 0.1, Label: "adrift"},
			{Min: 3.0, Label: "searching"},
			{Min: 5.5, Label: "grounded"},
			{Min: 8.0, Label: "purposeful"},
		},
	},
}
