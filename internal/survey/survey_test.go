package survey

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RiseHunter/RiseHuntBot/internal"
)

func eqDef(t *testing.T) TestDefinition {
	t.Helper()
	def, ok := DefaultRegistry().Get(internal.DirectionEI)
	assert.True(t, ok)
	return def
}

func TestNormalizeLinear(t *testing.T) {
	def := eqDef(t)
	assert.Equal(t, 33.0, def.RawMin)
	assert.Equal(t, 165.0, def.RawMax)

	score, err := def.Normalize(100)
	assert.NoError(t, err)
	assert.Equal(t, 5.1, score)

	score, err = def.Normalize(33)
	assert.NoError(t, err)
	assert.Equal(t, 0.1, score)

	score, err = def.Normalize(165)
	assert.NoError(t, err)
	assert.Equal(t, 10.0, score)
}

func TestNormalizeRejectsOutOfRange(t *testing.T) {
	def := eqDef(t)

	_, err := def.Normalize(166)
	assert.True(t, errors.Is(err, internal.ErrOutOfRange))

	_, err = def.Normalize(32)
	assert.True(t, errors.Is(err, internal.ErrOutOfRange))
}

func TestClampBoundsAndRounding(t *testing.T) {
	assert.Equal(t, 0.1, Clamp(-3))
	assert.Equal(t, 0.1, Clamp(0))
	assert.Equal(t, 10.0, Clamp(12.5))
	assert.Equal(t, 5.3, Clamp(5.25001))
	assert.Equal(t, 5.0, Clamp(5.0))
	assert.Equal(t, 9.9, Clamp(9.94))
}

func TestLabelSteps(t *testing.T) {
	def := TestDefinition{
		Tag:    internal.DirectionPV,
		RawMin: 0,
		RawMax: 10,
		Bands: []LabelBand{
			{Min: 0.1, Label: "low"},
			{Min: 5.0, Label: "mid"},
			{Min: 8.0, Label: "high"},
		},
	}
	assert.Equal(t, "low", def.Label(0.1))
	assert.Equal(t, "low", def.Label(4.9))
	assert.Equal(t, "mid", def.Label(5.0))
	assert.Equal(t, "high", def.Label(10.0))
}

func TestDefaultRegistryCoversAllDimensions(t *testing.T) {
	reg := DefaultRegistry()
	for _, dir := range internal.Directions {
		def, ok := reg.Get(dir)
		assert.True(t, ok, "missing definition for %s", dir)
		assert.NotEmpty(t, def.Name)
		assert.NotEmpty(t, def.BasicURL)
		assert.NotEmpty(t, def.AdvancedURL)
	}
	assert.Len(t, reg.All(), len(internal.Directions))
}

func TestAdvancedURLSelection(t *testing.T) {
	def := eqDef(t)
	assert.Equal(t, def.BasicURL, def.URL(1))
	assert.Equal(t, def.AdvancedURL, def.URL(2))
	assert.Equal(t, def.AdvancedURL, def.URL(7))
}

func TestLoadRegistryFromYAML(t *testing.T) {
	yaml := `
- tag: pv
  name: Physical Vitality
  emoji: "💪"
  basic_url: https://example.com/pv
  advanced_url: https://example.com/pv-advanced
  raw_min: 0
  raw_max: 50
  bands:
    - {min: 0.1, label: low}
    - {min: 5.0, label: high}
- tag: ci
  name: Cognitive Intelligence
  basic_url: https://example.com/ci
  raw_min: 0
  raw_max: 40
  bands:
    - {min: 0.1, label: low}
- tag: ei
  name: Emotional Intelligence
  basic_url: https://example.com/ei
  raw_min: 33
  raw_max: 165
  bands:
    - {min: 0.1, label: low}
- tag: si
  name: Social Intelligence
  basic_url: https://example.com/si
  raw_min: 0
  raw_max: 120
  bands:
    - {min: 0.1, label: low}
- tag: ai
  name: Adaptive Intelligence
  basic_url: https://example.com/ai
  raw_min: 0
  raw_max: 60
  bands:
    - {min: 0.1, label: low}
- tag: ex
  name: Existential Awareness
  basic_url: https://example.com/ex
  raw_min: 0
  raw_max: 75
  bands:
    - {min: 0.1, label: low}
`
	path := filepath.Join(t.TempDir(), "surveys.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	reg, err := LoadRegistry(path)
	assert.NoError(t, err)
	def, ok := reg.Get(internal.DirectionPV)
	assert.True(t, ok)
	assert.Equal(t, 50.0, def.RawMax)

	score, err := def.Normalize(25)
	assert.NoError(t, err)
	assert.Equal(t, 5.1, score)
}

func TestLoadRegistryRejectsBadConfig(t *testing.T) {
	yaml := `
- tag: nope
  name: Unknown
  basic_url: https://example.com
  raw_min: 0
  raw_max: 10
  bands:
    - {min: 0.1, label: low}
`
	path := filepath.Join(t.TempDir(), "surveys.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	_, err := LoadRegistry(path)
	assert.Error(t, err)
}
