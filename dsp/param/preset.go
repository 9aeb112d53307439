package param

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/cwbudde/algo-chaosfx/dsp/core"
)

// ErrUnknownParam is returned when a parameter ID does not exist.
var ErrUnknownParam = errors.New("unknown parameter")

// Preset is the serializable form of a parameter set. Gain is stored in dB.
type Preset struct {
	Name    string  `json:"name,omitempty"`
	GainDB  float64 `json:"gainDb"` //nolint:tagliatelle
	Drive   float32 `json:"drive"`
	Fractal float32 `json:"fractal"`
	Chaos   float32 `json:"chaos"`
}

// DefaultPreset returns the preset matching DefaultValues.
func DefaultPreset() Preset {
	return PresetFromValues("default", DefaultValues())
}

// PresetFromValues converts plain values into a preset.
func PresetFromValues(name string, v Values) Preset {
	return Preset{
		Name:    name,
		GainDB:  core.LinearToDB(float64(v.Gain)),
		Drive:   v.Drive,
		Fractal: v.Fractal,
		Chaos:   v.Chaos,
	}
}

// Values converts the preset back to plain values.
func (p Preset) Values() Values {
	return Values{
		Gain:    float32(core.DBToLinear(p.GainDB)),
		Drive:   p.Drive,
		Fractal: p.Fractal,
		Chaos:   p.Chaos,
	}
}

// Preset captures the current targets.
func (s *Set) Preset(name string) Preset {
	return PresetFromValues(name, s.Targets())
}

// LoadPreset decodes a JSON preset. Missing fields keep their defaults.
func LoadPreset(r io.Reader) (Preset, error) {
	p := DefaultPreset()
	p.Name = ""

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	err := dec.Decode(&p)
	if err != nil {
		return Preset{}, fmt.Errorf("invalid preset json: %w", err)
	}

	if !core.IsFinite(p.GainDB) || !core.IsFinite(p.Drive) || !core.IsFinite(p.Fractal) || !core.IsFinite(p.Chaos) {
		return Preset{}, errors.New("invalid preset: non-finite value")
	}

	return p, nil
}

// Save writes the preset as indented JSON.
func (p Preset) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	err := enc.Encode(p)
	if err != nil {
		return fmt.Errorf("write preset: %w", err)
	}

	return nil
}
