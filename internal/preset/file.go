package preset

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Table is the on-disk layout of a preset file.
type Table struct {
	Presets []Preset `yaml:"presets"`
}

// LoadFile reads and validates a preset table.
func LoadFile(path string) ([]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading preset file")
	}

	var table Table
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&table); err != nil {
		return nil, errors.Wrapf(err, "parsing preset file %s", path)
	}
	if len(table.Presets) == 0 {
		return nil, errors.Wrapf(ErrInvalidPreset, "%s: no presets", path)
	}
	if err := ValidateAll(table.Presets); err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return table.Presets, nil
}

// Marshal renders presets in the preset file layout.
func Marshal(presets []Preset) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(Table{Presets: presets}); err != nil {
		return nil, errors.Wrap(err, "encoding presets")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "encoding presets")
	}
	return buf.Bytes(), nil
}
