// Package preset turns declarative material presets into material assets.
package preset

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/matgen/pkg/material"
)

// ErrInvalidPreset is returned when a preset fails validation.
var ErrInvalidPreset = errors.New("invalid preset")

// BlendMode selects how a surface combines with what is already drawn.
type BlendMode int

// Blend modes.
const (
	Opaque BlendMode = iota
	Transparent
)

// String returns the blend mode name.
func (b BlendMode) String() string {
	switch b {
	case Opaque:
		return "Opaque"
	case Transparent:
		return "Transparent"
	default:
		return fmt.Sprintf("Unknown(%d)", int(b))
	}
}

// ParseBlendMode parses a blend mode name, case-insensitively.
func ParseBlendMode(s string) (BlendMode, error) {
	switch strings.ToLower(s) {
	case "opaque":
		return Opaque, nil
	case "transparent":
		return Transparent, nil
	default:
		return 0, errors.Errorf("unknown blend mode %q", s)
	}
}

// MarshalYAML writes the blend mode by name.
func (b BlendMode) MarshalYAML() (interface{}, error) {
	return b.String(), nil
}

// UnmarshalYAML reads the blend mode by name.
func (b *BlendMode) UnmarshalYAML(value *yaml.Node) error {
	mode, err := ParseBlendMode(value.Value)
	if err != nil {
		return err
	}
	*b = mode
	return nil
}

// Preset is one named material configuration.
type Preset struct {
	Name        string     `yaml:"name"`
	Color       mgl32.Vec4 `yaml:"color,flow"`
	Metallic    float32    `yaml:"metallic"`
	Glossiness  float32    `yaml:"glossiness"`
	RenderQueue int        `yaml:"render_queue"`
	BlendMode   BlendMode  `yaml:"blend_mode"`
}

// Glass returns the clear, tinted and frosted glass presets.
func Glass() []Preset {
	return []Preset{
		{
			Name:        "Glass_Clear",
			Color:       mgl32.Vec4{0.9, 0.95, 1, 0.3},
			Metallic:    0,
			Glossiness:  0.95,
			RenderQueue: material.RenderQueueTransparent,
			BlendMode:   Transparent,
		},
		{
			Name:        "Glass_Tinted",
			Color:       mgl32.Vec4{0.7, 0.85, 0.9, 0.5},
			Metallic:    0,
			Glossiness:  0.9,
			RenderQueue: material.RenderQueueTransparent,
			BlendMode:   Transparent,
		},
		{
			Name:        "Glass_Frosted",
			Color:       mgl32.Vec4{1, 1, 1, 0.7},
			Metallic:    0,
			Glossiness:  0.6,
			RenderQueue: material.RenderQueueTransparent,
			BlendMode:   Transparent,
		},
	}
}

// Validate checks the preset's ranges.
func (p Preset) Validate() error {
	if p.Name == "" {
		return errors.Wrap(ErrInvalidPreset, "empty name")
	}
	if strings.ContainsAny(p.Name, `/\`) || p.Name == "." || p.Name == ".." {
		return errors.Wrapf(ErrInvalidPreset, "%s: name is not a valid file name", p.Name)
	}
	if !unit(p.Metallic) {
		return errors.Wrapf(ErrInvalidPreset, "%s: metallic %v outside [0,1]", p.Name, p.Metallic)
	}
	if !unit(p.Glossiness) {
		return errors.Wrapf(ErrInvalidPreset, "%s: glossiness %v outside [0,1]", p.Name, p.Glossiness)
	}
	for i, c := range p.Color {
		if !unit(c) {
			return errors.Wrapf(ErrInvalidPreset, "%s: color channel %d is %v, outside [0,1]", p.Name, i, c)
		}
	}

	switch p.BlendMode {
	case Transparent:
		if a := p.Color[3]; a <= 0 || a >= 1 {
			return errors.Wrapf(ErrInvalidPreset, "%s: transparent alpha %v must be inside (0,1)", p.Name, a)
		}
		if p.RenderQueue <= material.RenderQueueOpaqueLast {
			return errors.Wrapf(ErrInvalidPreset, "%s: transparent render queue %d is in the opaque range", p.Name, p.RenderQueue)
		}
	case Opaque:
		if p.RenderQueue > material.RenderQueueOpaqueLast {
			return errors.Wrapf(ErrInvalidPreset, "%s: opaque render queue %d is in the transparent range", p.Name, p.RenderQueue)
		}
	default:
		return errors.Wrapf(ErrInvalidPreset, "%s: %s", p.Name, p.BlendMode)
	}
	return nil
}

// ValidateAll validates every preset and rejects duplicate names.
func ValidateAll(presets []Preset) error {
	seen := make(map[string]bool, len(presets))
	for _, p := range presets {
		if err := p.Validate(); err != nil {
			return err
		}
		if seen[p.Name] {
			return errors.Wrapf(ErrInvalidPreset, "duplicate name %s", p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

func unit(v float32) bool {
	return v >= 0 && v <= 1
}
