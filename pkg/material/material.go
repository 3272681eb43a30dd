// Package material provides the engine material object and its .mat asset format.
package material

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// RenderQueueFromShader means the material uses the shader's own queue.
const RenderQueueFromShader = -1

// Render queue ranges.
const (
	RenderQueueBackground  = 1000
	RenderQueueGeometry    = 2000
	RenderQueueAlphaTest   = 2450
	RenderQueueOpaqueLast  = 2500
	RenderQueueTransparent = 3000
	RenderQueueOverlay     = 4000
)

// Material binds a shader to named parameter values.
type Material struct {
	Name        string
	Shader      ShaderRef
	RenderQueue int

	keywords map[string]struct{}
	floats   map[string]float32
	colors   map[string]mgl32.Vec4
}

// New creates an empty material bound to shader.
func New(shader ShaderRef) *Material {
	return &Material{
		Shader:      shader,
		RenderQueue: RenderQueueFromShader,
		keywords:    make(map[string]struct{}),
		floats:      make(map[string]float32),
		colors:      make(map[string]mgl32.Vec4),
	}
}

// SetFloat sets a float property.
func (m *Material) SetFloat(name string, v float32) {
	m.floats[name] = v
}

// SetInt sets an integer property. Ints are stored as floats.
func (m *Material) SetInt(name string, v int) {
	m.floats[name] = float32(v)
}

// Float returns a float property.
func (m *Material) Float(name string) (float32, bool) {
	v, ok := m.floats[name]
	return v, ok
}

// Int returns an integer property.
func (m *Material) Int(name string) (int, bool) {
	v, ok := m.floats[name]
	return int(v), ok
}

// SetColor sets an RGBA color property.
func (m *Material) SetColor(name string, c mgl32.Vec4) {
	m.colors[name] = c
}

// Color returns a color property.
func (m *Material) Color(name string) (mgl32.Vec4, bool) {
	c, ok := m.colors[name]
	return c, ok
}

// EnableKeyword turns a shader keyword on.
func (m *Material) EnableKeyword(kw string) {
	m.keywords[kw] = struct{}{}
}

// DisableKeyword turns a shader keyword off.
func (m *Material) DisableKeyword(kw string) {
	delete(m.keywords, kw)
}

// IsKeywordEnabled reports whether kw is on.
func (m *Material) IsKeywordEnabled(kw string) bool {
	_, ok := m.keywords[kw]
	return ok
}

// Keywords returns the enabled keywords, sorted.
func (m *Material) Keywords() []string {
	return sortedKeys(m.keywords)
}

// FloatNames returns the names of all float properties, sorted.
func (m *Material) FloatNames() []string {
	return sortedKeys(m.floats)
}

// ColorNames returns the names of all color properties, sorted.
func (m *Material) ColorNames() []string {
	return sortedKeys(m.colors)
}

func sortedKeys[V any](in map[string]V) []string {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
