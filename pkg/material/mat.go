package material

import (
	"bytes"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrNotMaterial is returned when a document has no Material mapping.
var ErrNotMaterial = errors.New("not a material asset")

// MainObjectFileID is the local file ID of the material object inside a .mat.
const MainObjectFileID = 2100000

// Ext is the material asset file extension.
const Ext = ".mat"

const matHeader = "%YAML 1.1\n%TAG !u! tag:unity3d.com,2011:\n--- !u!21 &2100000\n"

type matDocument struct {
	Material *matBody `yaml:"Material"`
}

type matBody struct {
	SerializedVersion        int               `yaml:"serializedVersion"`
	ObjectHideFlags          int               `yaml:"m_ObjectHideFlags"`
	Name                     string            `yaml:"m_Name"`
	Shader                   ShaderRef         `yaml:"m_Shader,flow"`
	ShaderKeywords           string            `yaml:"m_ShaderKeywords"`
	LightmapFlags            int               `yaml:"m_LightmapFlags"`
	EnableInstancingVariants int               `yaml:"m_EnableInstancingVariants"`
	DoubleSidedGI            int               `yaml:"m_DoubleSidedGI"`
	CustomRenderQueue        int               `yaml:"m_CustomRenderQueue"`
	StringTagMap             map[string]string `yaml:"stringTagMap,flow"`
	DisabledShaderPasses     []string          `yaml:"disabledShaderPasses,flow"`
	SavedProperties          savedProperties   `yaml:"m_SavedProperties"`
}

type savedProperties struct {
	SerializedVersion int                     `yaml:"serializedVersion"`
	TexEnvs           []map[string]any        `yaml:"m_TexEnvs,flow"`
	Floats            []map[string]float32    `yaml:"m_Floats"`
	Colors            []map[string]colorValue `yaml:"m_Colors"`
}

type rgba struct {
	R float32 `yaml:"r"`
	G float32 `yaml:"g"`
	B float32 `yaml:"b"`
	A float32 `yaml:"a"`
}

// colorValue is written inline as {r: .., g: .., b: .., a: ..}.
type colorValue rgba

func (c colorValue) MarshalYAML() (interface{}, error) {
	var n yaml.Node
	if err := n.Encode(rgba(c)); err != nil {
		return nil, err
	}
	n.Style = yaml.FlowStyle
	return &n, nil
}

// Encode serializes m to .mat text. Output is deterministic.
func Encode(m *Material) ([]byte, error) {
	body := &matBody{
		SerializedVersion: 6,
		Name:              m.Name,
		Shader:            m.Shader,
		ShaderKeywords:    strings.Join(m.Keywords(), " "),
		LightmapFlags:     4,
		CustomRenderQueue: m.RenderQueue,
		SavedProperties: savedProperties{
			SerializedVersion: 3,
		},
	}
	for _, name := range m.FloatNames() {
		body.SavedProperties.Floats = append(body.SavedProperties.Floats,
			map[string]float32{name: m.floats[name]})
	}
	for _, name := range m.ColorNames() {
		c := m.colors[name]
		body.SavedProperties.Colors = append(body.SavedProperties.Colors,
			map[string]colorValue{name: {R: c[0], G: c[1], B: c[2], A: c[3]}})
	}

	var buf bytes.Buffer
	buf.WriteString(matHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(matDocument{Material: body}); err != nil {
		return nil, errors.Wrapf(err, "encoding material %q", m.Name)
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrapf(err, "encoding material %q", m.Name)
	}
	return buf.Bytes(), nil
}

// Decode parses .mat text.
func Decode(data []byte) (*Material, error) {
	// The %TAG directives and the !u! document tag are skipped; only the
	// Material mapping carries data.
	if bytes.HasPrefix(data, []byte("%YAML")) {
		idx := bytes.Index(data, []byte("\nMaterial:"))
		if idx < 0 {
			return nil, ErrNotMaterial
		}
		data = data[idx+1:]
	}

	var doc matDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "decoding material")
	}
	if doc.Material == nil {
		return nil, ErrNotMaterial
	}
	body := doc.Material

	m := New(body.Shader)
	m.Name = body.Name
	m.Shader.Name = shaderName(body.Shader)
	m.RenderQueue = body.CustomRenderQueue
	for _, kw := range strings.Fields(body.ShaderKeywords) {
		m.EnableKeyword(kw)
	}
	for _, entry := range body.SavedProperties.Floats {
		for name, v := range entry {
			m.SetFloat(name, v)
		}
	}
	for _, entry := range body.SavedProperties.Colors {
		for name, c := range entry {
			m.SetColor(name, mgl32.Vec4{c.R, c.G, c.B, c.A})
		}
	}
	return m, nil
}
