package material

import "github.com/pkg/errors"

// ErrUnknownShader is returned when a shader name cannot be resolved.
var ErrUnknownShader = errors.New("unknown shader")

// BuiltinGUID is the GUID of the engine's builtin extra resources.
const BuiltinGUID = "0000000000000000f000000000000000"

// Builtin shader names.
const (
	ShaderStandard         = "Standard"
	ShaderStandardSpecular = "Standard (Specular setup)"
)

// ShaderRef points at a shader object inside an asset.
type ShaderRef struct {
	Name   string `yaml:"-"`
	FileID int64  `yaml:"fileID"`
	GUID   string `yaml:"guid"`
	Type   int    `yaml:"type"`
}

// Builtins resolves the shaders shipped with the engine.
type Builtins struct{}

var builtinShaders = map[string]ShaderRef{
	ShaderStandard:         {Name: ShaderStandard, FileID: 46, GUID: BuiltinGUID},
	ShaderStandardSpecular: {Name: ShaderStandardSpecular, FileID: 45, GUID: BuiltinGUID},
}

// Find looks up a builtin shader by name.
func (Builtins) Find(name string) (ShaderRef, error) {
	ref, ok := builtinShaders[name]
	if !ok {
		return ShaderRef{}, errors.Wrapf(ErrUnknownShader, "%q", name)
	}
	return ref, nil
}

// Names returns the builtin shader names, sorted.
func (Builtins) Names() []string {
	return sortedKeys(builtinShaders)
}

// shaderName maps a decoded reference back to its builtin name, if any.
func shaderName(ref ShaderRef) string {
	for _, name := range sortedKeys(builtinShaders) {
		b := builtinShaders[name]
		if b.FileID == ref.FileID && b.GUID == ref.GUID && b.Type == ref.Type {
			return name
		}
	}
	return ""
}
