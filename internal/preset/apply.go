package preset

import (
	"path"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/matgen/internal/logger"
	"github.com/Faultbox/matgen/pkg/material"
)

// Blend factors, as numbered by the engine.
const (
	BlendZero             = 0
	BlendOne              = 1
	BlendOneMinusSrcAlpha = 10
)

// Shader mode values of the Standard shader.
const (
	ModeOpaque      = 0
	ModeTransparent = 3
)

// Standard shader keywords.
const (
	KeywordAlphaTest        = "_ALPHATEST_ON"
	KeywordAlphaBlend       = "_ALPHABLEND_ON"
	KeywordAlphaPremultiply = "_ALPHAPREMULTIPLY_ON"
)

// Store is the asset store presets are written into.
type Store interface {
	IsValidFolder(assetPath string) bool
	CreateFolder(parent, name string) (string, error)
	CreateAsset(m *material.Material, assetPath string) error
	SaveAssets() error
	SetSelection(paths ...string)
}

// ShaderLibrary resolves shader names.
type ShaderLibrary interface {
	Find(name string) (material.ShaderRef, error)
}

// Applicator writes presets into a store as material assets.
type Applicator struct {
	store      Store
	shaders    ShaderLibrary
	shaderName string
}

// NewApplicator creates an applicator that binds every preset to shaderName.
func NewApplicator(store Store, shaders ShaderLibrary, shaderName string) *Applicator {
	return &Applicator{
		store:      store,
		shaders:    shaders,
		shaderName: shaderName,
	}
}

// Apply creates one material per preset at <folder>/<name>.mat, commits the
// store and selects the new assets. The first failure aborts the run.
func (a *Applicator) Apply(folder string, presets []Preset) ([]string, error) {
	if err := ValidateAll(presets); err != nil {
		return nil, err
	}
	if err := a.ensureFolder(folder); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(presets))
	for _, p := range presets {
		shader, err := a.shaders.Find(a.shaderName)
		if err != nil {
			return nil, errors.Wrapf(err, "preset %s", p.Name)
		}

		assetPath := path.Join(folder, p.Name+material.Ext)
		if err := a.store.CreateAsset(Build(shader, p), assetPath); err != nil {
			return nil, errors.Wrapf(err, "preset %s", p.Name)
		}
		logger.Debug("created material",
			zap.String("path", assetPath),
			zap.Stringer("blend", p.BlendMode),
			zap.Int("queue", p.RenderQueue))
		paths = append(paths, assetPath)
	}

	if err := a.store.SaveAssets(); err != nil {
		return nil, errors.Wrap(err, "saving assets")
	}
	a.store.SetSelection(paths...)

	logger.Info("materials created", zap.String("folder", folder), zap.Int("count", len(paths)))
	return paths, nil
}

// ensureFolder creates every missing segment of folder, parent first.
func (a *Applicator) ensureFolder(folder string) error {
	if a.store.IsValidFolder(folder) {
		return nil
	}

	segs := strings.Split(folder, "/")
	current := segs[0]
	if !a.store.IsValidFolder(current) {
		return errors.Errorf("root folder %s does not exist", current)
	}
	for _, seg := range segs[1:] {
		next := path.Join(current, seg)
		if !a.store.IsValidFolder(next) {
			created, err := a.store.CreateFolder(current, seg)
			if err != nil {
				return errors.Wrapf(err, "creating %s", next)
			}
			next = created
		}
		current = next
	}
	return nil
}

// Build makes the material for p bound to shader.
func Build(shader material.ShaderRef, p Preset) *material.Material {
	m := material.New(shader)
	m.Name = p.Name
	ApplyBlendMode(m, p.BlendMode)
	if p.RenderQueue != 0 {
		m.RenderQueue = p.RenderQueue
	}
	m.SetColor("_Color", p.Color)
	m.SetFloat("_Metallic", p.Metallic)
	m.SetFloat("_Glossiness", p.Glossiness)
	m.SetFloat("_GlossyReflections", 1)
	return m
}

// ApplyBlendMode sets the shader mode, blend factors, depth write and alpha
// keywords for mode.
func ApplyBlendMode(m *material.Material, mode BlendMode) {
	m.DisableKeyword(KeywordAlphaTest)
	m.DisableKeyword(KeywordAlphaPremultiply)

	switch mode {
	case Transparent:
		m.SetFloat("_Mode", ModeTransparent)
		m.SetInt("_SrcBlend", BlendOne)
		m.SetInt("_DstBlend", BlendOneMinusSrcAlpha)
		m.SetInt("_ZWrite", 0)
		m.EnableKeyword(KeywordAlphaBlend)
		m.RenderQueue = material.RenderQueueTransparent
	default:
		m.SetFloat("_Mode", ModeOpaque)
		m.SetInt("_SrcBlend", BlendOne)
		m.SetInt("_DstBlend", BlendZero)
		m.SetInt("_ZWrite", 1)
		m.DisableKeyword(KeywordAlphaBlend)
		m.RenderQueue = material.RenderQueueFromShader
	}
}

// BlendModeOf reports the blend mode a material was configured with.
func BlendModeOf(m *material.Material) BlendMode {
	mode, _ := m.Float("_Mode")
	if mode == ModeTransparent && m.IsKeywordEnabled(KeywordAlphaBlend) {
		return Transparent
	}
	return Opaque
}
