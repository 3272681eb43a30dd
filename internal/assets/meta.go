package assets

import (
	"bytes"
	"encoding/hex"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/matgen/pkg/material"
)

const metaExt = ".meta"

type metaKind int

const (
	folderMeta metaKind = iota
	nativeMeta
)

// metaFile is the sidecar that gives every asset a stable GUID.
type metaFile struct {
	FileFormatVersion    int               `yaml:"fileFormatVersion"`
	GUID                 string            `yaml:"guid"`
	FolderAsset          bool              `yaml:"folderAsset,omitempty"`
	DefaultImporter      *importerSettings `yaml:"DefaultImporter,omitempty"`
	NativeFormatImporter *importerSettings `yaml:"NativeFormatImporter,omitempty"`
}

type importerSettings struct {
	ExternalObjects    map[string]string `yaml:"externalObjects,flow"`
	MainObjectFileID   int64             `yaml:"mainObjectFileID,omitempty"`
	UserData           string            `yaml:"userData"`
	AssetBundleName    string            `yaml:"assetBundleName"`
	AssetBundleVariant string            `yaml:"assetBundleVariant"`
}

// writeMeta writes the .meta sidecar for assetPath, keeping the GUID of an
// existing sidecar.
func (s *Store) writeMeta(assetPath string, kind metaKind) error {
	metaPath := s.fsPath(assetPath) + metaExt

	var guid string
	if prev, err := readMeta(metaPath); err == nil && validGUID(prev.GUID) {
		guid = prev.GUID
	} else {
		guid = newGUID()
	}

	meta := metaFile{FileFormatVersion: 2, GUID: guid}
	switch kind {
	case folderMeta:
		meta.FolderAsset = true
		meta.DefaultImporter = &importerSettings{}
	case nativeMeta:
		meta.NativeFormatImporter = &importerSettings{MainObjectFileID: material.MainObjectFileID}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(meta); err != nil {
		return errors.Wrapf(err, "encoding meta for %s", assetPath)
	}
	if err := enc.Close(); err != nil {
		return errors.Wrapf(err, "encoding meta for %s", assetPath)
	}

	if err := os.WriteFile(metaPath, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, "writing meta for %s", assetPath)
	}
	return nil
}

func readMeta(metaPath string) (*metaFile, error) {
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}
	var meta metaFile
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func newGUID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

func validGUID(guid string) bool {
	if len(guid) != 32 {
		return false
	}
	_, err := hex.DecodeString(guid)
	return err == nil
}
