// Package assets handles the project's on-disk asset store.
package assets

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/matgen/internal/logger"
	"github.com/Faultbox/matgen/pkg/material"
)

// RootFolder is the top-level folder every asset path lives under.
const RootFolder = "Assets"

// Store errors.
var (
	ErrInvalidPath   = errors.New("invalid asset path")
	ErrFolderMissing = errors.New("folder does not exist")
)

// Store is an asset store rooted at a project directory.
// Assets are staged by CreateAsset and written by SaveAssets.
type Store struct {
	root      string
	pending   *Cache
	selection []string
	mu        sync.RWMutex
}

// Open opens the project at root, creating its Assets folder if needed.
func Open(root string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(root, RootFolder), 0755); err != nil {
		return nil, errors.Wrapf(err, "opening project %s", root)
	}
	return &Store{
		root:    root,
		pending: NewCache(),
	}, nil
}

// Root returns the project directory.
func (s *Store) Root() string {
	return s.root
}

// IsValidFolder reports whether assetPath names an existing folder.
func (s *Store) IsValidFolder(assetPath string) bool {
	if err := checkPath(assetPath); err != nil {
		return false
	}
	info, err := os.Stat(s.fsPath(assetPath))
	return err == nil && info.IsDir()
}

// CreateFolder creates name under parent and returns the new folder's path.
// The parent must already exist.
func (s *Store) CreateFolder(parent, name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", errors.Wrapf(ErrInvalidPath, "folder name %q", name)
	}
	if !s.IsValidFolder(parent) {
		return "", errors.Wrapf(ErrFolderMissing, "%s", parent)
	}

	folder := path.Join(parent, name)
	if err := os.MkdirAll(s.fsPath(folder), 0755); err != nil {
		return "", errors.Wrapf(err, "creating folder %s", folder)
	}
	if err := s.writeMeta(folder, folderMeta); err != nil {
		return "", err
	}

	logger.Debug("created folder", zap.String("path", folder))
	return folder, nil
}

// CreateAsset encodes m and stages it at assetPath, replacing any asset there.
func (s *Store) CreateAsset(m *material.Material, assetPath string) error {
	if err := checkPath(assetPath); err != nil {
		return err
	}
	if path.Ext(assetPath) != material.Ext {
		return errors.Wrapf(ErrInvalidPath, "%s: expected %s extension", assetPath, material.Ext)
	}
	if dir := path.Dir(assetPath); !s.IsValidFolder(dir) {
		return errors.Wrapf(ErrFolderMissing, "%s", dir)
	}

	data, err := material.Encode(m)
	if err != nil {
		return err
	}
	s.pending.Set(assetPath, data)

	logger.Debug("staged asset", zap.String("path", assetPath), zap.Int("bytes", len(data)))
	return nil
}

// SaveAssets writes every staged asset and its .meta file, in path order.
func (s *Store) SaveAssets() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.pending.Keys()
	sort.Strings(staged)

	for _, assetPath := range staged {
		data, _ := s.pending.Get(assetPath)
		if err := os.WriteFile(s.fsPath(assetPath), data, 0644); err != nil {
			return errors.Wrapf(err, "writing %s", assetPath)
		}
		if err := s.writeMeta(assetPath, nativeMeta); err != nil {
			return err
		}
		s.pending.Delete(assetPath)
	}

	if len(staged) > 0 {
		writes, overwrites := s.pending.Stats()
		logger.Debug("saved assets",
			zap.Int("count", len(staged)),
			zap.Int("staged", writes),
			zap.Int("restaged", overwrites))
	}
	return nil
}

// Pending returns the staged asset paths, sorted.
func (s *Store) Pending() []string {
	keys := s.pending.Keys()
	sort.Strings(keys)
	return keys
}

// SetSelection replaces the active selection.
func (s *Store) SetSelection(paths ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = append([]string(nil), paths...)
}

// Selection returns the active selection.
func (s *Store) Selection() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.selection...)
}

// LoadMaterial reads a saved material asset.
func (s *Store) LoadMaterial(assetPath string) (*material.Material, error) {
	if err := checkPath(assetPath); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.fsPath(assetPath))
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", assetPath)
	}
	m, err := material.Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", assetPath)
	}
	return m, nil
}

// GUID returns the GUID recorded in an asset's .meta file.
func (s *Store) GUID(assetPath string) (string, error) {
	if err := checkPath(assetPath); err != nil {
		return "", err
	}
	meta, err := readMeta(s.fsPath(assetPath) + metaExt)
	if err != nil {
		return "", errors.Wrapf(err, "reading meta for %s", assetPath)
	}
	return meta.GUID, nil
}

func (s *Store) fsPath(assetPath string) string {
	return filepath.Join(s.root, filepath.FromSlash(assetPath))
}

// checkPath validates a slash-separated project-relative asset path.
func checkPath(assetPath string) error {
	if assetPath == "" || strings.Contains(assetPath, `\`) || path.IsAbs(assetPath) {
		return errors.Wrapf(ErrInvalidPath, "%q", assetPath)
	}
	if path.Clean(assetPath) != assetPath {
		return errors.Wrapf(ErrInvalidPath, "%q is not clean", assetPath)
	}
	if assetPath != RootFolder && !strings.HasPrefix(assetPath, RootFolder+"/") {
		return errors.Wrapf(ErrInvalidPath, "%q is outside %s", assetPath, RootFolder)
	}
	for _, seg := range strings.Split(assetPath, "/") {
		if seg == ".." {
			return errors.Wrapf(ErrInvalidPath, "%q", assetPath)
		}
	}
	return nil
}

// Cache holds asset bytes staged for the next save.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	// Stats
	writes     int
	overwrites int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	data, ok := c.data[key]
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.data[key]; ok {
		c.overwrites++
	}
	c.writes++
	c.data[key] = data
}

// Delete removes an item from cache.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
}

// Keys returns the cached keys in no particular order.
func (c *Cache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}
	return keys
}

// Stats returns cache statistics.
func (c *Cache) Stats() (writes, overwrites int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.writes, c.overwrites
}
