// Package store caches uploaded source files on disk, one file per role,
// with a YAML manifest describing what is cached. Saving a role replaces
// whatever was cached for it before.
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"

	"github.com/corporativo/sdu/pkg/errors"
	"github.com/corporativo/sdu/pkg/logging"
)

const manifestFile = "manifest.yaml"

// Entry describes one cached file in the manifest.
type Entry struct {
	Filename   string    `yaml:"filename"`
	Size       int64     `yaml:"size"`
	SHA256     string    `yaml:"sha256"`
	UploadedAt time.Time `yaml:"uploaded_at"`
}

// Manifest maps each role to its cached file metadata.
type Manifest map[Role]Entry

// Store is a disk-backed cache of source files keyed by role.
type Store struct {
	dir    string
	mu     sync.Mutex
	logger *zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// New creates a store rooted at dir, creating it if needed.
func New(dir string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.WrapIO("create cache dir", dir, err)
	}
	s := &Store{dir: dir, logger: logging.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Dir returns the cache directory.
func (s *Store) Dir() string { return s.dir }

// Save caches data for a role under its original filename, replacing any
// previously cached file for that role.
func (s *Store) Save(role Role, filename string, data []byte) error {
	if !role.Valid() {
		return errors.NewValidationError("role", "unknown role: "+string(role))
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.removeLocked(role); err != nil {
		return err
	}
	path := filepath.Join(s.dir, rolePrefix(role)+filepath.Base(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapIO("write cached file", path, err)
	}

	sum := sha256.Sum256(data)
	manifest, err := s.readManifestLocked()
	if err != nil {
		return err
	}
	manifest[role] = Entry{
		Filename:   filepath.Base(filename),
		Size:       int64(len(data)),
		SHA256:     hex.EncodeToString(sum[:]),
		UploadedAt: time.Now().UTC(),
	}
	if err := s.writeManifestLocked(manifest); err != nil {
		return err
	}
	s.logger.Info().
		Str("role", string(role)).
		Str("filename", filepath.Base(filename)).
		Int("bytes", len(data)).
		Msg("Source file cached")
	return nil
}

// Load returns the cached bytes and filename for a role. Returns
// ErrNotFound when nothing is cached.
func (s *Store) Load(role Role) ([]byte, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.findLocked(role)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", errors.WrapIO("read cached file", path, err)
	}
	return data, strings.TrimPrefix(filepath.Base(path), rolePrefix(role)), nil
}

// Has reports whether a role has a cached file.
func (s *Store) Has(role Role) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.findLocked(role)
	return err == nil
}

// List returns the manifest of cached files.
func (s *Store) List() (Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readManifestLocked()
}

// Clear removes the cached file for one role.
func (s *Store) Clear(role Role) error {
	if !role.Valid() {
		return errors.NewValidationError("role", "unknown role: "+string(role))
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.removeLocked(role); err != nil {
		return err
	}
	manifest, err := s.readManifestLocked()
	if err != nil {
		return err
	}
	delete(manifest, role)
	return s.writeManifestLocked(manifest)
}

// ClearAll removes every cached file and the manifest.
func (s *Store) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, role := range Roles() {
		if err := s.removeLocked(role); err != nil {
			return err
		}
	}
	path := filepath.Join(s.dir, manifestFile)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.WrapIO("remove manifest", path, err)
	}
	return nil
}

func rolePrefix(role Role) string {
	return string(role) + "__"
}

// findLocked locates the cached file for a role by its prefix.
func (s *Store) findLocked(role Role) (string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, rolePrefix(role)+"*"))
	if err != nil {
		return "", errors.WrapIO("scan cache dir", s.dir, err)
	}
	if len(matches) == 0 {
		return "", errors.ErrNotFound
	}
	return matches[0], nil
}

func (s *Store) removeLocked(role Role) error {
	matches, err := filepath.Glob(filepath.Join(s.dir, rolePrefix(role)+"*"))
	if err != nil {
		return errors.WrapIO("scan cache dir", s.dir, err)
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil {
			return errors.WrapIO("remove cached file", m, err)
		}
	}
	return nil
}

func (s *Store) readManifestLocked() (Manifest, error) {
	path := filepath.Join(s.dir, manifestFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Manifest{}, nil
	}
	if err != nil {
		return nil, errors.WrapIO("read manifest", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.NewParseError("yaml", path, "malformed manifest", err)
	}
	if m == nil {
		m = Manifest{}
	}
	return m, nil
}

func (s *Store) writeManifestLocked(m Manifest) error {
	path := filepath.Join(s.dir, manifestFile)
	data, err := yaml.Marshal(m)
	if err != nil {
		return errors.NewParseError("yaml", path, "encoding manifest failed", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapIO("write manifest", path, err)
	}
	return nil
}
