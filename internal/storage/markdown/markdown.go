package markdown

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/chris-regnier/famcal/internal/storage"
)

// Store implements storage.Storage with one Markdown file per record. The
// record key and write time live in YAML front-matter and the value is the
// document body. Surrounding whitespace of values is not preserved.
type Store struct {
	recordsDir string // e.g. ~/.famcal/records/
}

// New creates a new Markdown file storage backend.
func New(dataDir string) (*Store, error) {
	recordsDir := filepath.Join(dataDir, "records")
	if err := os.MkdirAll(recordsDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating records directory: %v", storage.ErrStorage, err)
	}
	return &Store{recordsDir: recordsDir}, nil
}

// Close is a no-op for the Markdown backend.
func (s *Store) Close() error {
	return nil
}

type frontMatter struct {
	Key       string `yaml:"key"`
	UpdatedAt string `yaml:"updated_at"`
}

func (s *Store) recordPath(key string) string {
	return filepath.Join(s.recordsDir, key+".md")
}

func (s *Store) marshal(key, value string) ([]byte, error) {
	fm, err := yaml.Marshal(frontMatter{
		Key:       key,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encoding front-matter: %v", storage.ErrStorage, err)
	}
	var b strings.Builder
	b.WriteString("---\n")
	b.Write(fm)
	b.WriteString("---\n\n")
	b.WriteString(value)
	b.WriteString("\n")
	return []byte(b.String()), nil
}

func (s *Store) unmarshal(key string, data []byte) (string, error) {
	var fm frontMatter
	body, err := frontmatter.Parse(strings.NewReader(string(data)), &fm)
	if err != nil {
		return "", fmt.Errorf("%w: parsing front-matter of %s: %v", storage.ErrStorage, key, err)
	}
	if fm.Key != key {
		return "", fmt.Errorf("%w: record file %s holds key %q", storage.ErrStorage, key, fm.Key)
	}
	return strings.TrimSpace(string(body)), nil
}

// atomicWrite writes data to a temp file then renames it to the target path.
func (s *Store) atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: creating directory: %v", storage.ErrStorage, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", storage.ErrStorage, err)
	}
	tmpName := tmp.Name()

	// Lock the temp file during write
	if err := syscall.Flock(int(tmp.Fd()), syscall.LOCK_EX); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: acquiring lock: %v", storage.ErrStorage, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing temp file: %v", storage.ErrStorage, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing temp file: %v", storage.ErrStorage, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: renaming file: %v", storage.ErrStorage, err)
	}

	return nil
}

// Get reads the record stored under key.
func (s *Store) Get(key string) (string, error) {
	if err := storage.ValidateKey(key); err != nil {
		return "", fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}
	data, err := os.ReadFile(s.recordPath(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: reading file: %v", storage.ErrStorage, err)
	}
	return s.unmarshal(key, data)
}

// Set replaces the record stored under key.
func (s *Store) Set(key string, value string) error {
	if err := storage.ValidateKey(key); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}
	data, err := s.marshal(key, value)
	if err != nil {
		return err
	}
	return s.atomicWrite(s.recordPath(key), data)
}

// SetMany writes each record with its own atomic replace. A failure part way
// leaves the earlier records written.
func (s *Store) SetMany(records map[string]string) error {
	for key := range records {
		if err := storage.ValidateKey(key); err != nil {
			return fmt.Errorf("%w: %v", storage.ErrValidation, err)
		}
	}
	for key, value := range records {
		if err := s.Set(key, value); err != nil {
			return err
		}
	}
	return nil
}
