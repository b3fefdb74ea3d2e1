package source

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/highweigh/pkg/errors"
	"github.com/matzehuels/highweigh/pkg/roadmap"
)

// extensions are tried in order when resolving a name.
var extensions = []string{".yaml", ".yml", ".json", ".toml"}

// DirStore serves the documents in a directory by base name: "platform"
// resolves to platform.yaml, platform.yml, platform.json or platform.toml.
type DirStore struct {
	dir string
}

// NewDirStore returns a store over dir. The directory must exist.
func NewDirStore(dir string) (*DirStore, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "document directory")
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s is not a directory", dir)
	}
	return &DirStore{dir: dir}, nil
}

// List implements Store.
func (s *DirStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if !slices.Contains(extensions, strings.ToLower(ext)) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ext))
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}

// Fetch implements Source.
func (s *DirStore) Fetch(ctx context.Context, name string) (*Raw, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	for _, ext := range extensions {
		path := filepath.Join(s.dir, name+ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		raw, err := FileSource{}.Fetch(ctx, path)
		if err != nil {
			return nil, err
		}
		raw.Ref = name
		return raw, nil
	}
	return nil, errors.Wrap(errors.ErrCodeNotFound, ErrNotFound, "roadmap %q", name)
}

// Put writes doc as name.json, replacing any document of that name.
func (s *DirStore) Put(ctx context.Context, name string, doc *roadmap.Document) error {
	if err := validName(name); err != nil {
		return err
	}
	data, err := roadmap.Encode(doc)
	if err != nil {
		return err
	}
	for _, ext := range extensions {
		if ext == ".json" {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, name+ext)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return os.WriteFile(filepath.Join(s.dir, name+".json"), data, 0o644)
}

// Close implements Store.
func (s *DirStore) Close(ctx context.Context) error { return nil }

func validName(name string) error {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return errors.New(errors.ErrCodeInvalidInput, "invalid roadmap name %q", name)
	}
	return nil
}

var _ Store = (*DirStore)(nil)
