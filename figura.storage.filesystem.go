package figura

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// FilesystemStorage stores templates as YAML documents on the
// filesystem, one file per template:
//
//	<root>/
//	  <template-name>.yaml
//
// Template names are restricted to a filesystem-safe character set to
// keep lookups inside the root directory.
type FilesystemStorage struct {
	mu     sync.RWMutex
	root   string
	closed bool
}

// FilesystemStorageDriver is the driver for creating FilesystemStorage instances.
type FilesystemStorageDriver struct{}

func init() {
	RegisterStorageDriver(StorageDriverNameFilesystem, &FilesystemStorageDriver{})
}

// Open creates a new FilesystemStorage instance.
// The connection string is the root directory path.
func (d *FilesystemStorageDriver) Open(connectionString string) (TemplateStorage, error) {
	return NewFilesystemStorage(connectionString)
}

// NewFilesystemStorage creates a new filesystem-based template storage.
// The root directory will be created if it doesn't exist.
func NewFilesystemStorage(root string) (*FilesystemStorage, error) {
	if root == "" {
		return nil, &StorageError{Message: ErrMsgInvalidStorageRoot}
	}

	if err := os.MkdirAll(root, FilesystemDirPermissions); err != nil {
		return nil, &StorageError{
			Message: ErrMsgCreateStorageDir,
			Name:    root,
			Cause:   err,
		}
	}

	return &FilesystemStorage{root: root}, nil
}

// Get retrieves a template by name.
func (s *FilesystemStorage) Get(ctx context.Context, name string) (*StoredTemplate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateFilesystemName(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	return s.readTemplate(name)
}

// Save stores a template, replacing any existing one with the same name.
func (s *FilesystemStorage) Save(ctx context.Context, tmpl *StoredTemplate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateFilesystemName(tmpl.Name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	now := time.Now().UTC()
	stored := copyStoredTemplate(tmpl)
	if existing, err := s.readTemplate(tmpl.Name); err == nil {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	data, err := yaml.Marshal(stored)
	if err != nil {
		return &StorageError{Message: err.Error(), Name: tmpl.Name, Cause: err}
	}
	if err := os.WriteFile(s.templatePath(tmpl.Name), data, FilesystemFilePermissions); err != nil {
		return &StorageError{Message: err.Error(), Name: tmpl.Name, Cause: err}
	}

	tmpl.CreatedAt = stored.CreatedAt
	tmpl.UpdatedAt = stored.UpdatedAt
	return nil
}

// Delete removes a template by name.
func (s *FilesystemStorage) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateFilesystemName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	err := os.Remove(s.templatePath(name))
	if errors.Is(err, fs.ErrNotExist) {
		return NewStorageTemplateNotFoundError(name)
	}
	if err != nil {
		return &StorageError{Message: err.Error(), Name: name, Cause: err}
	}
	return nil
}

// List returns templates matching the query, ordered by name.
func (s *FilesystemStorage) List(ctx context.Context, query *TemplateQuery) ([]*StoredTemplate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	if query == nil {
		query = &TemplateQuery{}
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, &StorageError{Message: err.Error(), Name: s.root, Cause: err}
	}

	var results []*StoredTemplate
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), FilesystemTemplateExt) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), FilesystemTemplateExt)
		if query.NamePrefix != "" && !strings.HasPrefix(name, query.NamePrefix) {
			continue
		}
		tmpl, err := s.readTemplate(name)
		if err != nil {
			return nil, err
		}
		results = append(results, tmpl)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})

	return paginate(results, query.Offset, query.Limit), nil
}

// Exists checks if a template with the given name exists.
func (s *FilesystemStorage) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := validateFilesystemName(name); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, NewStorageClosedError()
	}

	_, err := os.Stat(s.templatePath(name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, &StorageError{Message: err.Error(), Name: name, Cause: err}
	}
	return true, nil
}

// Close marks the storage as closed. Files on disk are left intact.
func (s *FilesystemStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// Root returns the storage root directory.
func (s *FilesystemStorage) Root() string {
	return s.root
}

func (s *FilesystemStorage) templatePath(name string) string {
	return filepath.Join(s.root, name+FilesystemTemplateExt)
}

func (s *FilesystemStorage) readTemplate(name string) (*StoredTemplate, error) {
	data, err := os.ReadFile(s.templatePath(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, NewStorageTemplateNotFoundError(name)
	}
	if err != nil {
		return nil, &StorageError{Message: err.Error(), Name: name, Cause: err}
	}

	var tmpl StoredTemplate
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, &StorageError{Message: err.Error(), Name: name, Cause: err}
	}
	return &tmpl, nil
}

// validateFilesystemName restricts template names to letters, digits,
// '_', '-', and '.' (no leading dot), preventing path traversal out of
// the storage root.
func validateFilesystemName(name string) error {
	if name == "" || name[0] == '.' {
		return &StorageError{Message: ErrMsgInvalidTemplateName, Name: name}
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-' || r == '.':
		default:
			return &StorageError{Message: ErrMsgInvalidTemplateName, Name: name}
		}
	}
	return nil
}
