package figura

import (
	"context"
	"sync"
	"time"
)

// StoredTemplate is a named template persisted in a storage backend,
// together with the delimiter pair it was written for.
type StoredTemplate struct {
	// Name is the unique template name used for lookups.
	Name string `yaml:"name" json:"name"`

	// Source is the raw template text.
	Source string `yaml:"source" json:"source"`

	// OpenDelim and CloseDelim record the delimiter pair the source was
	// written for, as one-rune strings.
	OpenDelim  string `yaml:"open_delim" json:"open_delim"`
	CloseDelim string `yaml:"close_delim" json:"close_delim"`

	// Metadata contains arbitrary key-value pairs for user-defined data.
	Metadata map[string]string `yaml:"metadata,omitempty" json:"metadata,omitempty"`

	// CreatedAt is when the template was first saved.
	CreatedAt time.Time `yaml:"created_at" json:"created_at"`

	// UpdatedAt is when the template was last replaced.
	UpdatedAt time.Time `yaml:"updated_at" json:"updated_at"`
}

// TemplateQuery defines filters for listing stored templates.
type TemplateQuery struct {
	// NamePrefix filters to names starting with this prefix.
	NamePrefix string

	// Limit is the maximum number of results (0 = no limit).
	Limit int

	// Offset is the number of results to skip (for pagination).
	Offset int
}

// TemplateStorage is the interface for pluggable storage backends.
// Implementations must be safe for concurrent use.
type TemplateStorage interface {
	// Get retrieves a template by name.
	// Returns a not-found error if the name doesn't exist.
	Get(ctx context.Context, name string) (*StoredTemplate, error)

	// Save stores a template, replacing any existing template with the
	// same name. CreatedAt and UpdatedAt are set by the implementation.
	Save(ctx context.Context, tmpl *StoredTemplate) error

	// Delete removes a template by name.
	// Returns a not-found error if the name doesn't exist.
	Delete(ctx context.Context, name string) error

	// List returns templates matching the query, ordered by name.
	List(ctx context.Context, query *TemplateQuery) ([]*StoredTemplate, error)

	// Exists checks if a template with the given name exists.
	Exists(ctx context.Context, name string) (bool, error)

	// Close releases any resources held by the storage.
	// After Close, the storage should not be used.
	Close() error
}

// StorageDriver is a factory for creating storage instances.
// Drivers register themselves during init().
type StorageDriver interface {
	// Open creates a new storage instance with the given connection
	// string. The format of the connection string is driver-specific.
	Open(connectionString string) (TemplateStorage, error)
}

// Storage error message constants
const (
	ErrMsgNilStorageDriver        = "storage driver is nil"
	ErrMsgDriverAlreadyRegistered = "storage driver already registered"
	ErrMsgStorageDriverNotFound   = "storage driver not found"
	ErrMsgStorageClosed           = "storage is closed"
	ErrMsgStorageTemplateNotFound = "template not found in storage"
	ErrMsgInvalidTemplateName     = "invalid template name"
	ErrMsgInvalidStorageRoot      = "storage root directory cannot be empty"
	ErrMsgCreateStorageDir        = "failed to create storage directory"
)

// StorageError represents a storage-related error.
type StorageError struct {
	Message string
	Name    string
	Cause   error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	if e.Name != "" {
		return e.Message + ": " + e.Name
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageTemplateNotFoundError creates an error for a template
// missing from storage.
func NewStorageTemplateNotFoundError(name string) error {
	return &StorageError{
		Message: ErrMsgStorageTemplateNotFound,
		Name:    name,
	}
}

// NewStorageClosedError creates an error for operations on closed storage.
func NewStorageClosedError() error {
	return &StorageError{
		Message: ErrMsgStorageClosed,
	}
}

// NewStorageDriverNotFoundError creates an error for a missing storage driver.
func NewStorageDriverNotFoundError(name string) error {
	return &StorageError{
		Message: ErrMsgStorageDriverNotFound,
		Name:    name,
	}
}

// IsStorageNotFound reports whether err is a storage not-found error.
func IsStorageNotFound(err error) bool {
	serr, ok := err.(*StorageError)
	return ok && serr.Message == ErrMsgStorageTemplateNotFound
}

// Driver registry

var (
	storageDriversMu sync.RWMutex
	storageDrivers   = make(map[string]StorageDriver)
)

// RegisterStorageDriver registers a storage driver by name.
// Panics if the driver is nil or the name is already registered,
// mirroring database/sql driver registration semantics.
func RegisterStorageDriver(name string, driver StorageDriver) {
	storageDriversMu.Lock()
	defer storageDriversMu.Unlock()

	if driver == nil {
		panic(ErrMsgNilStorageDriver)
	}
	if _, exists := storageDrivers[name]; exists {
		panic(ErrMsgDriverAlreadyRegistered + ": " + name)
	}
	storageDrivers[name] = driver
}

// OpenStorage opens a storage backend by driver name.
func OpenStorage(driverName, connectionString string) (TemplateStorage, error) {
	storageDriversMu.RLock()
	driver, ok := storageDrivers[driverName]
	storageDriversMu.RUnlock()

	if !ok {
		return nil, NewStorageDriverNotFoundError(driverName)
	}
	return driver.Open(connectionString)
}

// StorageDrivers returns the registered driver names.
func StorageDrivers() []string {
	storageDriversMu.RLock()
	defer storageDriversMu.RUnlock()

	names := make([]string, 0, len(storageDrivers))
	for name := range storageDrivers {
		names = append(names, name)
	}
	return names
}

// copyStoredTemplate returns a deep copy so callers cannot mutate
// storage-held state.
func copyStoredTemplate(t *StoredTemplate) *StoredTemplate {
	out := *t
	if t.Metadata != nil {
		out.Metadata = make(map[string]string, len(t.Metadata))
		for k, v := range t.Metadata {
			out.Metadata[k] = v
		}
	}
	return &out
}
