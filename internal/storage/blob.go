package storage

import (
	"errors"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/noah-isme/edudocs-api/internal/models"
	"github.com/noah-isme/edudocs-api/internal/observability"
)

// BlobScheme prefixes every transient file reference.
const BlobScheme = "blob:"

// ErrBlobNameRequired indicates the uploaded blob carried no file name.
var ErrBlobNameRequired = errors.New("blob file name is required")

// Object describes a blob held by the registry.
type Object struct {
	Ref         string
	Name        string
	ContentType string
	Size        int64
	CreatedAt   time.Time
}

// BlobRegistry keeps uploaded files in memory for the lifetime of the process.
// References are only meaningful to the registry that issued them.
type BlobRegistry struct {
	mu    sync.RWMutex
	blobs map[string]storedBlob
	now   func() time.Time
}

type storedBlob struct {
	object Object
	data   []byte
}

// NewBlobRegistry returns an empty registry.
func NewBlobRegistry() *BlobRegistry {
	return &BlobRegistry{
		blobs: make(map[string]storedBlob),
		now:   time.Now,
	}
}

// Put copies the blob into the registry and returns its transient reference.
func (r *BlobRegistry) Put(blob models.FileBlob) (Object, error) {
	name := FileName(blob.Name)
	if name == "" {
		return Object{}, ErrBlobNameRequired
	}

	data := make([]byte, len(blob.Data))
	copy(data, blob.Data)

	// The type comes from the bytes, never from the upload name or headers.
	contentType := mimetype.Detect(data).String()

	object := Object{
		Ref:         BlobScheme + uuid.NewString(),
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(data)),
		CreatedAt:   r.now().UTC(),
	}

	r.mu.Lock()
	r.blobs[object.Ref] = storedBlob{object: object, data: data}
	count := len(r.blobs)
	r.mu.Unlock()

	observability.BlobsStored().Set(float64(count))
	return object, nil
}

// Get resolves a reference. The returned bytes are a copy.
func (r *BlobRegistry) Get(ref string) (Object, []byte, bool) {
	if !strings.HasPrefix(ref, BlobScheme) {
		ref = BlobScheme + ref
	}

	r.mu.RLock()
	stored, ok := r.blobs[ref]
	r.mu.RUnlock()
	if !ok {
		return Object{}, nil, false
	}

	data := make([]byte, len(stored.data))
	copy(data, stored.data)
	return stored.object, data, true
}

// RefID strips the scheme from a reference, leaving the identifier used in URLs.
func RefID(ref string) string {
	return strings.TrimPrefix(ref, BlobScheme)
}

// FileName reduces an uploaded name to its base name.
func FileName(name string) string {
	cleaned := strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
	if cleaned == "" {
		return ""
	}
	base := path.Base(cleaned)
	if base == "." || base == "/" {
		return ""
	}
	return base
}
