package repository

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/noah-isme/edudocs-api/internal/models"
	"github.com/noah-isme/edudocs-api/internal/observability"
	"github.com/noah-isme/edudocs-api/internal/storage"
)

// Latency configures the simulated delay of each repository operation.
type Latency struct {
	ListUsers              time.Duration
	GetUser                time.Duration
	CreateUser             time.Duration
	ListDocuments          time.Duration
	ListDocumentsByStudent time.Duration
	CreateDocument         time.Duration
	UpdateDocumentStatus   time.Duration
}

// DefaultLatency mirrors the response times of the remote service the
// repository stands in for.
func DefaultLatency() Latency {
	return Latency{
		ListUsers:              100 * time.Millisecond,
		GetUser:                100 * time.Millisecond,
		CreateUser:             200 * time.Millisecond,
		ListDocuments:          200 * time.Millisecond,
		ListDocumentsByStudent: 200 * time.Millisecond,
		CreateDocument:         300 * time.Millisecond,
		UpdateDocumentStatus:   300 * time.Millisecond,
	}
}

// Option customises a MemoryRepository.
type Option func(*MemoryRepository)

// WithLatency replaces the simulated latency profile.
func WithLatency(latency Latency) Option {
	return func(r *MemoryRepository) {
		r.latency = latency
	}
}

// WithClock replaces the time source used for document timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *MemoryRepository) {
		if now != nil {
			r.now = now
		}
	}
}

// WithIDGenerator replaces the identifier generator. It receives the entity
// prefix ("user" or "doc").
func WithIDGenerator(next func(prefix string) string) Option {
	return func(r *MemoryRepository) {
		if next != nil {
			r.nextID = next
		}
	}
}

// MemoryRepository keeps users and documents in process memory.
type MemoryRepository struct {
	mu        sync.RWMutex
	users     []models.User
	documents []models.Document

	blobs     *storage.BlobRegistry
	validator *validator.Validate
	latency   Latency
	now       func() time.Time
	nextID    func(prefix string) string
}

// NewMemoryRepository builds an empty repository. Uploaded files are
// registered in blobs.
func NewMemoryRepository(blobs *storage.BlobRegistry, validate *validator.Validate, opts ...Option) *MemoryRepository {
	if blobs == nil {
		blobs = storage.NewBlobRegistry()
	}
	if validate == nil {
		validate = validator.New(validator.WithRequiredStructEnabled())
	}

	repo := &MemoryRepository{
		blobs:     blobs,
		validator: validate,
		latency:   DefaultLatency(),
		now:       time.Now,
		nextID:    defaultID,
	}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

func defaultID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// wait blocks for the simulated latency of an operation.
func (r *MemoryRepository) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func observe(operation string, start time.Time, err error) {
	observability.RepositoryDuration().WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		observability.RepositoryErrors().WithLabelValues(operation).Inc()
	}
}
