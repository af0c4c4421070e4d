package importer

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/inventorypulse/inventory-service/internal/model"
)

// BatchStore holds pending batches between preview and commit. Keyed by
// batchId only: the fileHash lives inside the batch and is verified at commit,
// so two concurrent previews of identical content never collide.
type BatchStore interface {
	// Put stores the batch under a fresh, unpredictable batchId and returns it.
	Put(ctx context.Context, batch *model.ImportBatch) (string, error)
	// Get returns the batch or ErrBatchNotFound if missing or expired.
	Get(ctx context.Context, batchID string) (*model.ImportBatch, error)
	// Discard drops the batch. Discarding an unknown batch is not an error.
	Discard(ctx context.Context, batchID string) error
}

// MemoryBatchStore keeps batches in process memory. Expiry is lazy: entries
// are evicted when touched after their deadline, never by a timer.
type MemoryBatchStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	batches map[string]*model.ImportBatch

	now func() time.Time // overridable in tests
}

func NewMemoryBatchStore(ttl time.Duration) *MemoryBatchStore {
	return &MemoryBatchStore{
		ttl:     ttl,
		batches: make(map[string]*model.ImportBatch),
		now:     time.Now,
	}
}

func (s *MemoryBatchStore) Put(_ context.Context, batch *model.ImportBatch) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	id := uuid.NewString()

	stored := *batch
	stored.BatchID = id
	stored.CreatedAt = now
	stored.ExpiresAt = now.Add(s.ttl)

	s.sweepLocked(now)
	s.batches[id] = &stored

	batch.BatchID = id
	batch.CreatedAt = stored.CreatedAt
	batch.ExpiresAt = stored.ExpiresAt
	return id, nil
}

func (s *MemoryBatchStore) Get(_ context.Context, batchID string) (*model.ImportBatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch, ok := s.batches[batchID]
	if !ok {
		return nil, ErrBatchNotFound
	}
	if batch.Expired(s.now()) {
		delete(s.batches, batchID)
		return nil, ErrBatchNotFound
	}

	out := *batch
	return &out, nil
}

func (s *MemoryBatchStore) Discard(_ context.Context, batchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.batches, batchID)
	return nil
}

func (s *MemoryBatchStore) sweepLocked(now time.Time) {
	for id, b := range s.batches {
		if b.Expired(now) {
			delete(s.batches, id)
		}
	}
}
