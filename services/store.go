package services

import (
	"context"
	"sync"

	"baleafiya/models"
)

// CartStore persists cart snapshots keyed by chat user. Load returns
// (nil, nil) when the user has no saved cart. The engine treats every
// store error as "no usable snapshot" on load and ignores errors on
// save, so implementations just report what happened.
type CartStore interface {
	Load(ctx context.Context, userID int64) (*models.CartSnapshot, error)
	Save(ctx context.Context, userID int64, snap *models.CartSnapshot) error
}

// MemoryStore keeps snapshots in-process. Used in tests and as the
// backend when no Postgres or Redis is configured.
type MemoryStore struct {
	mu    sync.Mutex
	snaps map[int64]models.CartSnapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snaps: make(map[int64]models.CartSnapshot)}
}

func (m *MemoryStore) Load(ctx context.Context, userID int64) (*models.CartSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.snaps[userID]
	if !ok {
		return nil, nil
	}
	out := models.CartSnapshot{
		Lines:         append([]models.CartLine(nil), snap.Lines...),
		PickupPointID: snap.PickupPointID,
	}
	return &out, nil
}

func (m *MemoryStore) Save(ctx context.Context, userID int64, snap *models.CartSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snaps[userID] = models.CartSnapshot{
		Lines:         append([]models.CartLine(nil), snap.Lines...),
		PickupPointID: snap.PickupPointID,
	}
	return nil
}
