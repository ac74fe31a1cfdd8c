package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"donerci/internal/apperr"

	"go.uber.org/zap"
)

// SnapshotVersion is the schema version written with every snapshot.
const SnapshotVersion = 1

// ErrNoSnapshot is returned by a SnapshotStore when nothing is stored.
var ErrNoSnapshot = errors.New("no cart snapshot")

// SnapshotStore persists serialized carts per session.
type SnapshotStore interface {
	Load(ctx context.Context, sessionID string) ([]byte, error)
	Save(ctx context.Context, sessionID string, data []byte) error
	Delete(ctx context.Context, sessionID string) error
}

type snapshot struct {
	Version int       `json:"version"`
	Items   []Item    `json:"items"`
	SavedAt time.Time `json:"saved_at"`
}

func encode(c *Cart) ([]byte, error) {
	return json.Marshal(snapshot{Version: SnapshotVersion, Items: c.Items(), SavedAt: time.Now().UTC()})
}

func decode(data []byte) (*Cart, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	seen := make(map[string]struct{}, len(snap.Items))
	for i, it := range snap.Items {
		if it.ID == "" {
			return nil, fmt.Errorf("item %d has no id", i)
		}
		if _, dup := seen[it.ID]; dup {
			return nil, fmt.Errorf("duplicate item %q", it.ID)
		}
		seen[it.ID] = struct{}{}
		if it.Quantity < 1 {
			return nil, fmt.Errorf("item %q has quantity %d", it.ID, it.Quantity)
		}
		if it.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("item %q has negative price", it.ID)
		}
	}
	return &Cart{items: snap.Items}, nil
}

// Session binds a cart to one browsing session and writes the full cart
// to its store after every mutation.
type Session struct {
	id     string
	cart   *Cart
	store  SnapshotStore
	logger *zap.Logger
}

// Open restores the session's cart. A missing snapshot yields an empty
// cart; a corrupt or mismatched one is logged, deleted and replaced by an
// empty cart. Only store read failures are returned.
func Open(ctx context.Context, store SnapshotStore, sessionID string, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{id: sessionID, cart: New(), store: store, logger: logger}

	data, err := store.Load(ctx, sessionID)
	if errors.Is(err, ErrNoSnapshot) {
		return s, nil
	}
	if err != nil {
		return nil, apperr.Persistence("load cart", err)
	}

	restored, err := decode(data)
	if err != nil {
		derr := &apperr.DeserializationError{Key: sessionID, Err: err}
		logger.Warn("discarding cart snapshot", zap.String("session_id", sessionID), zap.Error(derr))
		if delErr := store.Delete(ctx, sessionID); delErr != nil {
			logger.Warn("failed to delete corrupt cart snapshot", zap.String("session_id", sessionID), zap.Error(delErr))
		}
		return s, nil
	}
	s.cart = restored
	return s, nil
}

func (s *Session) ID() string { return s.id }

// Cart exposes the cart for reads. Mutate through the Session methods so
// every change is persisted.
func (s *Session) Cart() *Cart { return s.cart }

func (s *Session) persist(ctx context.Context) error {
	data, err := encode(s.cart)
	if err != nil {
		return apperr.Persistence("encode cart", err)
	}
	if err := s.store.Save(ctx, s.id, data); err != nil {
		return apperr.Persistence("save cart", err)
	}
	return nil
}

func (s *Session) Add(ctx context.Context, item Item) error {
	s.cart.Add(item)
	return s.persist(ctx)
}

func (s *Session) Remove(ctx context.Context, id string) error {
	s.cart.Remove(id)
	return s.persist(ctx)
}

func (s *Session) SetQuantity(ctx context.Context, id string, q int) error {
	s.cart.SetQuantity(id, q)
	return s.persist(ctx)
}

func (s *Session) Clear(ctx context.Context) error {
	s.cart.Clear()
	return s.persist(ctx)
}

// MemoryStore is an in-process SnapshotStore.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Load(_ context.Context, sessionID string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.data[sessionID]
	if !ok {
		return nil, ErrNoSnapshot
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryStore) Save(_ context.Context, sessionID string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[sessionID] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, sessionID)
	return nil
}
