package service

import (
	"context"
	"errors"
	"sync"

	"github.com/vaultpass/secretgen-go/internal/model"
	"github.com/vaultpass/secretgen-go/internal/repository"
)

func boolPtr(b bool) *bool { return &b }

// memoryStore is an in-memory ClientStore, EventRecorder and EventLister.
type memoryStore struct {
	mu        sync.Mutex
	clients   map[string]model.Client
	events    []model.GenerationEvent
	recordErr error
	lastLimit int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{clients: make(map[string]model.Client)}
}

func (m *memoryStore) Create(_ context.Context, client *model.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.clients[client.ClientID]; ok {
		return repository.ErrDuplicateClient
	}
	client.ID = int64(len(m.clients) + 1)
	m.clients[client.ClientID] = *client
	return nil
}

func (m *memoryStore) GetByClientID(_ context.Context, clientID string) (*model.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.clients[clientID]
	if !ok {
		return nil, repository.ErrClientNotFound
	}
	return &c, nil
}

func (m *memoryStore) Record(_ context.Context, event *model.GenerationEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.recordErr != nil {
		return m.recordErr
	}
	event.ID = int64(len(m.events) + 1)
	m.events = append(m.events, *event)
	return nil
}

func (m *memoryStore) ListByClient(_ context.Context, clientID string, limit int) ([]model.GenerationEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastLimit = limit
	var out []model.GenerationEvent
	for i := len(m.events) - 1; i >= 0 && len(out) < limit; i-- {
		if m.events[i].ClientID == clientID {
			out = append(out, m.events[i])
		}
	}
	return out, nil
}

// collidingStore reports a duplicate client id for the first collisions
// calls to Create.
type collidingStore struct {
	*memoryStore
	collisions int
	attempts   int
}

func (c *collidingStore) Create(ctx context.Context, client *model.Client) error {
	c.attempts++
	if c.attempts <= c.collisions {
		return repository.ErrDuplicateClient
	}
	return c.memoryStore.Create(ctx, client)
}

var errStoreDown = errors.New("store down")
