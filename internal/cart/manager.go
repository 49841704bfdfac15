package cart

import (
	"context"
	"sync"
	"time"

	"github.com/dfameublement/catalogue-backend/pkg/logger"
	"github.com/google/uuid"
)

// Manager hands out the process-wide singleton Container for each cart
// token. The container is the sole mutator of its storage key for the
// lifetime of its registry entry. Containers idle longer than idleTTL are
// flushed and evicted so client-supplied tokens cannot grow the registry
// without bound.
type Manager struct {
	store    Store
	logg     *logger.Logger
	debounce time.Duration
	idleTTL  time.Duration

	mu         sync.Mutex
	containers map[string]*managedContainer

	quit      chan struct{}
	closeOnce sync.Once
}

type managedContainer struct {
	container *Container
	lastSeen  time.Time
}

// NewManager builds the container registry. An idleTTL of zero disables
// eviction; live containers then survive until Close.
func NewManager(store Store, debounce, idleTTL time.Duration, logg *logger.Logger) *Manager {
	m := &Manager{
		store:      store,
		logg:       logg,
		debounce:   debounce,
		idleTTL:    idleTTL,
		containers: map[string]*managedContainer{},
		quit:       make(chan struct{}),
	}
	if idleTTL > 0 {
		go m.reapLoop()
	}
	return m
}

// NewToken issues an opaque token identifying a fresh cart.
func (m *Manager) NewToken() string {
	return uuid.NewString()
}

// Container returns the container for the given token, creating it on first
// use. Every call refreshes the token's idle clock.
func (m *Manager) Container(token string) *Container {
	m.mu.Lock()
	defer m.mu.Unlock()
	if entry, ok := m.containers[token]; ok {
		entry.lastSeen = time.Now()
		return entry.container
	}
	c := NewContainer(token, m.store, m.debounce, m.logg)
	m.containers[token] = &managedContainer{container: c, lastSeen: time.Now()}
	return c
}

// Close stops the reaper, then flushes and stops every live container.
func (m *Manager) Close(ctx context.Context) {
	m.closeOnce.Do(func() {
		close(m.quit)

		m.mu.Lock()
		containers := make([]*Container, 0, len(m.containers))
		for _, entry := range m.containers {
			containers = append(containers, entry.container)
		}
		m.containers = map[string]*managedContainer{}
		m.mu.Unlock()

		for _, c := range containers {
			c.Close(ctx)
		}
	})
}

func (m *Manager) reapLoop() {
	ticker := time.NewTicker(m.idleTTL)
	defer ticker.Stop()
	for {
		select {
		case <-m.quit:
			return
		case now := <-ticker.C:
			m.reap(now)
		}
	}
}

// reap evicts containers idle longer than idleTTL, flushing each one so no
// coalesced write is lost. A later request for the same token builds a
// fresh container that reloads the persisted blob.
func (m *Manager) reap(now time.Time) {
	m.mu.Lock()
	idle := make([]*Container, 0)
	for token, entry := range m.containers {
		if now.Sub(entry.lastSeen) >= m.idleTTL {
			idle = append(idle, entry.container)
			delete(m.containers, token)
		}
	}
	m.mu.Unlock()

	for _, c := range idle {
		ctx, cancel := context.WithTimeout(context.Background(), persistWriteTimeout)
		c.Close(ctx)
		cancel()
	}
}
