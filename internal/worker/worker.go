package worker

import (
	"context"
	"sync"
	"time"

	"github.com/F3-Nation/f3-nation-map-sub001/internal/cache"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/channel"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/derive"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/directory"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/logging"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/queue"
	"github.com/F3-Nation/f3-nation-map-sub001/internal/store"
	"github.com/F3-Nation/f3-nation-map-sub001/pkg/core"
)

// Dependencies holds all dependencies for the worker manager
type Dependencies struct {
	Directory  *cache.DirectoryCache
	Source     directory.Source
	Deriver    *derive.Deriver
	View       *store.ViewStore
	Persister  *store.ViewPersister
	LogManager *logging.SlogManager
}

// Manager runs the engine's background goroutines: directory refresh
// after invalidation, and view-state persistence when the map goes
// idle.
type Manager struct {
	deps Dependencies

	refreshCh channel.Channel[struct{}]
	viewCh    channel.Channel[core.MapView]
	pending   *queue.Queue[string]
	stopChan  chan struct{}
	wg        sync.WaitGroup

	mu              sync.Mutex
	refreshes       int
	lastRefresh     time.Duration
	lastRefreshedAt time.Time
}

// NewManager creates a new worker manager
func NewManager(deps Dependencies) *Manager {
	return &Manager{
		deps:      deps,
		refreshCh: channel.New[struct{}](4),
		viewCh:    channel.New[core.MapView](16),
		pending:   queue.New[string](),
	}
}

// Start launches the background loops. The view store subscription is
// registered here so nothing is persisted before startup completes.
func (m *Manager) Start(ctx context.Context) {
	m.stopChan = make(chan struct{})

	m.wg.Add(2)
	go m.refreshLoop(ctx)
	go m.persistLoop()

	m.deps.View.Subscribe(func() {
		v := m.deps.View.Get()
		if v.Interaction != core.Idle || v.Center == nil {
			return
		}
		select {
		case <-m.stopChan:
		default:
			m.viewCh.Send(v)
		}
	})
}

// Stop shuts down the background loops and waits for them to drain.
func (m *Manager) Stop() {
	close(m.stopChan)
	m.wg.Wait()
}

// Invalidate flags the directory cache stale and queues a refresh.
// Stale data keeps serving until the refresh lands.
func (m *Manager) Invalidate(reason string) {
	m.deps.Directory.Invalidate()
	m.pending.Push(reason)

	// Coalesce: one queued refresh covers any number of invalidations.
	select {
	case <-m.refreshCh.Receive():
	default:
	}
	m.refreshCh.Send(struct{}{})
}

// Stats returns refresh counters for monitoring.
func (m *Manager) Stats() (refreshes int, last time.Duration, at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshes, m.lastRefresh, m.lastRefreshedAt
}

func (m *Manager) refreshLoop(ctx context.Context) {
	defer m.wg.Done()
	log := m.deps.LogManager.Logger()

	for {
		select {
		case <-m.stopChan:
			return
		case <-m.refreshCh.Receive():
			reasons := m.pending.GetAndEmpty()

			start := time.Now()
			markers, err := m.deps.Source.GetAllLocationMarkers(ctx)
			if err != nil {
				// Keep serving the stale snapshot.
				log.Warn("directory refresh failed", "reasons", reasons, "error", err)
				continue
			}

			m.deps.Directory.Replace(markers)
			m.deps.Deriver.Recompute()

			m.mu.Lock()
			m.refreshes++
			m.lastRefresh = time.Since(start)
			m.lastRefreshedAt = time.Now()
			m.mu.Unlock()

			log.Debug("directory refreshed",
				"markers", len(markers),
				"reasons", len(reasons),
				"duration", time.Since(start))
		}
	}
}

func (m *Manager) persistLoop() {
	defer m.wg.Done()
	log := m.deps.LogManager.Logger()

	for {
		select {
		case <-m.stopChan:
			return
		case v := <-m.viewCh.Receive():
			if m.deps.Persister == nil {
				continue
			}
			if err := m.deps.Persister.Save(v); err != nil {
				log.Warn("persisting view state failed", "error", err)
			}
		}
	}
}
