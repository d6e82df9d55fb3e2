// Package watcher drives the poll loop: on every tick each registered
// provider is polled concurrently, newly seen incidents are filtered
// against a per-provider recent-key cache and emitted to the sink in the
// provider's item order.
package watcher

import (
	"context"
	"log"
	"sync"
	"time"

	"statuswatch/adapters"
	"statuswatch/types"
)

// Sink receives emitted incidents, one call per incident. Implementations
// must tolerate calls from concurrent provider cycles.
type Sink interface {
	Emit(incident types.Incident)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(types.Incident)

func (f SinkFunc) Emit(incident types.Incident) { f(incident) }

// MultiSink fans one emission out to several sinks in order.
type MultiSink []Sink

func (m MultiSink) Emit(incident types.Incident) {
	for _, s := range m {
		s.Emit(incident)
	}
}

// Config tunes the poll loop.
type Config struct {
	PollInterval time.Duration
	FetchLimit   int
	RecentWindow int
}

// DefaultConfig mirrors the defaults the monitor ships with.
func DefaultConfig() Config {
	return Config{
		PollInterval: 15 * time.Second,
		FetchLimit:   3,
		RecentWindow: 50,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.PollInterval <= 0 {
		c.PollInterval = d.PollInterval
	}
	if c.FetchLimit <= 0 {
		c.FetchLimit = d.FetchLimit
	}
	if c.RecentWindow <= 0 {
		c.RecentWindow = d.RecentWindow
	}
	return c
}

// ProviderStatus is one provider's runtime polling state.
type ProviderStatus struct {
	Key        string    `json:"key"`
	LastPolled time.Time `json:"last_polled"`
	LastError  string    `json:"last_error,omitempty"`
	ErrorCount int       `json:"error_count"`
	Emitted    int       `json:"emitted"`
}

// Watcher owns one recent-state cache per registered provider and the
// only goroutines that touch them. The registry must be fully populated
// before New is called; it is treated as read-only afterwards.
type Watcher struct {
	registry *adapters.Registry
	sink     Sink
	cfg      Config

	caches map[string]*recentCache

	mu       sync.Mutex
	statuses map[string]*ProviderStatus
}

// New builds a watcher over a populated registry.
func New(registry *adapters.Registry, sink Sink, cfg Config) *Watcher {
	cfg = cfg.withDefaults()
	w := &Watcher{
		registry: registry,
		sink:     sink,
		cfg:      cfg,
		caches:   make(map[string]*recentCache),
		statuses: make(map[string]*ProviderStatus),
	}
	for _, reg := range registry.List() {
		w.caches[reg.Key] = newRecentCache(cfg.RecentWindow)
		w.statuses[reg.Key] = &ProviderStatus{Key: reg.Key}
	}
	return w
}

// Run polls immediately, then on every interval tick, until ctx is
// cancelled. In-flight cycles drain before Run returns, and a cycle cut
// short by cancellation commits nothing to its cache.
func (w *Watcher) Run(ctx context.Context) error {
	log.Printf("watcher: monitoring %d provider(s) every %s", len(w.caches), w.cfg.PollInterval)

	w.Tick(ctx)

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("watcher: shutting down")
			return ctx.Err()
		case <-ticker.C:
			w.Tick(ctx)
		}
	}
}

// Tick runs one poll cycle for every registered provider concurrently and
// waits for all of them. Cycles are independent: one provider's failure
// never blocks or alters another's.
func (w *Watcher) Tick(ctx context.Context) {
	var wg sync.WaitGroup
	for _, reg := range w.registry.List() {
		wg.Add(1)
		go func(key string, adapter adapters.Adapter) {
			defer wg.Done()
			w.pollProvider(ctx, key, adapter)
		}(reg.Key, reg.Adapter)
	}
	wg.Wait()
}

// pollProvider runs fetch + extract + filter + commit + emit for one
// provider. The cache is only touched after the whole cycle succeeded, so
// a failed or abandoned cycle leaves no partial state behind.
func (w *Watcher) pollProvider(ctx context.Context, key string, adapter adapters.Adapter) {
	start := time.Now()

	items, err := adapter.FetchLatest(ctx, w.cfg.FetchLimit)
	if err != nil {
		log.Printf("watcher: %s poll failed: %v", key, err)
		recordPoll(key, "error", time.Since(start))
		w.recordFailure(key, err)
		return
	}

	cache := w.caches[key]
	batch := make(map[string]bool)
	var fresh []types.Incident
	var freshKeys []string

	for _, item := range items {
		incidents, err := adapter.Extract(ctx, item)
		if err != nil {
			// Programmer-level misuse; drop the item, keep the cycle.
			log.Printf("watcher: %s dropped item %q: %v", key, item.ID, err)
			continue
		}
		for _, inc := range incidents {
			k := inc.DedupeKey()
			if cache.Contains(k) || batch[k] {
				continue
			}
			batch[k] = true
			fresh = append(fresh, inc)
			freshKeys = append(freshKeys, k)
		}
	}

	if ctx.Err() != nil {
		// Abandoned mid-cycle: do not commit.
		recordPoll(key, "cancelled", time.Since(start))
		return
	}

	cache.Add(freshKeys...)
	for _, inc := range fresh {
		w.sink.Emit(inc)
	}

	recordPoll(key, "ok", time.Since(start))
	recordEmitted(key, len(fresh))
	w.recordSuccess(key, len(fresh))
}

func (w *Watcher) recordFailure(key string, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	st := w.statuses[key]
	st.LastPolled = time.Now()
	st.LastError = err.Error()
	st.ErrorCount++
}

func (w *Watcher) recordSuccess(key string, emitted int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	st := w.statuses[key]
	st.LastPolled = time.Now()
	st.LastError = ""
	st.Emitted += emitted
}

// Status snapshots per-provider polling state in registration order.
func (w *Watcher) Status() []ProviderStatus {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]ProviderStatus, 0, len(w.statuses))
	for _, reg := range w.registry.List() {
		out = append(out, *w.statuses[reg.Key])
	}
	return out
}
