package lingua

import (
	"context"
	"sync"
)

// WatchOption configures a GroupWatch.
type WatchOption func(*GroupWatch)

// WithLazy disables the eager load on creation and on locale change.
// A lazy watch only loads when Reload is called.
func WithLazy() WatchOption {
	return func(w *GroupWatch) {
		w.eager = false
	}
}

// WithOnError sets a callback invoked with every load failure observed by
// the watch, including failures of background re-loads after a locale
// change.
func WithOnError(fn func(error)) WatchOption {
	return func(w *GroupWatch) {
		w.onError = fn
	}
}

// GroupWatch declares a set of groups a consumer needs and keeps them loaded
// across locale changes. By default the declared groups are loaded eagerly
// when the watch is created and re-loaded whenever the store's locale
// changes. Load failures never propagate out of the watch; they are exposed
// via Err and the optional error callback.
type GroupWatch struct {
	store   *Store
	ctx     context.Context
	names   []string
	onError func(error)
	eager   bool
	id      int

	mu     sync.Mutex
	err    error
	closed bool
}

// Watch registers a group watch on the store. ctx bounds the watch's
// background loads; cancel it or call Close when the consumer goes away.
// Duplicate and empty names are dropped.
func (s *Store) Watch(ctx context.Context, names []string, opts ...WatchOption) *GroupWatch {
	w := &GroupWatch{
		store: s,
		ctx:   ctx,
		names: dedupNames(names),
		eager: true,
	}
	for _, opt := range opts {
		opt(w)
	}

	s.mu.Lock()
	w.id = s.nextID
	s.nextID++
	s.watchers[w.id] = w
	s.mu.Unlock()

	if w.eager {
		go w.load()
	}
	return w
}

// Names returns the watched group names.
func (w *GroupWatch) Names() []string {
	names := make([]string, len(w.names))
	copy(names, w.names)
	return names
}

// Loading reports whether any watched group has a fetch in flight.
func (w *GroupWatch) Loading() bool {
	for _, name := range w.names {
		if w.store.IsGroupLoading(name) {
			return true
		}
	}
	return false
}

// Loaded reports whether every watched group is loaded.
func (w *GroupWatch) Loaded() bool {
	for _, name := range w.names {
		if !w.store.IsGroupLoaded(name) {
			return false
		}
	}
	return true
}

// Err returns the last load failure. It is cleared at the start of every
// new attempt, so after a successful retry it is nil.
func (w *GroupWatch) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// Reload force-refreshes the watched groups, bypassing the loaded-set
// dedup so fresh data is fetched even for groups that are already loaded.
func (w *GroupWatch) Reload(ctx context.Context) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatchClosed
	}
	w.err = nil
	w.mu.Unlock()

	err := w.store.ReloadGroups(ctx, w.names...)
	w.record(err)
	return err
}

// Close unsubscribes the watch from locale-change notifications. In-flight
// loads are not cancelled; their results still merge into the store.
func (w *GroupWatch) Close() {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()

	w.store.mu.Lock()
	delete(w.store.watchers, w.id)
	w.store.mu.Unlock()
}

// localeChanged is invoked by the store after a locale reset.
func (w *GroupWatch) localeChanged() {
	w.mu.Lock()
	if w.closed || !w.eager {
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()

	go w.load()
}

func (w *GroupWatch) load() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.err = nil
	w.mu.Unlock()

	w.record(w.store.LoadGroups(w.ctx, w.names...))
}

func (w *GroupWatch) record(err error) {
	if err == nil {
		return
	}
	w.mu.Lock()
	w.err = err
	onError := w.onError
	w.mu.Unlock()

	if onError != nil {
		onError(err)
	}
}

func dedupNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
