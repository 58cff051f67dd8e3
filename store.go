package lingua

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/tooinfinity/lingua-go/logger"
)

// Fetcher retrieves translation groups from a Lingua server. Implementations
// are stateless; the Store owns all caching and deduplication.
// *client.Client satisfies this interface.
type Fetcher interface {
	FetchGroups(ctx context.Context, names []string) (GroupsResult, error)
}

// GroupCache is an optional per-group translation cache consulted before the
// network. Keys are produced by CacheKey. *groupcache.Memory and
// *groupcache.Redis satisfy this interface.
type GroupCache interface {
	Get(ctx context.Context, key string) (Table, error)
	Set(ctx context.Context, key string, table Table, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// CacheKey builds the group-cache key for a locale and group name.
func CacheKey(locale, group string) string {
	return locale + ":" + group
}

// fetchOp represents one in-flight batched fetch. Multiple group names may
// share the same op when they were requested together. err is written before
// done is closed, so waiters may read it after the channel settles.
type fetchOp struct {
	done chan struct{}
	err  error
}

func (op *fetchOp) wait(ctx context.Context) error {
	select {
	case <-op.done:
		return op.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Store owns the merged translation table and the lazy group-loading state
// for one locale-aware context. It deduplicates concurrent requests for the
// same group, batches distinct groups requested together into a single
// fetch, and resets to the initial snapshot when the active locale changes.
//
// All state is guarded by a single mutex; fetches happen outside the lock,
// so Store methods never block on the network while holding it.
type Store struct {
	fetcher  Fetcher
	cache    GroupCache
	cacheTTL time.Duration
	log      *slog.Logger

	mu      sync.RWMutex
	locale  string
	epoch   uint64
	table   Table
	loaded  map[string]struct{}
	loading map[string]struct{}
	pending map[string]*fetchOp

	initialTable  Table
	initialGroups []string
	locales       []string
	direction     Direction
	isRTL         bool

	watchers map[int]*GroupWatch
	nextID   int
}

// Option configures the Store during construction.
type Option func(*Store) error

// WithLogger sets the logger used for fetch and invalidation events.
// Defaults to a no-op logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) error {
		if log == nil {
			return ErrNilLogger
		}
		s.log = log
		return nil
	}
}

// WithGroupCache enables a read-through group cache. Cache hits merge
// without a network request; successful fetches populate the cache
// best-effort.
func WithGroupCache(cache GroupCache) Option {
	return func(s *Store) error {
		if cache == nil {
			return ErrNilGroupCache
		}
		s.cache = cache
		return nil
	}
}

// WithCacheTTL sets the TTL passed to the group cache on writes.
// Zero (the default) defers to the cache backend's default TTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Store) error {
		s.cacheTTL = ttl
		return nil
	}
}

// New creates a Store from the host's initial snapshot. The snapshot's
// groups are pre-seeded as loaded; its table is retained so a locale change
// can reset to it.
func New(snapshot Snapshot, fetcher Fetcher, opts ...Option) (*Store, error) {
	if snapshot.Locale == "" {
		return nil, ErrEmptyLocale
	}
	if fetcher == nil {
		return nil, ErrNilFetcher
	}

	snapshot.normalize()

	s := &Store{
		fetcher:       fetcher,
		log:           logger.NewNope(),
		locale:        snapshot.Locale,
		table:         copyTable(snapshot.Translations),
		loaded:        make(map[string]struct{}, len(snapshot.Translations)),
		loading:       make(map[string]struct{}),
		pending:       make(map[string]*fetchOp),
		initialTable:  copyTable(snapshot.Translations),
		initialGroups: snapshot.Groups(),
		locales:       slices.Clone(snapshot.Locales),
		direction:     snapshot.Direction,
		isRTL:         snapshot.IsRTL,
		watchers:      make(map[int]*GroupWatch),
	}

	for _, group := range s.initialGroups {
		s.loaded[group] = struct{}{}
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// LoadGroups fetches the named translation groups that are not yet loaded or
// in flight and merges them into the table. Names already loaded are
// skipped; names already in flight are joined onto the existing operation
// instead of issuing a duplicate request. All fresh names go out in exactly
// one batched fetch.
//
// The call returns once every requested group has settled, one way or
// another. On failure the affected names remain unloaded, so a later call
// retries them; the error propagates to this caller and to every joined
// caller.
func (s *Store) LoadGroups(ctx context.Context, names ...string) error {
	s.mu.Lock()

	var fresh []string
	var join []*fetchOp
	joined := make(map[*fetchOp]struct{})
	seen := make(map[string]struct{}, len(names))

	for _, name := range names {
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		if _, ok := s.loaded[name]; ok {
			continue
		}
		// The pending map is the single source of truth for in-flight work:
		// a name registered there is joined, never re-fetched.
		if op, ok := s.pending[name]; ok {
			if _, ok := joined[op]; !ok {
				joined[op] = struct{}{}
				join = append(join, op)
			}
			continue
		}
		fresh = append(fresh, name)
	}

	if len(fresh) == 0 {
		s.mu.Unlock()
		return waitAll(ctx, join)
	}

	op := &fetchOp{done: make(chan struct{})}
	for _, name := range fresh {
		s.loading[name] = struct{}{}
		s.pending[name] = op
	}
	epoch := s.epoch
	locale := s.locale
	s.mu.Unlock()

	err := s.fetch(ctx, locale, epoch, fresh, op)
	if joinErr := waitAll(ctx, join); joinErr != nil {
		err = errors.Join(err, joinErr)
	}
	return err
}

// fetch performs the batched retrieval for fresh names and settles op.
// It runs outside the store lock; the merge at the end is guarded by an
// epoch check so a fetch that outlives a locale change is discarded.
func (s *Store) fetch(ctx context.Context, locale string, epoch uint64, fresh []string, op *fetchOp) error {
	merged := make(map[string]Table, len(fresh))
	need := fresh

	if s.cache != nil {
		need = make([]string, 0, len(fresh))
		for _, name := range fresh {
			if table, err := s.cache.Get(ctx, CacheKey(locale, name)); err == nil {
				merged[name] = table
				continue
			}
			need = append(need, name)
		}
	}

	var fetchErr error
	if len(need) > 0 {
		s.log.DebugContext(ctx, "fetching translation groups",
			slog.String("locale", locale), slog.Any("groups", need))

		result, err := s.fetcher.FetchGroups(ctx, need)
		if err != nil {
			fetchErr = err
			s.log.ErrorContext(ctx, "translation group fetch failed",
				slog.String("locale", locale), slog.Any("groups", need),
				slog.String("error", err.Error()))
		} else {
			for _, name := range need {
				table := result.Translations[name]
				if table == nil {
					table = Table{}
				}
				merged[name] = table
				if s.cache != nil {
					_ = s.cache.Set(ctx, CacheKey(locale, name), table, s.cacheTTL)
				}
			}
		}
	}

	s.mu.Lock()
	if s.epoch == epoch {
		for name, table := range merged {
			s.table[name] = map[string]any(table)
			s.loaded[name] = struct{}{}
		}
		for _, name := range fresh {
			delete(s.loading, name)
			delete(s.pending, name)
		}
	} else {
		// The locale changed while the fetch was in flight; the reset already
		// cleared loading/pending, so the result is simply dropped.
		s.log.DebugContext(ctx, "discarding stale translation fetch",
			slog.String("locale", locale), slog.Any("groups", fresh))
	}
	s.mu.Unlock()

	op.err = fetchErr
	close(op.done)

	return fetchErr
}

func waitAll(ctx context.Context, ops []*fetchOp) error {
	var errs []error
	for _, op := range ops {
		if err := op.wait(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ReloadGroups force-refreshes the named groups: already-loaded names are
// evicted from the loaded set (and the group cache) before delegating to
// LoadGroups. Names currently in flight are not evicted; ReloadGroups joins
// their existing operation like any other caller.
func (s *Store) ReloadGroups(ctx context.Context, names ...string) error {
	s.mu.Lock()
	locale := s.locale
	var evicted []string
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, inFlight := s.pending[name]; inFlight {
			continue
		}
		if _, ok := s.loaded[name]; ok {
			delete(s.loaded, name)
			evicted = append(evicted, name)
		}
	}
	s.mu.Unlock()

	if s.cache != nil {
		for _, name := range evicted {
			_ = s.cache.Delete(ctx, CacheKey(locale, name))
		}
	}

	return s.LoadGroups(ctx, names...)
}

// SetLocale reacts to a change of the externally observed active locale.
// The table and loaded set reset to the initial snapshot, lazily loaded
// content is discarded, and in-flight fetches are detached rather than
// cancelled: when they later settle, the epoch guard drops their results.
// Watches are notified so eager ones re-load their groups.
func (s *Store) SetLocale(locale string) error {
	if locale == "" {
		return ErrEmptyLocale
	}

	s.mu.Lock()
	if locale == s.locale {
		s.mu.Unlock()
		return nil
	}

	previous := s.locale
	s.locale = locale
	s.epoch++
	s.table = copyTable(s.initialTable)
	s.loaded = make(map[string]struct{}, len(s.initialGroups))
	for _, group := range s.initialGroups {
		s.loaded[group] = struct{}{}
	}
	s.loading = make(map[string]struct{})
	s.pending = make(map[string]*fetchOp)

	watchers := make([]*GroupWatch, 0, len(s.watchers))
	for _, w := range s.watchers {
		watchers = append(watchers, w)
	}
	s.mu.Unlock()

	s.log.Debug("locale changed",
		slog.String("from", previous), slog.String("to", locale))

	for _, w := range watchers {
		w.localeChanged()
	}
	return nil
}

// IsGroupLoaded reports whether a group has been successfully merged.
func (s *Store) IsGroupLoaded(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.loaded[name]
	return ok
}

// IsGroupLoading reports whether a fetch for the group is in flight.
func (s *Store) IsGroupLoading(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.loading[name]
	return ok
}

// T resolves a dot-segmented key against the current table.
// See Resolve for lookup and placeholder semantics.
func (s *Store) T(key string, replacements ...M) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Resolve(s.table, key, replacements...)
}

// Locale returns the active locale.
func (s *Store) Locale() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.locale
}

// Locales returns the available locales from the initial snapshot.
func (s *Store) Locales() []string {
	return slices.Clone(s.locales)
}

// Direction returns the text direction from the initial snapshot.
func (s *Store) Direction() Direction {
	return s.direction
}

// IsRTL reports whether the initial snapshot declared a right-to-left locale.
func (s *Store) IsRTL() bool {
	return s.isRTL
}

// LoadedGroups returns the sorted names of all loaded groups.
func (s *Store) LoadedGroups() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	groups := make([]string, 0, len(s.loaded))
	for name := range s.loaded {
		groups = append(groups, name)
	}
	slices.Sort(groups)
	return groups
}

// Table returns a deep copy of the current translation table.
func (s *Store) Table() Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyTable(s.table)
}
