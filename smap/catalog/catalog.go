package catalog

import (
	"cmp"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/slicemap/smap/table"

	"github.com/armon/go-radix"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrNameEmpty         = errors.New("table name cannot be empty")
	ErrAlreadyRegistered = errors.New("table already registered")
	ErrNotFound          = errors.New("table not found")
)

// Info describes a registered table.
type Info struct {
	ID           uuid.UUID
	Name         string
	Entries      int
	Orientation  table.Orientation
	RegisteredAt time.Time
	Stats        table.Stats
}

// registered pairs a table with the lock that serializes its queries.
type registered[A, B cmp.Ordered, V any] struct {
	id           uuid.UUID
	name         string
	registeredAt time.Time

	mu    sync.Mutex
	table *table.Table[A, B, V]
}

func (r *registered[A, B, V]) info() Info {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Info{
		ID:           r.id,
		Name:         r.name,
		Entries:      r.table.Len(),
		Orientation:  r.table.Orientation(),
		RegisteredAt: r.registeredAt,
		Stats:        r.table.Stats(),
	}
}

// Catalog is a named registry of tables that is safe for concurrent use.
// Names are slash-separated ("demand", "capacity/plant-1") and listed by
// prefix through a radix tree. Queries on the same table are serialized
// because a slice may flip the table; different tables are queried in
// parallel.
type Catalog[A, B cmp.Ordered, V any] struct {
	mu     sync.RWMutex
	tree   *radix.Tree
	logger zerolog.Logger
	opts   []table.Option
}

// Option configures a Catalog.
type Option func(*settings)

type settings struct {
	logger    zerolog.Logger
	tableOpts []table.Option
}

// WithLogger attaches a logger to the catalog and to the tables it builds.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithTableOptions sets build options applied before the per-call ones in
// Register.
func WithTableOptions(opts ...table.Option) Option {
	return func(s *settings) {
		s.tableOpts = append(s.tableOpts, opts...)
	}
}

// New creates an empty catalog.
func New[A, B cmp.Ordered, V any](opts ...Option) *Catalog[A, B, V] {
	s := settings{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&s)
	}
	tableOpts := append([]table.Option{table.WithLogger(s.logger)}, s.tableOpts...)
	return &Catalog[A, B, V]{
		tree:   radix.New(),
		logger: s.logger,
		opts:   tableOpts,
	}
}

// Register builds a table from entries under name and returns its id.
func (c *Catalog[A, B, V]) Register(name string, entries []table.Entry[A, B, V], opts ...table.Option) (uuid.UUID, error) {
	key, err := normalizeName(name)
	if err != nil {
		return uuid.Nil, err
	}

	c.mu.RLock()
	_, exists := c.tree.Get(key)
	c.mu.RUnlock()
	if exists {
		return uuid.Nil, fmt.Errorf("%w: %s", ErrAlreadyRegistered, key)
	}

	// Build outside the catalog lock; it is the expensive part.
	all := append(append([]table.Option{}, c.opts...), opts...)
	tbl, err := table.Build(entries, all...)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to build table %s: %w", key, err)
	}

	r := &registered[A, B, V]{
		id:           uuid.New(),
		name:         key,
		registeredAt: time.Now(),
		table:        tbl,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.tree.Get(key); exists {
		return uuid.Nil, fmt.Errorf("%w: %s", ErrAlreadyRegistered, key)
	}
	c.tree.Insert(key, r)

	c.logger.Debug().
		Str("name", key).
		Str("id", r.id.String()).
		Int("entries", tbl.Len()).
		Msg("Table registered")

	return r.id, nil
}

func (c *Catalog[A, B, V]) get(name string) (*registered[A, B, V], error) {
	key, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, found := c.tree.Get(key)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return v.(*registered[A, B, V]), nil
}

// Lookup returns the description of a registered table.
func (c *Catalog[A, B, V]) Lookup(name string) (Info, bool) {
	r, err := c.get(name)
	if err != nil {
		return Info{}, false
	}
	return r.info(), true
}

// SliceOnA slices the named table on a.
func (c *Catalog[A, B, V]) SliceOnA(name string, a A) ([]table.Pair[B, V], error) {
	r, err := c.get(name)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.table.SliceOnA(a), nil
}

// SliceOnB slices the named table on b.
func (c *Catalog[A, B, V]) SliceOnB(name string, b B) ([]table.Pair[A, V], error) {
	r, err := c.get(name)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.table.SliceOnB(b), nil
}

// With runs fn with exclusive access to the named table, for queries the
// catalog does not wrap (filters, sums, batches). fn must not keep the table.
func (c *Catalog[A, B, V]) With(name string, fn func(*table.Table[A, B, V]) error) error {
	r, err := c.get(name)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.table)
}

// List returns the tables whose names start with prefix, in name order.
// An empty prefix lists everything.
func (c *Catalog[A, B, V]) List(prefix string) []Info {
	prefix = strings.TrimSpace(prefix)
	if prefix != "" {
		prefix = path.Clean(strings.ReplaceAll(prefix, "\\", "/"))
		prefix = strings.TrimPrefix(prefix, "/")
	}

	c.mu.RLock()
	var regs []*registered[A, B, V]
	c.tree.WalkPrefix(prefix, func(key string, value interface{}) bool {
		if r, ok := value.(*registered[A, B, V]); ok {
			regs = append(regs, r)
		}
		return false
	})
	c.mu.RUnlock()

	out := make([]Info, 0, len(regs))
	for _, r := range regs {
		out = append(out, r.info())
	}
	return out
}

// Remove drops the named table. It reports whether the name was registered.
func (c *Catalog[A, B, V]) Remove(name string) bool {
	key, err := normalizeName(name)
	if err != nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_, deleted := c.tree.Delete(key)

	c.logger.Debug().Str("name", key).Bool("was_deleted", deleted).Msg("Table removal completed")
	return deleted
}

// Len returns the number of registered tables.
func (c *Catalog[A, B, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tree.Len()
}

// Validate runs table.Validate on every registered table and prefixes each
// error with the table name.
func (c *Catalog[A, B, V]) Validate() []error {
	c.mu.RLock()
	var regs []*registered[A, B, V]
	c.tree.Walk(func(key string, value interface{}) bool {
		if r, ok := value.(*registered[A, B, V]); ok {
			regs = append(regs, r)
		}
		return false
	})
	c.mu.RUnlock()

	var errs []error
	for _, r := range regs {
		r.mu.Lock()
		for _, err := range r.table.Validate() {
			errs = append(errs, fmt.Errorf("%s: %w", r.name, err))
		}
		r.mu.Unlock()
	}

	if len(errs) > 0 {
		c.logger.Warn().Int("error_count", len(errs)).Msg("Catalog validation found issues")
	} else {
		c.logger.Debug().Int("tables", len(regs)).Msg("Catalog validation passed")
	}
	return errs
}

// normalizeName cleans a table name into its radix key: forward slashes, no
// leading or trailing slash, no "." or ".." elements.
func normalizeName(name string) (string, error) {
	n := strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
	if n == "" {
		return "", ErrNameEmpty
	}
	n = strings.Trim(path.Clean("/"+n), "/")
	if n == "" {
		return "", ErrNameEmpty
	}
	return n, nil
}
