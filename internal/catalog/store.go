package catalog

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// LoadErrorMessage is the user-facing message shown when the catalog could not be fetched.
const LoadErrorMessage = "Unable to load products. Please try again later."

// Source provides the full product collection.
type Source interface {
	FetchAll(ctx context.Context) ([]Product, error)
}

// SourceFunc adapts ordinary functions to Source.
type SourceFunc func(context.Context) ([]Product, error)

// FetchAll calls f.
func (f SourceFunc) FetchAll(ctx context.Context) ([]Product, error) {
	return f(ctx)
}

// Snapshot is a point-in-time view of the store.
type Snapshot struct {
	Products []Product
	Loading  bool
	Loaded   bool
	Err      error
	LoadedAt time.Time
}

// ErrorMessage returns the user-facing error text, empty when the load succeeded.
func (s Snapshot) ErrorMessage() string {
	if s.Err == nil {
		return ""
	}
	return LoadErrorMessage
}

// Store holds the catalog fetched once at startup. The collection is never modified after
// the load completes, so snapshots can be shared between concurrent readers.
type Store struct {
	logger *zap.Logger
	once   sync.Once

	mu       sync.RWMutex
	products []Product
	loading  bool
	loaded   bool
	err      error
	loadedAt time.Time
}

// NewStore returns an empty store.
func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{logger: logger}
}

// NewLoadedStore returns a store already holding products.
func NewLoadedStore(products []Product) *Store {
	s := NewStore(nil)
	s.once.Do(func() {})
	s.products = products
	s.loaded = true
	s.loadedAt = time.Now()
	return s
}

// SetLoading toggles the loading indicator.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
}

// Load fetches the catalog from source. Only the first call fetches; later calls return
// immediately. A failed fetch leaves an empty catalog and records the error.
func (s *Store) Load(ctx context.Context, source Source) {
	s.once.Do(func() {
		products, err := source.FetchAll(ctx)
		if err != nil {
			s.logger.Error("catalog load failed", zap.Error(err))
			products = []Product{}
		} else {
			s.logger.Info("catalog loaded", zap.Int("products", len(products)))
		}

		s.mu.Lock()
		s.products = products
		s.err = err
		s.loaded = true
		s.loadedAt = time.Now()
		s.mu.Unlock()
	})
}

// Snapshot returns the current store contents.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Products: s.products,
		Loading:  s.loading || !s.loaded,
		Loaded:   s.loaded,
		Err:      s.err,
		LoadedAt: s.loadedAt,
	}
}
