package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestStoreLoadsOnce(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	source := SourceFunc(func(context.Context) ([]Product, error) {
		calls.Add(1)
		return sampleProducts(), nil
	})

	store := NewStore(zap.NewNop())
	require.True(t, store.Snapshot().Loading)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Load(context.Background(), source)
		}()
	}
	wg.Wait()

	require.EqualValues(t, 1, calls.Load())
	snap := store.Snapshot()
	require.False(t, snap.Loading)
	require.True(t, snap.Loaded)
	require.NoError(t, snap.Err)
	require.Empty(t, snap.ErrorMessage())
	require.Equal(t, ids(sampleProducts()), ids(snap.Products))
	require.False(t, snap.LoadedAt.IsZero())
}

func TestStoreFailedLoadLeavesEmptyCatalog(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.ErrorLevel)
	store := NewStore(zap.New(core))
	boom := errors.New("connection refused")

	store.Load(context.Background(), SourceFunc(func(context.Context) ([]Product, error) {
		return nil, boom
	}))

	snap := store.Snapshot()
	require.True(t, snap.Loaded)
	require.NotNil(t, snap.Products)
	require.Empty(t, snap.Products)
	require.ErrorIs(t, snap.Err, boom)
	require.Equal(t, LoadErrorMessage, snap.ErrorMessage())
	require.Equal(t, 1, logs.FilterMessage("catalog load failed").Len())

	view := NewSession(snap.Products, DefaultState()).View()
	require.True(t, view.Empty())
}

func TestStoreLoadingIndicator(t *testing.T) {
	t.Parallel()

	store := NewLoadedStore(sampleProducts())
	require.False(t, store.Snapshot().Loading)

	store.SetLoading(true)
	require.True(t, store.Snapshot().Loading)
	store.SetLoading(false)
	require.False(t, store.Snapshot().Loading)

	// already loaded stores never fetch
	store.Load(context.Background(), SourceFunc(func(context.Context) ([]Product, error) {
		t.Fatal("unexpected fetch")
		return nil, nil
	}))
	require.Len(t, store.Snapshot().Products, 6)
}
