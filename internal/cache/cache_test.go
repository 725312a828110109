package cache_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"mwfilter/internal/cache"
	"mwfilter/internal/resolver"
	"mwfilter/internal/textutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu      sync.Mutex
	rows    map[string]cache.Entry
	getErr  error
	listErr error
	gets    int
}

func newFakeStore(pairs map[string]string) *fakeStore {
	s := &fakeStore{rows: make(map[string]cache.Entry)}
	for source, translated := range pairs {
		hash := textutil.Hash(source)
		s.rows[hash] = cache.Entry{Hash: hash, Source: source, Translated: translated}
	}
	return s
}

func (s *fakeStore) Get(_ context.Context, hash string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	if s.getErr != nil {
		return "", s.getErr
	}
	e, ok := s.rows[hash]
	if !ok {
		return "", cache.ErrNotFound
	}
	return e.Translated, nil
}

func (s *fakeStore) List(context.Context) ([]cache.Entry, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]cache.Entry, 0, len(s.rows))
	for _, e := range s.rows {
		out = append(out, e)
	}
	return out, nil
}

func (s *fakeStore) getCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gets
}

func TestTranslationCache_Get(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("hit is cached in memory", func(t *testing.T) {
		t.Parallel()

		store := newFakeStore(map[string]string{"Yes": "Ja"})
		c := cache.NewTranslationCache(store)

		for i := 0; i < 3; i++ {
			got, ok := c.Get(ctx, "Yes")
			require.True(t, ok)
			assert.Equal(t, "Ja", got)
		}
		assert.Equal(t, 1, store.getCount())
		assert.Equal(t, 1, c.Len())
	})

	t.Run("miss is remembered", func(t *testing.T) {
		t.Parallel()

		store := newFakeStore(nil)
		c := cache.NewTranslationCache(store)

		_, ok := c.Get(ctx, "Unknown")
		assert.False(t, ok)
		_, ok = c.Get(ctx, "Unknown")
		assert.False(t, ok)

		assert.Equal(t, 1, store.getCount())
	})

	t.Run("store failure is not remembered", func(t *testing.T) {
		t.Parallel()

		store := newFakeStore(nil)
		store.getErr = errors.New("connection reset")
		c := cache.NewTranslationCache(store)

		_, ok := c.Get(ctx, "Yes")
		assert.False(t, ok)
		_, ok = c.Get(ctx, "Yes")
		assert.False(t, ok)

		assert.Equal(t, 2, store.getCount())
	})
}

func TestTranslationCache_Preload(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("loads every row", func(t *testing.T) {
		t.Parallel()

		store := newFakeStore(map[string]string{"Yes": "Ja", "No": "Nein"})
		c := cache.NewTranslationCache(store)

		require.NoError(t, c.Preload(ctx))
		assert.Equal(t, 2, c.Len())

		got, ok := c.Get(ctx, "No")
		assert.True(t, ok)
		assert.Equal(t, "Nein", got)
		assert.Zero(t, store.getCount())
	})

	t.Run("wraps store error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("permission denied")
		store := newFakeStore(nil)
		store.listErr = boom

		err := cache.NewTranslationCache(store).Preload(ctx)

		assert.ErrorIs(t, err, boom)
		assert.ErrorContains(t, err, "preload cache")
	})
}

func TestTranslationCache_Lookup(t *testing.T) {
	t.Parallel()

	store := newFakeStore(map[string]string{"Welcome.": "Willkommen."})
	c := cache.NewTranslationCache(store)

	r := resolver.Chain(resolver.Glossary{"Yes": "Ja"}, c.Lookup(context.Background()))

	assert.Equal(t, "Ja", r.Resolve("Yes"))
	assert.Equal(t, "Willkommen.", r.Resolve("Welcome."))
	assert.Equal(t, "Other", r.Resolve("Other"))
}
