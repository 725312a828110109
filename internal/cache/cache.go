package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"mwfilter/internal/resolver"
	"mwfilter/internal/textutil"

	"github.com/rs/zerolog/log"
)

// ErrNotFound is returned by a Store when no translation exists for a hash.
var ErrNotFound = errors.New("translation not found")

// Entry is one row of the translation memory.
type Entry struct {
	Hash       string `db:"hash"`
	Source     string `db:"source"`
	Translated string `db:"translated"`
}

// Store is a read-only view of the host's translation memory.
type Store interface {
	Get(ctx context.Context, hash string) (string, error)
	List(ctx context.Context) ([]Entry, error)
}

// TranslationCache layers an in-memory map over a translation memory Store.
type TranslationCache struct {
	store  Store
	mu     sync.RWMutex
	memory map[string]string // hash → translated text
	misses map[string]struct{}
}

// NewTranslationCache creates a cache over store.
func NewTranslationCache(store Store) *TranslationCache {
	return &TranslationCache{
		store:  store,
		memory: make(map[string]string),
		misses: make(map[string]struct{}),
	}
}

// Get retrieves a cached translation. Returns empty string and false if not found.
func (c *TranslationCache) Get(ctx context.Context, sourceText string) (string, bool) {
	hash := textutil.Hash(sourceText)

	// Check in-memory cache first.
	c.mu.RLock()
	if v, ok := c.memory[hash]; ok {
		c.mu.RUnlock()
		return v, true
	}
	_, missed := c.misses[hash]
	c.mu.RUnlock()

	if missed {
		return "", false
	}

	translated, err := c.store.Get(ctx, hash)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Warn().Err(err).Str("text", textutil.Truncate(sourceText, 30)).Msg("Translation memory lookup failed")
			return "", false
		}
		c.mu.Lock()
		c.misses[hash] = struct{}{}
		c.mu.Unlock()
		return "", false
	}

	// Populate in-memory cache.
	c.mu.Lock()
	c.memory[hash] = translated
	c.mu.Unlock()

	return translated, true
}

// Preload loads all stored translations into memory.
func (c *TranslationCache) Preload(ctx context.Context) error {
	rows, err := c.store.List(ctx)
	if err != nil {
		return fmt.Errorf("preload cache: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, row := range rows {
		c.memory[row.Hash] = row.Translated
	}

	log.Info().Int("count", len(rows)).Msg("Preloaded translation cache")
	return nil
}

// Len returns the number of translations held in memory.
func (c *TranslationCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.memory)
}

// Lookup binds ctx so the cache can serve as a resolver lookup.
func (c *TranslationCache) Lookup(ctx context.Context) resolver.Lookup {
	return resolver.LookupFunc(func(fragment string) (string, bool) {
		return c.Get(ctx, fragment)
	})
}
