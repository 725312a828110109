package resolver

import "sync/atomic"

// Resolver maps a source fragment to its translation.
type Resolver interface {
	Resolve(fragment string) string
}

// Func adapts a plain function to the Resolver interface.
type Func func(fragment string) string

func (f Func) Resolve(fragment string) string { return f(fragment) }

// Identity returns every fragment unchanged.
var Identity Resolver = Func(func(fragment string) string { return fragment })

// Lookup is a translation source that may not know a fragment.
type Lookup interface {
	Lookup(fragment string) (string, bool)
}

// LookupFunc adapts a plain function to the Lookup interface.
type LookupFunc func(fragment string) (string, bool)

func (f LookupFunc) Lookup(fragment string) (string, bool) { return f(fragment) }

// Chain returns a Resolver that asks each lookup in order and falls back to
// the fragment itself when none of them knows it.
func Chain(lookups ...Lookup) Resolver {
	return Func(func(fragment string) string {
		for _, l := range lookups {
			if l == nil {
				continue
			}
			if translated, ok := l.Lookup(fragment); ok {
				return translated
			}
		}
		return fragment
	})
}

// Counter wraps a Resolver and counts how often it is invoked and how often
// the result differs from the input.
type Counter struct {
	next    Resolver
	calls   atomic.Int64
	changed atomic.Int64
}

// NewCounter wraps next. A nil next behaves like Identity.
func NewCounter(next Resolver) *Counter {
	if next == nil {
		next = Identity
	}
	return &Counter{next: next}
}

func (c *Counter) Resolve(fragment string) string {
	c.calls.Add(1)
	out := c.next.Resolve(fragment)
	if out != fragment {
		c.changed.Add(1)
	}
	return out
}

// Calls returns the number of Resolve invocations.
func (c *Counter) Calls() int { return int(c.calls.Load()) }

// Changed returns the number of invocations that returned a different string.
func (c *Counter) Changed() int { return int(c.changed.Load()) }
