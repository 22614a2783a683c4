package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillmatch/internal/types"
)

// fakeClock is a settable time source for TTL tests.
type fakeClock struct {
	current time.Time
}

func (f *fakeClock) now() time.Time { return f.current }

func (f *fakeClock) advance(d time.Duration) { f.current = f.current.Add(d) }

func newFakeClock() *fakeClock { return &fakeClock{current: time.Unix(1700000000, 0)} }

func resultsFor(jobID string, score float64) []types.MatchResult {
	return []types.MatchResult{{JobID: jobID, OverallScore: score}}
}

func TestCache_PutThenGet(t *testing.T) {
	c := New()
	key := NewKey("p1", "hash-a", []string{"j1", "j2"}, "v1")
	want := resultsFor("j1", 87.5)

	c.Put(key, want, time.Minute)

	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestCache_MissOnUnknownKey(t *testing.T) {
	c := New()

	_, ok := c.Get(NewKey("p1", "hash-a", []string{"j1"}, "v1"))
	assert.False(t, ok)
	assert.Equal(t, 1, c.Stats().Misses)
}

func TestCache_TTLExpiry(t *testing.T) {
	clock := newFakeClock()
	c := New(WithClock(clock.now))
	key := NewKey("p1", "hash-a", []string{"j1"}, "v1")

	c.Put(key, resultsFor("j1", 50), 10*time.Minute)

	clock.advance(9 * time.Minute)
	_, ok := c.Get(key)
	assert.True(t, ok, "entry should still be fresh")

	clock.advance(2 * time.Minute)
	_, ok = c.Get(key)
	assert.False(t, ok, "entry should have expired")

	// Lazy eviction removed it.
	assert.Equal(t, 0, c.Len())
}

func TestCache_LRUEviction(t *testing.T) {
	clock := newFakeClock()
	c := New(WithMaxSize(2), WithClock(clock.now))

	keyA := NewKey("p1", "hash-a", []string{"j1"}, "v1")
	keyB := NewKey("p2", "hash-b", []string{"j1"}, "v1")
	keyC := NewKey("p3", "hash-c", []string{"j1"}, "v1")

	c.Put(keyA, resultsFor("j1", 10), time.Hour)
	clock.advance(time.Second)
	c.Put(keyB, resultsFor("j1", 20), time.Hour)
	clock.advance(time.Second)

	// Touch A so B becomes least recently used.
	_, ok := c.Get(keyA)
	require.True(t, ok)
	clock.advance(time.Second)

	c.Put(keyC, resultsFor("j1", 30), time.Hour)

	_, ok = c.Get(keyB)
	assert.False(t, ok, "least recently used entry should be evicted")
	_, ok = c.Get(keyA)
	assert.True(t, ok)
	_, ok = c.Get(keyC)
	assert.True(t, ok)

	assert.Equal(t, 1, c.Stats().Evictions)
}

func TestCache_OverwriteDoesNotEvict(t *testing.T) {
	c := New(WithMaxSize(2))
	keyA := NewKey("p1", "hash-a", []string{"j1"}, "v1")
	keyB := NewKey("p2", "hash-b", []string{"j1"}, "v1")

	c.Put(keyA, resultsFor("j1", 10), time.Hour)
	c.Put(keyB, resultsFor("j1", 20), time.Hour)
	c.Put(keyA, resultsFor("j1", 15), time.Hour) // overwrite at capacity

	assert.Equal(t, 2, c.Len())
	got, ok := c.Get(keyA)
	require.True(t, ok)
	assert.Equal(t, 15.0, got[0].OverallScore)
}

func TestCache_InvalidateByProfile(t *testing.T) {
	c := New()

	// Two revisions of p1 plus an unrelated profile.
	c.Put(NewKey("p1", "hash-old", []string{"j1"}, "v1"), resultsFor("j1", 10), time.Hour)
	c.Put(NewKey("p1", "hash-new", []string{"j1"}, "v1"), resultsFor("j1", 20), time.Hour)
	c.Put(NewKey("p2", "hash-x", []string{"j1"}, "v1"), resultsFor("j1", 30), time.Hour)

	removed := c.Invalidate(MatchProfile("p1"))
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, c.Len())

	_, ok := c.Get(NewKey("p2", "hash-x", []string{"j1"}, "v1"))
	assert.True(t, ok, "unrelated entries must survive invalidation")
}

func TestCache_InvalidateByJob(t *testing.T) {
	c := New()

	c.Put(NewKey("p1", "h1", []string{"j1", "j2"}, "v1"), resultsFor("j1", 10), time.Hour)
	c.Put(NewKey("p2", "h2", []string{"j3"}, "v1"), resultsFor("j3", 20), time.Hour)

	removed := c.Invalidate(MatchJob("j2"))
	assert.Equal(t, 1, removed)

	_, ok := c.Get(NewKey("p2", "h2", []string{"j3"}, "v1"))
	assert.True(t, ok)
}

func TestCache_ConfigVersionSeparatesEntries(t *testing.T) {
	c := New()
	jobs := []string{"j1"}

	c.Put(NewKey("p1", "hash-a", jobs, "v1"), resultsFor("j1", 10), time.Hour)
	c.Put(NewKey("p1", "hash-a", jobs, "v2"), resultsFor("j1", 99), time.Hour)

	got, ok := c.Get(NewKey("p1", "hash-a", jobs, "v1"))
	require.True(t, ok)
	assert.Equal(t, 10.0, got[0].OverallScore)

	got, ok = c.Get(NewKey("p1", "hash-a", jobs, "v2"))
	require.True(t, ok)
	assert.Equal(t, 99.0, got[0].OverallScore)
}

func TestKey_FingerprintOrderInsensitive(t *testing.T) {
	a := NewKey("p1", "hash", []string{"j2", "j1", "j3"}, "v1")
	b := NewKey("p1", "hash", []string{"j1", "j3", "j2"}, "v1")

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestKey_FingerprintChangesWithComponents(t *testing.T) {
	base := NewKey("p1", "hash", []string{"j1"}, "v1")

	assert.NotEqual(t, base.Fingerprint(), NewKey("p1", "other", []string{"j1"}, "v1").Fingerprint())
	assert.NotEqual(t, base.Fingerprint(), NewKey("p1", "hash", []string{"j2"}, "v1").Fingerprint())
	assert.NotEqual(t, base.Fingerprint(), NewKey("p1", "hash", []string{"j1"}, "v2").Fingerprint())
}

func TestKey_FingerprintIDBoundaries(t *testing.T) {
	// A separator appearing inside an id must not alias two distinct
	// job sets onto one fingerprint.
	joined := NewKey("p1", "hash", []string{"a,b"}, "v1")
	split := NewKey("p1", "hash", []string{"a", "b"}, "v1")

	assert.NotEqual(t, joined.Fingerprint(), split.Fingerprint())
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := New(WithMaxSize(64))
	done := make(chan struct{})

	for g := 0; g < 8; g++ {
		go func(g int) {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 200; i++ {
				key := NewKey(fmt.Sprintf("p%d", i%16), "hash", []string{"j1"}, "v1")
				c.Put(key, resultsFor("j1", float64(i)), time.Minute)
				c.Get(key)
				if i%50 == 0 {
					c.Invalidate(MatchProfile(fmt.Sprintf("p%d", g)))
				}
			}
		}(g)
	}

	for g := 0; g < 8; g++ {
		<-done
	}
	assert.LessOrEqual(t, c.Len(), 64)
}
