package cache

import (
	"errors"
	"reflect"
	"testing"

	"versesim/internal/domain"
)

func scored(ref string, score float64) domain.ScoredVerse {
	return domain.ScoredVerse{
		Verse: domain.Verse{Ref: ref, Text: "text of " + ref},
		Score: score,
	}
}

func TestQueryCachePutGet(t *testing.T) {
	c := NewQueryCache(4)

	results := []domain.ScoredVerse{scored("Genesis 1:2", 0.91), scored("John 1:1", 0.88)}
	c.Put("Genesis 1:1", 2, results)

	got, hit := c.Get("Genesis 1:1", 2)
	if !hit {
		t.Fatal("expected cache hit")
	}
	if !reflect.DeepEqual(got, results) {
		t.Errorf("Get = %v, want %v", got, results)
	}
}

func TestQueryCacheKeyIncludesCount(t *testing.T) {
	c := NewQueryCache(4)
	c.Put("Genesis 1:1", 2, []domain.ScoredVerse{scored("John 1:1", 0.9)})

	if _, hit := c.Get("Genesis 1:1", 3); hit {
		t.Error("hit for a different count")
	}
	if _, hit := c.Get("Genesis 1:2", 2); hit {
		t.Error("hit for a different reference")
	}
}

func TestQueryCacheEvictsOldest(t *testing.T) {
	c := NewQueryCache(2)
	c.Put("a", 1, nil)
	c.Put("b", 1, nil)

	// Touch "a" so "b" becomes the eviction candidate.
	c.Get("a", 1)
	c.Put("c", 1, nil)

	if _, hit := c.Get("b", 1); hit {
		t.Error("least recently used entry survived eviction")
	}
	if _, hit := c.Get("a", 1); !hit {
		t.Error("recently used entry was evicted")
	}
	if c.Size() != 2 {
		t.Errorf("Size() = %d, want 2", c.Size())
	}
}

type stubSearcher struct {
	calls int
	err   error
}

func (s *stubSearcher) Similar(ref string, count int) ([]domain.ScoredVerse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return []domain.ScoredVerse{scored("Psalms 23:2", 0.8)}, nil
}

func TestCachedSearcherServesFromCache(t *testing.T) {
	stub := &stubSearcher{}
	cached := NewCachedSearcher(stub, NewQueryCache(4))

	for i := 0; i < 3; i++ {
		if _, err := cached.Similar("Psalms 23:1", 5); err != nil {
			t.Fatalf("Similar: %v", err)
		}
	}
	if stub.calls != 1 {
		t.Errorf("inner searcher called %d times, want 1", stub.calls)
	}
}

func TestCachedSearcherDoesNotCacheErrors(t *testing.T) {
	stub := &stubSearcher{err: errors.New("unknown passage")}
	cached := NewCachedSearcher(stub, NewQueryCache(4))

	for i := 0; i < 2; i++ {
		if _, err := cached.Similar("Nowhere 0:0", 5); err == nil {
			t.Fatal("expected error")
		}
	}
	if stub.calls != 2 {
		t.Errorf("inner searcher called %d times, want 2", stub.calls)
	}
}
