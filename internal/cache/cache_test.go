// Relevance - Content Recommendation and Similarity Engine
// Copyright 2026 The Unipub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/unipub/relevance

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	c := New(time.Minute)

	c.Set("vector:1", map[string]float64{"concurrency": 0.8})

	val, ok := c.Get("vector:1")
	if !ok {
		t.Fatal("expected cache hit")
	}
	vec, ok := val.(map[string]float64)
	if !ok {
		t.Fatalf("unexpected type %T", val)
	}
	if vec["concurrency"] != 0.8 {
		t.Errorf("got %v, want 0.8", vec["concurrency"])
	}
}

func TestCacheMiss(t *testing.T) {
	c := New(time.Minute)

	if _, ok := c.Get("absent"); ok {
		t.Error("expected cache miss")
	}

	stats := c.GetStats()
	if stats.Misses != 1 {
		t.Errorf("Misses = %d, want 1", stats.Misses)
	}
}

func TestCacheExpiration(t *testing.T) {
	c := New(time.Minute)

	c.SetWithTTL("short", "value", 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Error("expected expired entry to miss")
	}

	stats := c.GetStats()
	if stats.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", stats.Evictions)
	}
}

func TestCacheDelete(t *testing.T) {
	c := New(time.Minute)

	c.Set("key", "value")
	c.Delete("key")

	if _, ok := c.Get("key"); ok {
		t.Error("expected miss after delete")
	}
}

func TestCacheClear(t *testing.T) {
	c := New(time.Minute)

	for i := 0; i < 10; i++ {
		c.Set(fmt.Sprintf("key%d", i), i)
	}
	c.Clear()

	stats := c.GetStats()
	if stats.TotalKeys != 0 {
		t.Errorf("TotalKeys = %d, want 0", stats.TotalKeys)
	}
	if stats.Evictions != 10 {
		t.Errorf("Evictions = %d, want 10", stats.Evictions)
	}
}

func TestCacheHitRate(t *testing.T) {
	c := New(time.Minute)

	c.Set("key", "value")
	c.Get("key")    // hit
	c.Get("key")    // hit
	c.Get("absent") // miss

	want := 100.0 * 2 / 3
	if got := c.HitRate(); got < want-0.01 || got > want+0.01 {
		t.Errorf("HitRate() = %v, want ~%v", got, want)
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := New(time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key%d", n%5)
			c.Set(key, n)
			c.Get(key)
		}(i)
	}
	wg.Wait()

	stats := c.GetStats()
	if stats.TotalKeys != 5 {
		t.Errorf("TotalKeys = %d, want 5", stats.TotalKeys)
	}
}

func TestGenerateKey(t *testing.T) {
	type params struct {
		UserID int64
		Limit  int
	}

	k1 := GenerateKey("recommendations", params{UserID: 7, Limit: 10})
	k2 := GenerateKey("recommendations", params{UserID: 7, Limit: 10})
	k3 := GenerateKey("recommendations", params{UserID: 8, Limit: 10})

	if k1 != k2 {
		t.Error("equal params should produce equal keys")
	}
	if k1 == k3 {
		t.Error("different params should produce different keys")
	}
}
