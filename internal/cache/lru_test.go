package cache

import (
	"strconv"
	"sync"
	"testing"
)

func TestLRU_GetSet(t *testing.T) {
	c := New[string, int](2)
	if _, ok := c.Get("a"); ok {
		t.Fatal("Get on empty cache reported a hit")
	}
	c.Set("a", 1)
	c.Set("b", 2)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %v, %v, want 1, true", v, ok)
	}
	c.Set("b", 20)
	if v, _ := c.Get("b"); v != 20 {
		t.Errorf("Get(b) = %v after update, want 20", v)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	c := New[string, int](2)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // b is now the oldest
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("b survived eviction")
	}
	for _, k := range []string{"a", "c"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("%s was evicted", k)
		}
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestLRU_GetOrCreate(t *testing.T) {
	c := New[int, string](4)
	calls := 0
	create := func() string {
		calls++
		return "v"
	}
	for i := 0; i < 3; i++ {
		if v := c.GetOrCreate(7, create); v != "v" {
			t.Fatalf("GetOrCreate = %q, want v", v)
		}
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
}

func TestLRU_CapacityAndClear(t *testing.T) {
	c := New[int, int](0)
	if c.Capacity() != 1 {
		t.Errorf("Capacity() = %d, want 1", c.Capacity())
	}
	c.Set(1, 1)
	c.Set(2, 2)
	if _, ok := c.Get(1); ok || c.Len() != 1 {
		t.Errorf("capacity 1 kept %d entries", c.Len())
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() = %d after Clear", c.Len())
	}
	c.Set(3, 3)
	if v, ok := c.Get(3); !ok || v != 3 {
		t.Errorf("Get after Clear = %v, %v", v, ok)
	}
}

func TestLRU_Concurrent(t *testing.T) {
	c := New[int, int](16)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				c.GetOrCreate(i%32, func() int { return i })
			}
		}()
	}
	wg.Wait()
	if c.Len() > 16 {
		t.Errorf("Len() = %d, want <= 16", c.Len())
	}
}

func BenchmarkLRUGetOrCreate(b *testing.B) {
	c := New[string, int](1000)
	keys := make([]string, 100)
	for i := range keys {
		keys[i] = strconv.Itoa(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.GetOrCreate(keys[i%len(keys)], func() int { return i })
	}
}
