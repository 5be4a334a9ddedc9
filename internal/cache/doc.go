// Package cache provides a small generic LRU cache.
//
//	c := cache.New[string, float64](256)
//	v := c.GetOrCreate("key", func() float64 { return expensive() })
//
// LRU is safe for concurrent use and must not be copied after creation.
package cache
