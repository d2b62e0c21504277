// Package cache provides generic LRU caches.
//
// [Cache] keeps at most a fixed number of entries and evicts the least
// recently used one when a new entry would exceed the limit. The text
// package uses it to remember where glyphs were placed in the atlas across
// frames.
//
//	c := cache.New[string, int](100)
//	c.Set("key", 42)
//	value, ok := c.Get("key")
//
// [Sharded] spreads entries over [DefaultShardCount] independently locked
// caches and suits lookups from many goroutines, such as shaped lines.
//
// Both caches are safe for concurrent use and must not be copied after
// creation.
package cache
