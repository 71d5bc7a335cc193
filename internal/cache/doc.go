// Package cache provides a small generic LRU cache for decoded assets.
//
//	c := cache.New[string, *texture.Texture](32)
//	tex, err := c.Load(path, func() (*texture.Texture, error) {
//		return texture.Load(path)
//	})
//
// Loader errors are returned to the caller and never cached.
//
// # Thread Safety
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
