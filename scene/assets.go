package scene

import (
	"os"
	"sync"
	"time"

	"github.com/gogpu/sr"
	"github.com/gogpu/sr/internal/cache"
	"github.com/gogpu/sr/mesh"
	"github.com/gogpu/sr/texture"
)

// assetKey identifies one decoded file. The modification time is part of
// the key, so an edited file is decoded again.
type assetKey struct {
	path  string
	mtime time.Time
	flipV bool
}

// assetID identifies a file independently of its version.
type assetID struct {
	path  string
	flipV bool
}

// Assets caches decoded meshes and textures across Build calls, so that a
// reloaded scene only decodes the files that changed. Only the latest
// version of each file is kept.
type Assets struct {
	meshes   *cache.Cache[assetKey, *mesh.Mesh]
	textures *cache.Cache[assetKey, *texture.Texture]

	mu          sync.Mutex
	meshKeys    map[assetID]assetKey
	textureKeys map[assetID]assetKey
}

// NewAssets creates a cache holding up to capacity meshes and capacity
// textures.
func NewAssets(capacity int) *Assets {
	return &Assets{
		meshes:      cache.New[assetKey, *mesh.Mesh](capacity),
		textures:    cache.New[assetKey, *texture.Texture](capacity),
		meshKeys:    make(map[assetID]assetKey),
		textureKeys: make(map[assetID]assetKey),
	}
}

// Purge drops every cached asset, so the next Build decodes all files
// again.
func (a *Assets) Purge() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.meshes.Purge()
	a.textures.Purge()
	clear(a.meshKeys)
	clear(a.textureKeys)
}

// track records k as the current version of its file and returns the key
// of the version it replaces, if any.
func (a *Assets) track(live map[assetID]assetKey, k assetKey) (assetKey, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := assetID{path: k.path, flipV: k.flipV}
	old, ok := live[id]
	live[id] = k
	return old, ok && old != k
}

func keyOf(path string, flipV bool) assetKey {
	k := assetKey{path: path, flipV: flipV}
	if fi, err := os.Stat(path); err == nil {
		k.mtime = fi.ModTime()
	}
	return k
}

// loadMesh returns a private copy of the mesh at path; callers may modify
// it.
func (a *Assets) loadMesh(path string) (*mesh.Mesh, error) {
	if a == nil {
		return mesh.Load(path)
	}
	k := keyOf(path, false)
	if stale, ok := a.track(a.meshKeys, k); ok {
		a.meshes.Delete(stale)
	}
	m, err := a.meshes.Load(k, func() (*mesh.Mesh, error) {
		return mesh.Load(path)
	})
	if err != nil {
		return nil, err
	}
	return m.Clone(), nil
}

// loadTexture returns a texture shared with other users of the cache; it
// must not be modified.
func (a *Assets) loadTexture(path string, flipV bool) (*texture.Texture, error) {
	load := func() (*texture.Texture, error) {
		t, err := texture.Load(path)
		if err != nil {
			return nil, err
		}
		if flipV {
			t.FlipVertical()
		}
		return t, nil
	}
	if a == nil {
		return load()
	}
	k := keyOf(path, flipV)
	if stale, ok := a.track(a.textureKeys, k); ok {
		a.textures.Delete(stale)
	}
	return a.textures.Load(k, load)
}

// LogStats logs the cache counters at debug level.
func (a *Assets) LogStats() {
	m, t := a.meshes.Stats(), a.textures.Stats()
	sr.Logger().Debug("scene: asset cache",
		"meshes", m.Len, "mesh_hits", m.Hits, "mesh_misses", m.Misses,
		"textures", t.Len, "texture_hits", t.Hits, "texture_misses", t.Misses)
}
