// Package asset loads and caches world resources: model descriptors
// (instantiated as scene templates), shared textures, animation and
// properties metadata, pooled materials and generated thumbnails.
//
// Loading is the only long-latency work in the game. Concurrent Get calls
// for one key share a single underlying load; resolved models are cached
// as templates and cloned per caller, textures are cached and shared.
package asset

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/lixenwraith/worldkit/scene"
	"github.com/lixenwraith/worldkit/worldfile"
)

var (
	// ErrDisposed is returned by loader calls after Dispose
	ErrDisposed = errors.New("asset loader disposed")

	// ErrUnknownAsset marks keys whose suffix maps to no handler
	ErrUnknownAsset = errors.New("unknown asset kind")
)

// Asset is one resolved Get result. Exactly one of Object/Texture is set:
// models yield a fresh clone of the cached template, textures are shared.
type Asset struct {
	Key     string
	Model   string
	Class   Class
	Object  *scene.Object
	Texture *scene.Texture
}

type modelEntry struct {
	template *scene.Object
	class    Class
	name     string
}

// Loader resolves asset keys relative to a base directory
type Loader struct {
	baseDir string
	log     *zap.Logger

	flight singleflight.Group

	mu       sync.Mutex
	models   map[string]*modelEntry
	textures map[string]*scene.Texture
	disposed bool

	// loads counts underlying fetches, observed by tests
	loads atomic.Int64

	pool *MaterialPool

	animations worldfile.AnimationMeta
	properties worldfile.PropertiesMeta

	thumbs *ThumbnailCache
}

// NewLoader creates a loader rooted at baseDir and reads the metadata
// files next to the assets. Missing metadata is not fatal.
func NewLoader(baseDir string, log *zap.Logger) *Loader {
	l := &Loader{
		baseDir:  baseDir,
		log:      log,
		models:   make(map[string]*modelEntry),
		textures: make(map[string]*scene.Texture),
		pool:     NewMaterialPool(),
	}
	l.thumbs = newThumbnailCache(l)

	var err error
	if l.animations, err = worldfile.LoadAnimationMeta(filepath.Join(baseDir, "animations.json")); err != nil {
		log.Warn("animation metadata unavailable", zap.Error(err))
		l.animations = worldfile.AnimationMeta{}
	}
	if l.properties, err = worldfile.LoadPropertiesMeta(filepath.Join(baseDir, "properties.json")); err != nil {
		log.Warn("properties metadata unavailable", zap.Error(err))
		l.properties = worldfile.PropertiesMeta{}
	}
	return l
}

// Pool exposes the material pool for direct GetOrCreateStandard use
func (l *Loader) Pool() *MaterialPool { return l.pool }

// Animations returns the clip metadata for a model name
func (l *Loader) Animations(model string) (worldfile.AnimationEntry, bool) {
	return l.animations.Lookup(model)
}

// Properties returns the properties metadata for a model name
func (l *Loader) Properties(model string) (worldfile.PropertiesEntry, bool) {
	return l.properties.Lookup(model)
}

// Thumbnail returns the cached or freshly generated preview for key
func (l *Loader) Thumbnail(key string) (*image.RGBA, error) {
	return l.thumbs.Get(key)
}

// Get resolves key, classifying by suffix: ".json" model descriptors and
// image suffixes for textures. Cached results return immediately (models
// as clones); otherwise at most one load per key runs at a time and every
// concurrent caller shares its result or its failure.
func (l *Loader) Get(key string) (Asset, error) {
	l.mu.Lock()
	if l.disposed {
		l.mu.Unlock()
		return Asset{}, ErrDisposed
	}
	if e, ok := l.models[key]; ok {
		l.mu.Unlock()
		return Asset{Key: key, Model: e.name, Class: e.class, Object: e.template.Clone()}, nil
	}
	if t, ok := l.textures[key]; ok {
		l.mu.Unlock()
		return Asset{Key: key, Texture: t}, nil
	}
	l.mu.Unlock()

	switch classify(key) {
	case kindModel:
		v, err, _ := l.flight.Do(key, func() (any, error) {
			return l.loadModel(key)
		})
		if err != nil {
			return Asset{}, err
		}
		e := v.(*modelEntry)
		return Asset{Key: key, Model: e.name, Class: e.class, Object: e.template.Clone()}, nil
	case kindTexture:
		t, err := l.texture(key)
		if err != nil {
			return Asset{}, err
		}
		return Asset{Key: key, Texture: t}, nil
	default:
		return Asset{}, fmt.Errorf("%s: %w", key, ErrUnknownAsset)
	}
}

type assetKind uint8

const (
	kindUnknown assetKind = iota
	kindModel
	kindTexture
)

func classify(key string) assetKind {
	switch strings.ToLower(filepath.Ext(key)) {
	case ".json":
		return kindModel
	case ".png", ".jpg", ".jpeg":
		return kindTexture
	default:
		return kindUnknown
	}
}

func (l *Loader) loadModel(key string) (*modelEntry, error) {
	l.loads.Add(1)
	data, err := l.readFile(key)
	if err != nil {
		return nil, err
	}
	mf, err := parseModel(key, data)
	if err != nil {
		return nil, err
	}
	template, err := l.buildTemplate(mf)
	if err != nil {
		return nil, err
	}
	e := &modelEntry{template: template, class: mf.Class, name: mf.Name}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.disposed {
		// State exited mid-load; drop the result quietly
		disposeTemplate(template)
		return nil, ErrDisposed
	}
	l.models[key] = e
	return e, nil
}

// texture resolves a texture key with the same per-key flight discipline
func (l *Loader) texture(key string) (*scene.Texture, error) {
	l.mu.Lock()
	if l.disposed {
		l.mu.Unlock()
		return nil, ErrDisposed
	}
	if t, ok := l.textures[key]; ok {
		l.mu.Unlock()
		return t, nil
	}
	l.mu.Unlock()

	v, err, _ := l.flight.Do(key, func() (any, error) {
		l.loads.Add(1)
		data, err := l.readFile(key)
		if err != nil {
			return nil, err
		}
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode texture %s: %w", key, err)
		}
		t := &scene.Texture{Key: key, Width: cfg.Width, Height: cfg.Height}

		l.mu.Lock()
		defer l.mu.Unlock()
		if l.disposed {
			return nil, ErrDisposed
		}
		l.textures[key] = t
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*scene.Texture), nil
}

func (l *Loader) readFile(key string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(l.baseDir, filepath.FromSlash(key)))
	if err != nil {
		return nil, fmt.Errorf("load asset %s: %w", key, err)
	}
	return data, nil
}

// Dispose releases every cached resource and the material pool. Called
// exactly once per loader lifetime by the owning state's exit; repeated
// calls are tolerated as no-ops and later Gets fail with ErrDisposed.
// In-flight loads are not cancelled; their results are discarded when
// they land.
func (l *Loader) Dispose() {
	l.mu.Lock()
	if l.disposed {
		l.mu.Unlock()
		return
	}
	l.disposed = true
	models := l.models
	textures := l.textures
	l.models = nil
	l.textures = nil
	l.mu.Unlock()

	for _, e := range models {
		disposeTemplate(e.template)
	}
	for _, t := range textures {
		t.Dispose()
	}
	l.pool.Dispose()
	l.thumbs.clear()
}

// disposeTemplate releases a template including its cached geometry, which
// instance disposal deliberately skips
func disposeTemplate(t *scene.Object) {
	t.Traverse(func(n *scene.Object) {
		if n.Mesh != nil && n.Mesh.Geometry != nil {
			n.Mesh.Geometry.Dispose()
		}
	})
	t.Dispose()
}
