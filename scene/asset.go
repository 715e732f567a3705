package scene

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var ErrAssetNotFound = errors.New("scene: asset not found")

// Clip is a named animation group on an imported asset
type Clip struct {
	Name    string
	playing bool
	looping bool
}

// Start plays the clip
func (c *Clip) Start(loop bool) {
	c.playing = true
	c.looping = loop
}

// Stop halts the clip
func (c *Clip) Stop() {
	c.playing = false
	c.looping = false
}

func (c *Clip) Playing() bool { return c.playing }
func (c *Clip) Looping() bool { return c.looping }

// Asset is an imported character model with its animation groups
type Asset struct {
	Path   string
	Clips  []*Clip
	Parent *Collider
}

// Clip finds an animation group by exact name
func (a *Asset) Clip(name string) (*Clip, bool) {
	for _, c := range a.Clips {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// StopAll halts every clip on the asset
func (a *Asset) StopAll() {
	for _, c := range a.Clips {
		c.Stop()
	}
}

// AttachTo parents the asset root to a collider
func (a *Asset) AttachTo(c *Collider) {
	a.Parent = c
}

// Importer loads character assets by path
type Importer interface {
	Import(ctx context.Context, path string) (*Asset, error)
}

// Catalog is an in-memory Importer keyed by asset path
// Every Import returns a fresh Asset with independent clip state
type Catalog struct {
	// Latency delays each import, honouring context cancellation
	Latency time.Duration

	mu      sync.RWMutex
	entries map[string][]string
	imports int
}

func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[string][]string)}
}

// Register declares an asset and the names of its animation groups
func (c *Catalog) Register(path string, clips ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = append([]string(nil), clips...)
}

// Imports returns how many successful imports were served
func (c *Catalog) Imports() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.imports
}

func (c *Catalog) Import(ctx context.Context, path string) (*Asset, error) {
	if c.Latency > 0 {
		timer := time.NewTimer(c.Latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	names, ok := c.entries[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, path)
	}
	c.imports++

	asset := &Asset{Path: path, Clips: make([]*Clip, 0, len(names))}
	for _, n := range names {
		asset.Clips = append(asset.Clips, &Clip{Name: n})
	}
	return asset, nil
}
