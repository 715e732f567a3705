package competitor

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/ringside/scene"
)

var ErrClipMissing = errors.New("competitor: no idle clip variant found")

// resolveClip returns the first clip whose name matches a variant, in variant order
func resolveClip(asset *scene.Asset, variants []string) (*scene.Clip, bool) {
	for _, name := range variants {
		if clip, ok := asset.Clip(name); ok {
			return clip, true
		}
	}
	return nil, false
}

// resolveClips finds the idle clip (required) and the run clip (falls back to idle)
func resolveClips(asset *scene.Asset, idleVariants, runVariants []string) (idle, run *scene.Clip, err error) {
	idle, ok := resolveClip(asset, idleVariants)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s tried %v", ErrClipMissing, asset.Path, idleVariants)
	}
	run, ok = resolveClip(asset, runVariants)
	if !ok {
		run = idle
	}
	return idle, run, nil
}
