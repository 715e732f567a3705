package scoreboard

import (
	"context"
	"fmt"

	"github.com/lixenwraith/ringside/config"
)

// KV is the durable key-value profile storage
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Progression is the unlocked tier for one game mode
// Monotonic: it moves one tier forward, only from the tier just played
type Progression struct {
	kv  KV
	key string
}

func NewProgression(kv KV, key string) *Progression {
	return &Progression{kv: kv, key: key}
}

// Load returns the stored tier; missing progression reads as easy
func (p *Progression) Load(ctx context.Context) (config.Tier, error) {
	t, _, err := p.stored(ctx)
	return t, err
}

// Init seeds easy for a profile that has no progression yet
func (p *Progression) Init(ctx context.Context) error {
	_, ok, err := p.stored(ctx)
	if err != nil || ok {
		return err
	}
	if err := p.kv.Set(ctx, p.key, config.TierEasy.String()); err != nil {
		return fmt.Errorf("init progression: %w", err)
	}
	return nil
}

func (p *Progression) stored(ctx context.Context) (config.Tier, bool, error) {
	v, ok, err := p.kv.Get(ctx, p.key)
	if err != nil {
		return config.TierEasy, false, fmt.Errorf("load progression: %w", err)
	}
	if !ok {
		return config.TierEasy, false, nil
	}
	t, err := config.ParseTier(v)
	if err != nil {
		return config.TierEasy, false, fmt.Errorf("load progression: %w", err)
	}
	return t, true, nil
}

// Advance unlocks the tier after played when score meets threshold and the stored tier
// equals played; returns the stored tier after the call and whether it changed
// A profile without stored progression never advances
func (p *Progression) Advance(ctx context.Context, played config.Tier, score, threshold int) (config.Tier, bool, error) {
	stored, ok, err := p.stored(ctx)
	if err != nil {
		return stored, false, err
	}
	if !ok || score < threshold || stored != played {
		return stored, false, nil
	}
	next, ok := played.Next()
	if !ok {
		return stored, false, nil
	}
	if err := p.kv.Set(ctx, p.key, next.String()); err != nil {
		return stored, false, fmt.Errorf("store progression: %w", err)
	}
	return next, true, nil
}
