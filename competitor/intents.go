package competitor

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/ringside/parameter"
)

// Intents supplies the two binary inputs a competitor alternates between
type Intents interface {
	Sample(now time.Duration) (left, right bool)
}

// HeldKeys is an Intents fed by an input goroutine
type HeldKeys struct {
	left  atomic.Bool
	right atomic.Bool
}

func (h *HeldKeys) SetLeft(down bool)  { h.left.Store(down) }
func (h *HeldKeys) SetRight(down bool) { h.right.Store(down) }

// Release clears both sides
func (h *HeldKeys) Release() {
	h.left.Store(false)
	h.right.Store(false)
}

func (h *HeldKeys) Sample(time.Duration) (bool, bool) {
	return h.left.Load(), h.right.Load()
}

// BotDriver alternates sides on a fixed cadence derived from a roster base speed
type BotDriver struct {
	interval time.Duration
	next     time.Duration
	left     bool
	started  bool
}

// NewBotDriver maps baseSpeed to a cadence: BotReferenceSpeed alternates every
// MinSwitchDelay, slower bots alternate proportionally less often
// A non-positive speed never alternates
func NewBotDriver(baseSpeed float32) *BotDriver {
	if baseSpeed <= 0 {
		return &BotDriver{}
	}
	ratio := float64(parameter.BotReferenceSpeed) / float64(baseSpeed)
	interval := time.Duration(float64(parameter.MinSwitchDelay) * ratio)
	if interval < parameter.MinSwitchDelay {
		interval = parameter.MinSwitchDelay
	}
	return &BotDriver{interval: interval}
}

// Interval returns the alternation cadence, zero when the bot never alternates
func (b *BotDriver) Interval() time.Duration {
	return b.interval
}

func (b *BotDriver) Sample(now time.Duration) (bool, bool) {
	if b.interval == 0 {
		return false, false
	}
	if !b.started || now >= b.next {
		b.started = true
		b.left = !b.left
		b.next = now + b.interval
	}
	return b.left, !b.left
}
