package alert

import (
	"fmt"
	"math/rand/v2"
	"sync"
)

// Selector picks an index into a pool of n messages for tier. n is always > 0.
type Selector interface {
	Select(tier Tier, n int) int
}

// RandomSelector picks uniformly at random.
type RandomSelector struct{}

func (RandomSelector) Select(_ Tier, n int) int {
	return rand.IntN(n)
}

// RoundRobinSelector cycles through each tier's pool in order.
type RoundRobinSelector struct {
	mu   sync.Mutex
	next map[Tier]int
}

func (r *RoundRobinSelector) Select(tier Tier, n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.next == nil {
		r.next = make(map[Tier]int)
	}
	i := r.next[tier] % n
	r.next[tier] = i + 1
	return i
}

// FixedSelector always returns the same index, clamped to the pool.
type FixedSelector int

func (f FixedSelector) Select(_ Tier, n int) int {
	i := int(f)
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Selection names a selector strategy in config.
const (
	SelectionRandom     = "random"
	SelectionRoundRobin = "round-robin"
)

// ParseSelection returns the selector for a config value. Empty means random.
func ParseSelection(name string) (Selector, error) {
	switch name {
	case "", SelectionRandom:
		return RandomSelector{}, nil
	case SelectionRoundRobin:
		return &RoundRobinSelector{}, nil
	}
	return nil, fmt.Errorf("unknown message selection %q (want %s or %s)", name, SelectionRandom, SelectionRoundRobin)
}
