// Package agent defines the agent contract and the built in agents.
package agent

import (
	"hash/fnv"
	"math/rand"

	"gymnarium/internal/env"
)

// Agent chooses actions for an environment and observes the rewards those
// actions earned. Reseed seeds internal randomness, Reset clears per
// episode state.
type Agent interface {
	Name() string
	Reseed(seed []byte) error
	Reset() error
	ChooseAction(obs env.Observation) (env.Action, error)
	ProcessReward(prev, next env.Observation, reward float64, done bool) error
	Close() error
}

func seededRNG(seed []byte) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write(seed)
	return rand.New(rand.NewSource(int64(h.Sum64())))
}
