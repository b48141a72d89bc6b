// Package env defines the environment contract and the built in
// environments driven by the run loop.
package env

import (
	"hash/fnv"
	"math/rand"

	"gymnarium/internal/vis"
)

// Observation is the environment state exposed to agents.
type Observation []float64

// Action indexes into an environment's discrete action space.
type Action int

// ActionSpace describes the discrete actions an environment accepts.
type ActionSpace struct {
	Size   int
	Labels []string
}

// StepResult bundles one transition.
type StepResult struct {
	Observation Observation
	Reward      float64
	Done        bool
	Info        map[string]any
}

// Environment is a stateful simulation advanced by discrete actions.
// Reseed seeds the internal randomness, Reset starts a fresh episode and
// returns its first observation, Observation reports the current state
// without stepping.
type Environment interface {
	Name() string
	ActionSpace() ActionSpace
	Reseed(seed []byte) error
	Reset() (Observation, error)
	Observation() Observation
	Step(action Action) (StepResult, error)
	Close() error
}

// InputMapper turns pending visualiser input into an action. Mappers return
// the environment's neutral action when no relevant key is pending.
type InputMapper func(inputs []vis.Input) Action

// InputControllable is implemented by environments that can be steered by
// key input.
type InputControllable interface {
	InputMapper() InputMapper
}

// StepPacer is implemented by environments that suggest how many steps per
// second a visualised run should advance.
type StepPacer interface {
	SuggestedStepsPerSecond() float64
}

func seededRNG(seed []byte) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write(seed)
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
