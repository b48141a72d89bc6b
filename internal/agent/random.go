package agent

import (
	"fmt"
	"math/rand"

	"gymnarium/internal/env"
)

// Random picks uniformly among the environment's actions and ignores every
// reward.
type Random struct {
	space env.ActionSpace
	rng   *rand.Rand
}

func NewRandom(space env.ActionSpace) (*Random, error) {
	if space.Size <= 0 {
		return nil, fmt.Errorf("action space must not be empty")
	}
	return &Random{
		space: space,
		rng:   rand.New(rand.NewSource(0)),
	}, nil
}

func (r *Random) Name() string {
	return "random"
}

func (r *Random) Reseed(seed []byte) error {
	r.rng = seededRNG(seed)
	return nil
}

func (r *Random) Reset() error {
	return nil
}

func (r *Random) ChooseAction(env.Observation) (env.Action, error) {
	return env.Action(r.rng.Intn(r.space.Size)), nil
}

func (r *Random) ProcessReward(prev, next env.Observation, reward float64, done bool) error {
	return nil
}

func (r *Random) Close() error {
	return nil
}

// RandomState is the serialized form of the agent. The agent learns
// nothing, so only the action space size is recorded.
type RandomState struct {
	ActionCount int `json:"action_count"`
}

// SnapshotState returns a copy of the current state, usable for encoding
// or as a decode target.
func (r *Random) SnapshotState() any {
	return &RandomState{ActionCount: r.space.Size}
}

func (r *Random) RestoreState(state any) error {
	s, ok := state.(*RandomState)
	if !ok {
		return fmt.Errorf("unexpected state type %T", state)
	}
	if s.ActionCount != r.space.Size {
		return fmt.Errorf("stored action count %d does not match action space of size %d", s.ActionCount, r.space.Size)
	}
	return nil
}
