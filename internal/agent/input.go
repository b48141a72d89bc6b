package agent

import (
	"fmt"

	"gymnarium/internal/env"
	"gymnarium/internal/vis"
)

// Input lets a human steer the environment through the visualiser's key
// stream. Each decision drains the pending keys and maps them to an
// action; without pending keys the environment's neutral action is chosen.
type Input struct {
	provider vis.InputProvider
	mapper   env.InputMapper
}

func NewInput(provider vis.InputProvider, mapper env.InputMapper) (*Input, error) {
	if provider == nil {
		return nil, fmt.Errorf("input provider is required")
	}
	if mapper == nil {
		return nil, fmt.Errorf("input mapper is required")
	}
	return &Input{provider: provider, mapper: mapper}, nil
}

func (i *Input) Name() string {
	return "input"
}

func (i *Input) Reseed([]byte) error {
	return nil
}

func (i *Input) Reset() error {
	return nil
}

func (i *Input) ChooseAction(env.Observation) (env.Action, error) {
	return i.mapper(i.provider.PendingInputs()), nil
}

func (i *Input) ProcessReward(prev, next env.Observation, reward float64, done bool) error {
	return nil
}

func (i *Input) Close() error {
	return nil
}

// InputState is the serialized form of the agent. A human carries the
// state, so there is nothing beyond the agent kind to record.
type InputState struct{}

// SnapshotState returns a copy of the current state, usable for encoding
// or as a decode target.
func (i *Input) SnapshotState() any {
	return &InputState{}
}

func (i *Input) RestoreState(state any) error {
	if _, ok := state.(*InputState); !ok {
		return fmt.Errorf("unexpected state type %T", state)
	}
	return nil
}
