// Package platform turns resolved selections into the concrete
// environment, agent, visualiser and exit condition a driver runs. It is
// the single place that knows which implementation backs which variant.
package platform

import (
	"fmt"
	"io"
	"os"

	"gymnarium/internal/agent"
	"gymnarium/internal/env"
	"gymnarium/internal/run"
	"gymnarium/internal/selection"
	"gymnarium/internal/vis"
)

// IO carries the streams a terminal visualiser renders to and reads key
// input from. Zero values fall back to stdout and no input.
type IO struct {
	Out io.Writer
	In  io.Reader
}

// Assembly is the concrete quadruple handed to the driver. Visualiser is
// nil on headless runs.
type Assembly struct {
	Environment env.Environment
	Agent       agent.Agent
	Visualiser  vis.Visualiser
	Exit        run.ExitCondition
}

// Assemble builds the components for the given selections in dependency
// order: environment, visualiser, then the agent (an input agent reads
// from both) and the exit condition. Components built before a failure
// are closed again.
func Assemble(set selection.Set, streams IO) (*Assembly, error) {
	environment, err := buildEnvironment(set.Environment)
	if err != nil {
		return nil, err
	}

	visualiser, err := buildVisualiser(set.Visualiser, streams)
	if err != nil {
		_ = environment.Close()
		return nil, err
	}

	ag, err := buildAgent(set.Agent, environment, visualiser)
	if err != nil {
		_ = environment.Close()
		if visualiser != nil {
			_ = visualiser.Close()
		}
		return nil, err
	}

	exit, err := buildExit(set.ExitCondition, visualiser)
	if err != nil {
		_ = ag.Close()
		_ = environment.Close()
		if visualiser != nil {
			_ = visualiser.Close()
		}
		return nil, err
	}

	return &Assembly{
		Environment: environment,
		Agent:       ag,
		Visualiser:  visualiser,
		Exit:        exit,
	}, nil
}

func buildEnvironment(sel selection.Environment) (env.Environment, error) {
	switch s := sel.(type) {
	case selection.GymMountainCar:
		return env.NewMountainCar(s.GoalVelocity)
	case selection.CodeBulletDrive:
		return env.NewDrive(s.SensorLinesVisible, s.TrackVisible), nil
	}
	return nil, fmt.Errorf("no environment implementation for %q", sel.Available().NiceName)
}

func buildVisualiser(sel selection.Visualiser, streams IO) (vis.Visualiser, error) {
	switch s := sel.(type) {
	case selection.NoVisualiser:
		return nil, nil
	case selection.TerminalIn2D:
		out := streams.Out
		if out == nil {
			out = os.Stdout
		}
		return vis.NewTerminal(s.WindowTitle, s.WindowWidth, s.WindowHeight, out, streams.In)
	}
	return nil, fmt.Errorf("no visualiser implementation for %q", sel.Available().NiceName)
}

func buildAgent(sel selection.Agent, environment env.Environment, visualiser vis.Visualiser) (agent.Agent, error) {
	switch sel.(type) {
	case selection.RandomAgent:
		return agent.NewRandom(environment.ActionSpace())
	case selection.InputAgent:
		provider, ok := visualiser.(vis.InputProvider)
		if !ok {
			return nil, fmt.Errorf("the input agent needs a visualiser that forwards key input")
		}
		controllable, ok := environment.(env.InputControllable)
		if !ok {
			return nil, fmt.Errorf("environment %s cannot be steered by key input", environment.Name())
		}
		return agent.NewInput(provider, controllable.InputMapper())
	}
	return nil, fmt.Errorf("no agent implementation for %q", sel.Available().NiceName)
}

func buildExit(sel selection.ExitCondition, visualiser vis.Visualiser) (run.ExitCondition, error) {
	switch s := sel.(type) {
	case selection.EpisodesSimulated:
		return run.EpisodesSimulated(s.CountOfEpisodes), nil
	case selection.VisualiserClosed:
		if visualiser == nil {
			return nil, fmt.Errorf("the visualiser-is-closed exit condition needs a visualiser")
		}
		return run.VisualiserClosed(), nil
	}
	return nil, fmt.Errorf("no exit condition implementation for %q", sel.Available().NiceName)
}
