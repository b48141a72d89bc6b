// Package selection turns variant names plus raw option text into typed,
// resolved choices. It feeds two front-ends: a batch path that receives
// all four choices up front and an interactive path that prompts for
// them in order, narrowing each step by compatibility.
package selection

import (
	"fmt"

	"gymnarium/internal/catalog"
	"gymnarium/internal/conf"
)

// Environment is a resolved environment choice.
type Environment interface {
	Available() catalog.Variant
	environment()
}

// GymMountainCar drives the classic mountain car task.
type GymMountainCar struct {
	GoalVelocity float64
}

func (GymMountainCar) Available() catalog.Variant { return catalog.EnvGymMountainCar }
func (GymMountainCar) environment()               {}

// CodeBulletDrive drives the 2D self-driving track task.
type CodeBulletDrive struct {
	SensorLinesVisible bool
	TrackVisible       bool
}

func (CodeBulletDrive) Available() catalog.Variant { return catalog.EnvCodeBulletDrive }
func (CodeBulletDrive) environment()               {}

// Agent is a resolved agent choice.
type Agent interface {
	Available() catalog.Variant
	agent()
}

type RandomAgent struct{}

func (RandomAgent) Available() catalog.Variant { return catalog.AgentRandom }
func (RandomAgent) agent()                     {}

type InputAgent struct{}

func (InputAgent) Available() catalog.Variant { return catalog.AgentInput }
func (InputAgent) agent()                     {}

// Visualiser is a resolved visualiser choice.
type Visualiser interface {
	Available() catalog.Variant
	visualiser()
}

type NoVisualiser struct{}

func (NoVisualiser) Available() catalog.Variant { return catalog.VisNone }
func (NoVisualiser) visualiser()                {}

// TerminalIn2D renders scenes onto a character canvas.
type TerminalIn2D struct {
	WindowTitle  string
	WindowWidth  uint64
	WindowHeight uint64
}

func (TerminalIn2D) Available() catalog.Variant { return catalog.VisTerminalIn2D }
func (TerminalIn2D) visualiser()                {}

// ExitCondition is a resolved exit condition choice.
type ExitCondition interface {
	Available() catalog.Variant
	exitCondition()
}

type EpisodesSimulated struct {
	CountOfEpisodes uint64
}

func (EpisodesSimulated) Available() catalog.Variant { return catalog.ExitEpisodesSimulated }
func (EpisodesSimulated) exitCondition()             {}

type VisualiserClosed struct{}

func (VisualiserClosed) Available() catalog.Variant { return catalog.ExitVisualiserClosed }
func (VisualiserClosed) exitCondition()             {}

// Set is one complete resolved quadruple.
type Set struct {
	Environment   Environment
	Agent         Agent
	Visualiser    Visualiser
	ExitCondition ExitCondition
}

// Variants returns the originating variants of all four selections.
func (s Set) Variants() []catalog.Variant {
	return []catalog.Variant{
		s.Environment.Available(),
		s.Agent.Available(),
		s.Visualiser.Available(),
		s.ExitCondition.Available(),
	}
}

// ResolveEnvironment resolves variant and config into a typed
// environment selection.
func ResolveEnvironment(variant catalog.Variant, config map[string]string) (Environment, error) {
	values, err := resolveOptions(catalog.CategoryEnvironment, variant, config)
	if err != nil {
		return nil, err
	}
	switch variant {
	case catalog.EnvGymMountainCar:
		return GymMountainCar{GoalVelocity: values.Float("goal_velocity")}, nil
	case catalog.EnvCodeBulletDrive:
		return CodeBulletDrive{
			SensorLinesVisible: values.Bool("sensor_lines_visible"),
			TrackVisible:       values.Bool("track_visible"),
		}, nil
	}
	return nil, fmt.Errorf("no selection for environment %q", variant.NiceName)
}

func ResolveAgent(variant catalog.Variant, config map[string]string) (Agent, error) {
	if _, err := resolveOptions(catalog.CategoryAgent, variant, config); err != nil {
		return nil, err
	}
	switch variant {
	case catalog.AgentRandom:
		return RandomAgent{}, nil
	case catalog.AgentInput:
		return InputAgent{}, nil
	}
	return nil, fmt.Errorf("no selection for agent %q", variant.NiceName)
}

func ResolveVisualiser(variant catalog.Variant, config map[string]string) (Visualiser, error) {
	values, err := resolveOptions(catalog.CategoryVisualiser, variant, config)
	if err != nil {
		return nil, err
	}
	switch variant {
	case catalog.VisNone:
		return NoVisualiser{}, nil
	case catalog.VisTerminalIn2D:
		width, height := values.UintPair("window_dimension")
		return TerminalIn2D{
			WindowTitle:  values.String("window_title"),
			WindowWidth:  width,
			WindowHeight: height,
		}, nil
	}
	return nil, fmt.Errorf("no selection for visualiser %q", variant.NiceName)
}

func ResolveExitCondition(variant catalog.Variant, config map[string]string) (ExitCondition, error) {
	values, err := resolveOptions(catalog.CategoryExitCondition, variant, config)
	if err != nil {
		return nil, err
	}
	switch variant {
	case catalog.ExitEpisodesSimulated:
		return EpisodesSimulated{CountOfEpisodes: values.Uint("count_of_episodes")}, nil
	case catalog.ExitVisualiserClosed:
		return VisualiserClosed{}, nil
	}
	return nil, fmt.Errorf("no selection for exit condition %q", variant.NiceName)
}

func resolveOptions(c catalog.Category, variant catalog.Variant, config map[string]string) (conf.Values, error) {
	if variant.Category != c {
		return nil, fmt.Errorf("%q is a %s, not a %s", variant.NiceName, variant.Category, c)
	}
	return conf.Resolve(variant.Options(), config)
}
