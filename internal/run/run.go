// Package run drives one simulation: it owns the concrete environment,
// agent and optional visualiser for the duration of a run and executes
// the choose/step/process loop until an exit condition fires.
package run

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"gymnarium/internal/agent"
	"gymnarium/internal/env"
	"gymnarium/internal/vis"
)

// State names the phase of a run.
type State int

const (
	StateInitializing State = iota
	StateRunning
	StateDraining
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Seed is the byte seed handed to the environment and the agent before
// their first reset.
type Seed []byte

// SeedFromString turns user-supplied text into a Seed.
func SeedFromString(s string) Seed {
	return Seed(s)
}

// RandomSeed draws a fresh seed for runs that did not supply one.
func RandomSeed() Seed {
	id := uuid.New()
	return Seed(id[:])
}

func (s Seed) String() string {
	return hex.EncodeToString(s)
}

// An ExitCondition reports whether the run loop should stop. It is
// evaluated at the top of every iteration with the current counters; the
// visualiser is nil on headless runs.
type ExitCondition func(environment env.Environment, agent agent.Agent, visualiser vis.Visualiser, episode, step uint64) bool

// EpisodesSimulated stops once the episode counter reaches budget.
func EpisodesSimulated(budget uint64) ExitCondition {
	return func(_ env.Environment, _ agent.Agent, _ vis.Visualiser, episode, _ uint64) bool {
		return episode >= budget
	}
}

// VisualiserClosed stops once the visualiser is no longer open.
func VisualiserClosed() ExitCondition {
	return func(_ env.Environment, _ agent.Agent, visualiser vis.Visualiser, _, _ uint64) bool {
		return visualiser == nil || !visualiser.IsOpen()
	}
}

// Options carries the policies for one run.
type Options struct {
	Seed                   Seed
	ResetEnvironmentOnDone bool
	ResetAgentOnDone       bool
	EnvironmentLoadPath    string
	EnvironmentStorePath   string
	AgentLoadPath          string
	AgentStorePath         string
	Logger                 *slog.Logger
}

// Report summarises a finished run.
type Report struct {
	RunID    string
	Seed     Seed
	Episodes uint64
	Steps    uint64
	Elapsed  time.Duration
}

func (r Report) String() string {
	return fmt.Sprintf("run %s finished: %s episodes, %s steps in %s",
		r.RunID,
		humanize.Comma(int64(r.Episodes)),
		humanize.Comma(int64(r.Steps)),
		r.Elapsed.Round(time.Millisecond))
}
