package run

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"gymnarium/internal/agent"
	"gymnarium/internal/env"
	"gymnarium/internal/logging"
	"gymnarium/internal/statefile"
	"gymnarium/internal/vis"
)

// Driver executes one run: load or seed the components, loop until the
// exit condition fires, store what was asked for and close everything.
// A Driver is good for exactly one Run call.
type Driver struct {
	environment env.Environment
	agent       agent.Agent
	visualiser  vis.Visualiser
	exit        ExitCondition
	opts        Options

	drawable     vis.Drawable
	envPersist   statefile.Persistable
	agentPersist statefile.Persistable
	interval     time.Duration
	runID        string
	log          *slog.Logger

	mu      sync.Mutex
	state   State
	started bool
}

func NewDriver(environment env.Environment, ag agent.Agent, visualiser vis.Visualiser, exit ExitCondition, opts Options) (*Driver, error) {
	if environment == nil {
		return nil, fmt.Errorf("environment is required")
	}
	if ag == nil {
		return nil, fmt.Errorf("agent is required")
	}
	if exit == nil {
		return nil, fmt.Errorf("exit condition is required")
	}

	d := &Driver{
		environment: environment,
		agent:       ag,
		visualiser:  visualiser,
		exit:        exit,
		opts:        opts,
		runID:       uuid.NewString(),
		state:       StateInitializing,
	}

	if visualiser != nil {
		drawable, ok := environment.(vis.Drawable)
		if !ok {
			return nil, fmt.Errorf("environment %s has no scene to draw", environment.Name())
		}
		d.drawable = drawable
		d.interval = renderInterval(environment)
	}

	if opts.EnvironmentLoadPath != "" || opts.EnvironmentStorePath != "" {
		p, ok := environment.(statefile.Persistable)
		if !ok {
			return nil, fmt.Errorf("environment %s does not support state files", environment.Name())
		}
		d.envPersist = p
	}
	if opts.AgentLoadPath != "" || opts.AgentStorePath != "" {
		p, ok := ag.(statefile.Persistable)
		if !ok {
			return nil, fmt.Errorf("agent %s does not support state files", ag.Name())
		}
		d.agentPersist = p
	}

	d.log = logging.WithComponent(opts.Logger, "driver").With("run_id", d.runID)
	return d, nil
}

// RunID identifies this run in logs and reports.
func (d *Driver) RunID() string {
	return d.runID
}

func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Driver) setState(s State) {
	d.mu.Lock()
	d.state = s
	d.mu.Unlock()
	d.log.Debug("state change", "state", s.String())
}

// Run blocks until the exit condition fires, the context is cancelled or
// a component fails. The returned Report carries the counters reached in
// any of those cases.
func (d *Driver) Run(ctx context.Context) (Report, error) {
	d.mu.Lock()
	if d.started {
		state := d.state
		d.mu.Unlock()
		return Report{}, fmt.Errorf("driver already started (state %s)", state)
	}
	d.started = true
	d.mu.Unlock()

	seed := d.opts.Seed
	if len(seed) == 0 {
		seed = RandomSeed()
	}

	start := time.Now()
	report := func(episodes, steps uint64) Report {
		return Report{
			RunID:    d.runID,
			Seed:     seed,
			Episodes: episodes,
			Steps:    steps,
			Elapsed:  time.Since(start),
		}
	}

	d.log.Debug("initializing",
		"environment", d.environment.Name(),
		"agent", d.agent.Name(),
		"seed", seed.String())

	obs, err := d.initEnvironment(seed)
	if err != nil {
		return report(0, 0), d.finish(err, false)
	}
	if d.visualiser != nil {
		if err := d.visualiser.Render(d.drawable); err != nil {
			return report(0, 0), d.finish(fmt.Errorf("render: %w", err), false)
		}
	}
	if err := d.initAgent(seed); err != nil {
		return report(0, 0), d.finish(err, false)
	}

	d.setState(StateRunning)

	var episode, step, totalSteps uint64
	for {
		if cause := ctx.Err(); cause != nil {
			d.log.Debug("run cancelled", "episodes", episode, "steps", totalSteps)
			return report(episode, totalSteps), d.finish(cause, true)
		}
		if d.exit(d.environment, d.agent, d.visualiser, episode, step) {
			break
		}
		// A window closed under us ends the run no matter which exit
		// condition was picked.
		if d.visualiser != nil && !d.visualiser.IsOpen() {
			d.log.Debug("visualiser closed", "episodes", episode, "steps", totalSteps)
			break
		}

		action, err := d.agent.ChooseAction(obs)
		if err != nil {
			return report(episode, totalSteps), d.finish(fmt.Errorf("choose action: %w", err), false)
		}
		result, err := d.environment.Step(action)
		if err != nil {
			return report(episode, totalSteps), d.finish(fmt.Errorf("step: %w", err), false)
		}
		step++
		totalSteps++
		d.log.Log(ctx, logging.LevelTrace, "stepped",
			"episode", episode, "step", step, "action", int(action),
			"reward", result.Reward, "done", result.Done)

		if err := d.agent.ProcessReward(obs, result.Observation, result.Reward, result.Done); err != nil {
			return report(episode, totalSteps), d.finish(fmt.Errorf("process reward: %w", err), false)
		}
		obs = result.Observation

		if result.Done {
			d.log.Debug("episode done", "episode", episode, "steps", step)
			if d.opts.ResetEnvironmentOnDone {
				obs, err = d.environment.Reset()
				if err != nil {
					return report(episode, totalSteps), d.finish(fmt.Errorf("reset environment: %w", err), false)
				}
				episode++
				step = 0
			}
			if d.opts.ResetAgentOnDone {
				if err := d.agent.Reset(); err != nil {
					return report(episode, totalSteps), d.finish(fmt.Errorf("reset agent: %w", err), false)
				}
			}
		}

		if d.visualiser != nil {
			if err := d.visualiser.Render(d.drawable); err != nil {
				return report(episode, totalSteps), d.finish(fmt.Errorf("render: %w", err), false)
			}
			time.Sleep(d.interval)
		}
	}

	return report(episode, totalSteps), d.finish(nil, true)
}

func (d *Driver) initEnvironment(seed Seed) (env.Observation, error) {
	if d.opts.EnvironmentLoadPath != "" {
		if err := statefile.Load(d.opts.EnvironmentLoadPath, d.envPersist); err != nil {
			return nil, err
		}
		d.log.Debug("environment loaded", "path", d.opts.EnvironmentLoadPath)
		return d.environment.Observation(), nil
	}
	if err := d.environment.Reseed(seed); err != nil {
		return nil, fmt.Errorf("reseed environment: %w", err)
	}
	obs, err := d.environment.Reset()
	if err != nil {
		return nil, fmt.Errorf("reset environment: %w", err)
	}
	return obs, nil
}

func (d *Driver) initAgent(seed Seed) error {
	if d.opts.AgentLoadPath != "" {
		if err := statefile.Load(d.opts.AgentLoadPath, d.agentPersist); err != nil {
			return err
		}
		d.log.Debug("agent loaded", "path", d.opts.AgentLoadPath)
		return nil
	}
	if err := d.agent.Reseed(seed); err != nil {
		return fmt.Errorf("reseed agent: %w", err)
	}
	if err := d.agent.Reset(); err != nil {
		return fmt.Errorf("reset agent: %w", err)
	}
	return nil
}

// finish drains and terminates the run. Stores are skipped when a step
// failed; closing is attempted on every component regardless.
func (d *Driver) finish(primary error, storeAllowed bool) error {
	d.setState(StateDraining)

	var errs []error
	if primary != nil {
		errs = append(errs, primary)
	}
	if storeAllowed {
		if d.opts.AgentStorePath != "" {
			if err := statefile.Store(d.opts.AgentStorePath, d.agentPersist); err != nil {
				errs = append(errs, err)
			} else {
				d.log.Debug("agent stored", "path", d.opts.AgentStorePath)
			}
		}
		if d.opts.EnvironmentStorePath != "" {
			if err := statefile.Store(d.opts.EnvironmentStorePath, d.envPersist); err != nil {
				errs = append(errs, err)
			} else {
				d.log.Debug("environment stored", "path", d.opts.EnvironmentStorePath)
			}
		}
	}
	if err := d.agent.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close agent: %w", err))
	}
	if err := d.environment.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close environment: %w", err))
	}
	if d.visualiser != nil {
		if err := d.visualiser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close visualiser: %w", err))
		}
	}

	d.setState(StateTerminated)
	return errors.Join(errs...)
}

func renderInterval(environment env.Environment) time.Duration {
	fps := 30.0
	if pacer, ok := environment.(env.StepPacer); ok {
		if suggested := pacer.SuggestedStepsPerSecond(); suggested > 0 {
			fps = suggested
		}
	}
	return time.Duration(1000/fps) * time.Millisecond
}
