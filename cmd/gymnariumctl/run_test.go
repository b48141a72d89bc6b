package main

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"gymnarium/internal/runconfig"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestApplyRunFlagsOverridesOnlyChangedValues(t *testing.T) {
	cmd := newRunCmd(discardLogger)
	err := cmd.Flags().Parse([]string{
		"-e", "g_mc",
		"-f", "goal_velocity=0.02",
		"-r",
		"-q",
		"--seed", "fixed",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	spec := runconfig.Default()
	applyRunFlags(cmd, spec)

	if spec.Environment.Name != "g_mc" {
		t.Errorf("environment = %q, want g_mc", spec.Environment.Name)
	}
	if spec.Environment.Configuration != "goal_velocity=0.02" {
		t.Errorf("environment configuration = %q", spec.Environment.Configuration)
	}
	if spec.ResetEnvironmentOnDone {
		t.Errorf("-r did not disable the environment reset")
	}
	if !spec.ResetAgentOnDone {
		t.Errorf("-q did not enable the agent reset")
	}
	if spec.Seed != "fixed" {
		t.Errorf("seed = %q, want fixed", spec.Seed)
	}
	// Untouched flags must not clobber the defaults.
	if spec.Agent.Name != "random" || spec.Visualiser.Name != "none" {
		t.Errorf("defaults clobbered: agent %q, visualiser %q", spec.Agent.Name, spec.Visualiser.Name)
	}
}

func TestRunCommandHeadless(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"run",
		"-e", "cb_drive",
		"-y", "count_of_episodes=1",
		"-s", "cli-test",
		"--log-level", "error",
	})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out.String(), "episodes") {
		t.Errorf("output = %q, want the run report", out.String())
	}
}

func TestRunCommandRejectsUnknownEnvironment(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"run", "-e", "holodeck"})

	err := root.Execute()
	if err == nil {
		t.Fatalf("Execute accepted an unknown environment")
	}
	if !strings.Contains(err.Error(), "holodeck") {
		t.Errorf("error = %q, want it to name the input", err)
	}
}

func TestRunCommandRejectsIncompatibleChoices(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"run", "-e", "g_mc", "-x", "visclosed"})

	err := root.Execute()
	if err == nil {
		t.Fatalf("Execute accepted an exit condition that needs a visualiser")
	}
	if !strings.Contains(err.Error(), "not compatible") {
		t.Errorf("error = %q, want a compatibility error", err)
	}
}
