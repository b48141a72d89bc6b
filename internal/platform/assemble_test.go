package platform

import (
	"bytes"
	"strings"
	"testing"

	"gymnarium/internal/catalog"
	"gymnarium/internal/selection"
	"gymnarium/internal/vis"
)

func TestAssembleHeadless(t *testing.T) {
	set := selection.Set{
		Environment:   selection.GymMountainCar{},
		Agent:         selection.RandomAgent{},
		Visualiser:    selection.NoVisualiser{},
		ExitCondition: selection.EpisodesSimulated{CountOfEpisodes: 3},
	}

	assembly, err := Assemble(set, IO{})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	defer assembly.Environment.Close()
	defer assembly.Agent.Close()

	if assembly.Visualiser != nil {
		t.Errorf("headless assembly got a visualiser")
	}
	if got := assembly.Environment.Name(); got != catalog.EnvGymMountainCar.LongName {
		t.Errorf("environment name = %q, want %q", got, catalog.EnvGymMountainCar.LongName)
	}
	if assembly.Exit(assembly.Environment, assembly.Agent, nil, 2, 0) {
		t.Errorf("episode budget 3 fired at episode 2")
	}
	if !assembly.Exit(assembly.Environment, assembly.Agent, nil, 3, 0) {
		t.Errorf("episode budget 3 did not fire at episode 3")
	}
}

func TestAssembleVisualised(t *testing.T) {
	var out bytes.Buffer
	set := selection.Set{
		Environment:   selection.CodeBulletDrive{TrackVisible: true},
		Agent:         selection.InputAgent{},
		Visualiser:    selection.TerminalIn2D{WindowTitle: "t", WindowWidth: 40, WindowHeight: 12},
		ExitCondition: selection.VisualiserClosed{},
	}

	assembly, err := Assemble(set, IO{Out: &out, In: strings.NewReader("")})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	defer assembly.Environment.Close()
	defer assembly.Agent.Close()
	defer assembly.Visualiser.Close()

	if assembly.Visualiser == nil {
		t.Fatalf("visualised assembly got no visualiser")
	}
	if _, ok := assembly.Visualiser.(vis.InputProvider); !ok {
		t.Errorf("terminal visualiser does not provide input")
	}
	if err := assembly.Visualiser.Render(assembly.Environment.(vis.Drawable)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out.Len() == 0 {
		t.Errorf("render produced no output")
	}
}

func TestAssembleExitFollowsVisualiser(t *testing.T) {
	var out bytes.Buffer
	set := selection.Set{
		Environment:   selection.GymMountainCar{},
		Agent:         selection.RandomAgent{},
		Visualiser:    selection.TerminalIn2D{WindowTitle: "t", WindowWidth: 20, WindowHeight: 10},
		ExitCondition: selection.VisualiserClosed{},
	}

	assembly, err := Assemble(set, IO{Out: &out})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	defer assembly.Environment.Close()
	defer assembly.Agent.Close()

	if assembly.Exit(assembly.Environment, assembly.Agent, assembly.Visualiser, 0, 0) {
		t.Errorf("exit fired while the visualiser is open")
	}
	if err := assembly.Visualiser.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !assembly.Exit(assembly.Environment, assembly.Agent, assembly.Visualiser, 0, 0) {
		t.Errorf("exit did not fire after the visualiser closed")
	}
}

func TestAssembleRejectsImpossibleCombinations(t *testing.T) {
	tests := []struct {
		name string
		set  selection.Set
		want string
	}{
		{
			name: "input agent without visualiser",
			set: selection.Set{
				Environment:   selection.GymMountainCar{},
				Agent:         selection.InputAgent{},
				Visualiser:    selection.NoVisualiser{},
				ExitCondition: selection.EpisodesSimulated{CountOfEpisodes: 1},
			},
			want: "input agent",
		},
		{
			name: "visualiser closed exit without visualiser",
			set: selection.Set{
				Environment:   selection.GymMountainCar{},
				Agent:         selection.RandomAgent{},
				Visualiser:    selection.NoVisualiser{},
				ExitCondition: selection.VisualiserClosed{},
			},
			want: "needs a visualiser",
		},
		{
			name: "zero canvas dimension",
			set: selection.Set{
				Environment:   selection.GymMountainCar{},
				Agent:         selection.RandomAgent{},
				Visualiser:    selection.TerminalIn2D{WindowTitle: "t"},
				ExitCondition: selection.EpisodesSimulated{CountOfEpisodes: 1},
			},
			want: "dimension",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Assemble(tt.set, IO{Out: &bytes.Buffer{}})
			if err == nil {
				t.Fatalf("Assemble succeeded, want error containing %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}
