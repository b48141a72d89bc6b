package selection

import (
	"fmt"
	"strings"
	"testing"

	"gymnarium/internal/catalog"
)

// scriptedPrompter answers prompts from canned lists and records what it
// was asked.
type scriptedPrompter struct {
	variantAnswers []string
	optionAnswers  map[string]string
	textAnswers    map[string]string
	confirmAnswers map[string]bool

	chooseCalls []chooseCall
}

type chooseCall struct {
	category catalog.Category
	offered  []catalog.Variant
	excluded []catalog.Variant
}

func (s *scriptedPrompter) ChooseVariant(category catalog.Category, offered, excluded []catalog.Variant) (string, error) {
	s.chooseCalls = append(s.chooseCalls, chooseCall{category: category, offered: offered, excluded: excluded})
	if len(s.variantAnswers) == 0 {
		return "", fmt.Errorf("unexpected variant prompt for %s", category)
	}
	answer := s.variantAnswers[0]
	s.variantAnswers = s.variantAnswers[1:]
	return answer, nil
}

func (s *scriptedPrompter) AskOption(d catalog.OptionDescriptor) (string, error) {
	return s.optionAnswers[d.Name], nil
}

func (s *scriptedPrompter) Ask(question, def, noneHint string) (string, error) {
	for key, answer := range s.textAnswers {
		if strings.Contains(question, key) {
			return answer, nil
		}
	}
	return def, nil
}

func (s *scriptedPrompter) Confirm(question string, def bool) (bool, error) {
	for key, answer := range s.confirmAnswers {
		if strings.Contains(question, key) {
			return answer, nil
		}
	}
	return def, nil
}

func TestResolveInteractiveWalksTheFixedOrder(t *testing.T) {
	p := &scriptedPrompter{
		// By index, by short name, by nice name, by long name.
		variantAnswers: []string{"0", "t2d", "Random", "episodes_done_simulating"},
		optionAnswers: map[string]string{
			"window_dimension":  "(40, 12)",
			"count_of_episodes": "5",
		},
		textAnswers: map[string]string{"Seed": "abc"},
	}

	set, policy, err := ResolveInteractive(p)
	if err != nil {
		t.Fatalf("ResolveInteractive: %v", err)
	}

	wantOrder := []catalog.Category{
		catalog.CategoryEnvironment,
		catalog.CategoryVisualiser,
		catalog.CategoryAgent,
		catalog.CategoryExitCondition,
	}
	if len(p.chooseCalls) != len(wantOrder) {
		t.Fatalf("got %d variant prompts, want %d", len(p.chooseCalls), len(wantOrder))
	}
	for i, call := range p.chooseCalls {
		if call.category != wantOrder[i] {
			t.Errorf("prompt %d was for %s, want %s", i, call.category, wantOrder[i])
		}
	}

	if set.Environment.Available() != catalog.EnvGymMountainCar {
		t.Errorf("environment = %v, want index 0 (mountain car)", set.Environment.Available())
	}
	terminal, ok := set.Visualiser.(TerminalIn2D)
	if !ok {
		t.Fatalf("visualiser = %T, want TerminalIn2D", set.Visualiser)
	}
	if terminal.WindowWidth != 40 || terminal.WindowHeight != 12 {
		t.Errorf("dimensions = (%d, %d), want (40, 12)", terminal.WindowWidth, terminal.WindowHeight)
	}
	// Empty answer takes the declared default.
	if terminal.WindowTitle != "Gymnarium Application" {
		t.Errorf("title = %q, want the default", terminal.WindowTitle)
	}
	if exit := set.ExitCondition.(EpisodesSimulated); exit.CountOfEpisodes != 5 {
		t.Errorf("episode budget = %d, want 5", exit.CountOfEpisodes)
	}

	if policy.Seed != "abc" {
		t.Errorf("seed = %q, want abc", policy.Seed)
	}
	if !policy.ResetEnvironmentOnDone || policy.ResetAgentOnDone {
		t.Errorf("reset policy = %+v, want env yes, agent no", policy)
	}
}

func TestResolveInteractiveFiltersOffers(t *testing.T) {
	p := &scriptedPrompter{
		variantAnswers: []string{"g_mc", "none", "rand", "epsdone"},
	}

	if _, _, err := ResolveInteractive(p); err != nil {
		t.Fatalf("ResolveInteractive: %v", err)
	}

	// With no visualiser the input agent and the visualiser-closed exit
	// must not be offered.
	agents := p.chooseCalls[2]
	if len(agents.offered) != 1 || agents.offered[0] != catalog.AgentRandom {
		t.Errorf("offered agents = %v, want only Random", agents.offered)
	}
	if len(agents.excluded) != 1 || agents.excluded[0] != catalog.AgentInput {
		t.Errorf("excluded agents = %v, want Input", agents.excluded)
	}
	exits := p.chooseCalls[3]
	if len(exits.offered) != 1 || exits.offered[0] != catalog.ExitEpisodesSimulated {
		t.Errorf("offered exits = %v, want only the episode budget", exits.offered)
	}
}

func TestResolveInteractiveStorePathsFollowLoadPaths(t *testing.T) {
	p := &scriptedPrompter{
		variantAnswers: []string{"g_mc", "none", "rand", "epsdone"},
		textAnswers:    map[string]string{"ENVIRONMENT be loaded": "env.ron"},
	}

	_, policy, err := ResolveInteractive(p)
	if err != nil {
		t.Fatalf("ResolveInteractive: %v", err)
	}
	if policy.EnvironmentLoadPath != "env.ron" {
		t.Errorf("load path = %q, want env.ron", policy.EnvironmentLoadPath)
	}
	if policy.EnvironmentStorePath != "env.ron" {
		t.Errorf("store path = %q, want it to default to the load path", policy.EnvironmentStorePath)
	}
	if policy.AgentStorePath != "" {
		t.Errorf("agent store path = %q, want empty", policy.AgentStorePath)
	}
}

func TestResolveInteractiveRejectsBadChoices(t *testing.T) {
	tests := []struct {
		name    string
		answers []string
		want    string
	}{
		{name: "index out of range", answers: []string{"7"}, want: "out of range"},
		{name: "unknown alias", answers: []string{"holodeck"}, want: "holodeck"},
		{name: "excluded alias", answers: []string{"g_mc", "none", "input"}, want: "not compatible"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &scriptedPrompter{variantAnswers: tt.answers}
			_, _, err := ResolveInteractive(p)
			if err == nil {
				t.Fatalf("ResolveInteractive succeeded, want error containing %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}
