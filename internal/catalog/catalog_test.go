package catalog

import (
	"errors"
	"strings"
	"testing"
)

func TestLookupResolvesEveryAlias(t *testing.T) {
	for _, category := range Categories() {
		for _, want := range Variants(category) {
			for _, alias := range want.Aliases() {
				spellings := []string{
					alias,
					strings.ToUpper(alias),
					strings.ToLower(alias),
					"  " + alias + " ",
				}
				for _, spelling := range spellings {
					got, err := Lookup(category, spelling)
					if err != nil {
						t.Fatalf("Lookup(%v, %q): %v", category, spelling, err)
					}
					if got != want {
						t.Fatalf("Lookup(%v, %q) = %v, want %v", category, spelling, got, want)
					}
				}
			}
		}
	}
}

func TestLookupUnknownName(t *testing.T) {
	_, err := Lookup(CategoryEnvironment, "warehouse")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), `"warehouse"`) {
		t.Fatalf("error should name the input: %v", err)
	}
	if !strings.Contains(err.Error(), "environments") {
		t.Fatalf("error should name the category: %v", err)
	}
}

func TestLookupStaysInsideCategory(t *testing.T) {
	if _, err := Lookup(CategoryAgent, "gym_mountaincar"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("environment name must not resolve as agent, got %v", err)
	}
	if _, err := Lookup(CategoryExitCondition, "t2d"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("visualiser name must not resolve as exit condition, got %v", err)
	}
}

func TestVariantsOrder(t *testing.T) {
	cases := []struct {
		category Category
		want     []Variant
	}{
		{CategoryEnvironment, []Variant{EnvGymMountainCar, EnvCodeBulletDrive}},
		{CategoryAgent, []Variant{AgentRandom, AgentInput}},
		{CategoryVisualiser, []Variant{VisNone, VisTerminalIn2D}},
		{CategoryExitCondition, []Variant{ExitEpisodesSimulated, ExitVisualiserClosed}},
	}
	for _, tc := range cases {
		got := Variants(tc.category)
		if len(got) != len(tc.want) {
			t.Fatalf("Variants(%v) returned %d variants, want %d", tc.category, len(got), len(tc.want))
		}
		for i := range tc.want {
			if got[i] != tc.want[i] {
				t.Fatalf("Variants(%v)[%d] = %v, want %v", tc.category, i, got[i], tc.want[i])
			}
		}
	}
}

func TestOptionDescriptorNames(t *testing.T) {
	cases := []struct {
		variant Variant
		names   []string
	}{
		{EnvGymMountainCar, []string{"goal_velocity"}},
		{EnvCodeBulletDrive, []string{"sensor_lines_visible", "track_visible"}},
		{AgentRandom, nil},
		{AgentInput, nil},
		{VisNone, nil},
		{VisTerminalIn2D, []string{"window_title", "window_dimension"}},
		{ExitEpisodesSimulated, []string{"count_of_episodes"}},
		{ExitVisualiserClosed, nil},
	}
	for _, tc := range cases {
		opts := tc.variant.Options()
		if len(opts) != len(tc.names) {
			t.Fatalf("%v has %d options, want %d", tc.variant, len(opts), len(tc.names))
		}
		for i, name := range tc.names {
			if opts[i].Name != name {
				t.Fatalf("%v option %d is %q, want %q", tc.variant, i, opts[i].Name, name)
			}
		}
	}
}

func TestOptionDescriptorDetails(t *testing.T) {
	goal := EnvGymMountainCar.Options()[0]
	if goal.Default != "0.0" || goal.Kind != KindFloat {
		t.Fatalf("goal_velocity descriptor = %+v", goal)
	}
	dimension := VisTerminalIn2D.Options()[1]
	if dimension.Default != "(96, 28)" || dimension.Kind != KindUintPair {
		t.Fatalf("window_dimension descriptor = %+v", dimension)
	}
	episodes := ExitEpisodesSimulated.Options()[0]
	if episodes.Default != "20" || episodes.Kind != KindUint {
		t.Fatalf("count_of_episodes descriptor = %+v", episodes)
	}
	if episodes.Description == "" {
		t.Fatal("count_of_episodes is missing a description")
	}
}

func TestCategoryText(t *testing.T) {
	cases := []struct {
		category Category
		singular string
		plural   string
		headline string
	}{
		{CategoryEnvironment, "environment", "environments", "Available Environments"},
		{CategoryAgent, "agent", "agents", "Available Agents"},
		{CategoryVisualiser, "visualiser", "visualisers", "Available Visualisers"},
		{CategoryExitCondition, "exit condition", "exit conditions", "Available Exit Conditions"},
	}
	for _, tc := range cases {
		if got := tc.category.String(); got != tc.singular {
			t.Errorf("%d String() = %q, want %q", tc.category, got, tc.singular)
		}
		if got := tc.category.Plural(); got != tc.plural {
			t.Errorf("%d Plural() = %q, want %q", tc.category, got, tc.plural)
		}
		if got := tc.category.Headline(); got != tc.headline {
			t.Errorf("%d Headline() = %q, want %q", tc.category, got, tc.headline)
		}
	}
}
