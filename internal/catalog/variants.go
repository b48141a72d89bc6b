package catalog

// Environment variants.
var (
	EnvGymMountainCar = Variant{
		Category:  CategoryEnvironment,
		NiceName:  "Gym MountainCar",
		LongName:  "gym_mountaincar",
		ShortName: "g_mc",
	}
	EnvCodeBulletDrive = Variant{
		Category:  CategoryEnvironment,
		NiceName:  "Code Bullet AI Learns to DRIVE",
		LongName:  "code_bullet_ai_learns_to_drive",
		ShortName: "cb_drive",
	}
)

// Agent variants.
var (
	AgentRandom = Variant{
		Category:  CategoryAgent,
		NiceName:  "Random",
		LongName:  "random",
		ShortName: "rand",
	}
	AgentInput = Variant{
		Category:  CategoryAgent,
		NiceName:  "Input",
		LongName:  "input",
		ShortName: "inp",
	}
)

// Visualiser variants.
var (
	VisNone = Variant{
		Category:  CategoryVisualiser,
		NiceName:  "None",
		LongName:  "none",
		ShortName: "none",
	}
	VisTerminalIn2D = Variant{
		Category:  CategoryVisualiser,
		NiceName:  "Terminal in 2D",
		LongName:  "terminal2d",
		ShortName: "t2d",
	}
)

// Exit condition variants.
var (
	ExitEpisodesSimulated = Variant{
		Category:  CategoryExitCondition,
		NiceName:  "episodes done simulating",
		LongName:  "episodes_done_simulating",
		ShortName: "epsdone",
	}
	ExitVisualiserClosed = Variant{
		Category:  CategoryExitCondition,
		NiceName:  "visualiser is closed",
		LongName:  "visualiser_is_closed",
		ShortName: "visclosed",
	}
)

var variantsByCategory = map[Category][]Variant{
	CategoryEnvironment:   {EnvGymMountainCar, EnvCodeBulletDrive},
	CategoryAgent:         {AgentRandom, AgentInput},
	CategoryVisualiser:    {VisNone, VisTerminalIn2D},
	CategoryExitCondition: {ExitEpisodesSimulated, ExitVisualiserClosed},
}

var gymMountainCarOptions = []OptionDescriptor{
	{
		Name: "goal_velocity",
		Description: "The velocity which the agent has to have at least when he reaches the flag. " +
			"Because the velocity never is negative a value of 0.0 is the off-switch for this.",
		Default: "0.0",
		Kind:    KindFloat,
	},
}

var codeBulletDriveOptions = []OptionDescriptor{
	{
		Name: "sensor_lines_visible",
		Description: "Whether the given sensor lines should be drawn in the visualiser. " +
			"Sometimes it's nice to see what an agent sees.",
		Default: "false",
		Kind:    KindBool,
	},
	{
		Name: "track_visible",
		Description: "Whether the track should be drawn in the visualiser. This set to false " +
			"in addition to \"sensor_lines_visible\" to true simulates the view the agent has.",
		Default: "true",
		Kind:    KindBool,
	},
}

var terminalIn2DOptions = []OptionDescriptor{
	{
		Name:        "window_title",
		Description: "Sets the window title.",
		Default:     "Gymnarium Application",
		Kind:        KindString,
	},
	{
		Name: "window_dimension",
		Description: "Sets the canvas dimensions in character cells. It's important to " +
			"specify them with the parentheses and the comma.",
		Default: "(96, 28)",
		Kind:    KindUintPair,
	},
}

var episodesSimulatedOptions = []OptionDescriptor{
	{
		Name:        "count_of_episodes",
		Description: "The number of episodes to run through before exiting.",
		Default:     "20",
		Kind:        KindUint,
	},
}

// Options returns the option descriptors of the variant. The returned slice
// is shared and must not be modified.
func (v Variant) Options() []OptionDescriptor {
	switch v {
	case EnvGymMountainCar:
		return gymMountainCarOptions
	case EnvCodeBulletDrive:
		return codeBulletDriveOptions
	case VisTerminalIn2D:
		return terminalIn2DOptions
	case ExitEpisodesSimulated:
		return episodesSimulatedOptions
	}
	return nil
}
