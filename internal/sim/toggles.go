package sim

// Toggles are the runtime switches flipped by input.
type Toggles struct {
	DrawTrails    bool
	DrawPendulums bool
	Damping       bool
}

// Command is a discrete input event.
type Command int

const (
	CmdReset Command = iota
	CmdSpawnOne
	CmdSpawnMany
	CmdToggleTrails
	CmdTogglePendulums
	CmdToggleDamping
)

var commandNames = [...]string{
	CmdReset:           "reset",
	CmdSpawnOne:        "spawn_one",
	CmdSpawnMany:       "spawn_many",
	CmdToggleTrails:    "toggle_trails",
	CmdTogglePendulums: "toggle_pendulums",
	CmdToggleDamping:   "toggle_damping",
}

func (c Command) String() string {
	if c < 0 || int(c) >= len(commandNames) {
		return "unknown"
	}
	return commandNames[c]
}

// KeyCommands maps the keyboard layout shared by every front end.
var KeyCommands = map[string]Command{
	"r": CmdReset,
	"s": CmdSpawnOne,
	"w": CmdSpawnMany,
	"a": CmdToggleTrails,
	"p": CmdTogglePendulums,
	"d": CmdToggleDamping,
}
