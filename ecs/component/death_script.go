package component

// DeathScript names a tengo script that runs as the content of the entity's
// death transition. Vars carries script state between frames.
type DeathScript struct {
	Path string
	Vars map[string]any
	// Emitted counts projectiles the script has fired.
	Emitted int
}

var DeathScriptComponent = NewComponent[DeathScript]()
