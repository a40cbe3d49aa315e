package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim defines the minimal contract a grid simulation must implement.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
}

// Pausable is implemented by simulations whose ticks can be suspended, either
// by the user or by the simulation itself when it detects an instability.
type Pausable interface {
	Paused() bool
	SetPaused(paused bool)
}

// Describer exposes human-readable status text for a single cell.
type Describer interface {
	Describe(x, y int) (string, bool)
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) Sim

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}
