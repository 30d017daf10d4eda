package console

import "errors"

// ErrEditingLocked is returned by draft reducers while the gate is closed.
var ErrEditingLocked = errors.New("editing is disabled for this view")

// EditGate is the session-local toggle deciding whether field edits are
// accepted in the current view. It is a UI affordance, not a Permission or
// Capability: it resets with the session, is never persisted, and must not
// be treated as an authorization check when this core is embedded in a
// server or shared-access context.
type EditGate struct {
	enabled bool
}

// Enabled reports whether edits are currently accepted.
func (g *EditGate) Enabled() bool {
	return g.enabled
}

// Toggle flips the gate.
func (g *EditGate) Toggle() {
	g.enabled = !g.enabled
}

// Open enables editing.
func (g *EditGate) Open() {
	g.enabled = true
}

// Close disables editing.
func (g *EditGate) Close() {
	g.enabled = false
}
