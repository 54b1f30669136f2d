package auth

// Gate records whether the persistent store was reachable when the process
// started. It has exactly two states and is written exactly once, before the
// server accepts traffic; there is no transition back to reachable without a
// restart. Request-path reads are synchronous and side-effect free, so no
// locking is needed.
type Gate struct {
	reachable bool
}

// NewGate captures the outcome of the single startup connection attempt.
func NewGate(reachable bool) *Gate {
	return &Gate{reachable: reachable}
}

// Reachable reports the startup-determined database state.
func (g *Gate) Reachable() bool {
	return g.reachable
}
