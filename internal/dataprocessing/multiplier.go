package dataprocessing

// identityFactor is the multiplier applied when no directive is pending.
const identityFactor = 1.0

// MultiplierState tracks a pending "mult" directive within one file. The zero
// value has no pending multiplier.
type MultiplierState struct {
	pending bool
	factor  float64
}

// Pending returns the pending factor and whether one is set.
func (s MultiplierState) Pending() (float64, bool) {
	return s.factor, s.pending
}

// OnMultiplier returns the state after a directive. A later directive
// replaces an earlier one that was never consumed.
func (s MultiplierState) OnMultiplier(factor float64) MultiplierState {
	return MultiplierState{pending: true, factor: factor}
}

// OnData returns the factor to apply to a data line and the state after it.
// The pending multiplier is consumed whether or not the line then succeeds.
func (s MultiplierState) OnData() (float64, MultiplierState) {
	if !s.pending {
		return identityFactor, MultiplierState{}
	}
	return s.factor, MultiplierState{}
}
