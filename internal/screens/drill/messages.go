package drill

// timerTickMsg drives the answer countdown. seq ties a tick to the scenario
// it was started for so ticks from an answered scenario are dropped.
type timerTickMsg struct {
	seq int64
}
