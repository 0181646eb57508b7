package path_track

// StateConfig controls dropout handling for vehicle state samples.
type StateConfig struct {
	HoldSeconds float64 `json:"hold_seconds"`
}

// VehicleSample is one platform reading of pose and velocity.
// T is the platform's own timestamp and is carried as data only.
type VehicleSample struct {
	T        float64
	Received bool
	Pose     Pose
	Velocity Velocity
}

// VehicleState is the state handed to the controller for one tick.
//
// It repeats the last received sample while that sample is younger than the
// hold time, and reports its age so stale state can be refused. T is the
// local tick time; SampleT is the platform timestamp of the sample in use.
type VehicleState struct {
	T        float64
	SampleT  float64
	Valid    bool
	Pose     Pose
	Velocity Velocity
	Age      float64
}

// neverSeenAge is the age reported before any sample arrives.
const neverSeenAge = 999

// StateTracker holds the last vehicle sample across dropouts.
type StateTracker struct {
	cfg StateConfig

	last      VehicleSample
	lastValid *float64
}

// NewStateTracker constructs a tracker with the provided configuration.
func NewStateTracker(cfg StateConfig) *StateTracker {
	return &StateTracker{cfg: cfg}
}

// Update ingests the sample for the tick at local time now and returns the
// state for this tick. Age is measured on the local clock only.
func (tr *StateTracker) Update(now float64, s VehicleSample) VehicleState {
	if s.Received {
		tr.last = s
		tr.lastValid = &now
		return VehicleState{T: now, SampleT: s.T, Valid: true, Pose: s.Pose, Velocity: s.Velocity}
	}

	age := float64(neverSeenAge)
	if tr.lastValid != nil {
		age = now - *tr.lastValid
	}
	return VehicleState{
		T:        now,
		SampleT:  tr.last.T,
		Valid:    tr.lastValid != nil && age >= 0 && age <= tr.cfg.HoldSeconds,
		Pose:     tr.last.Pose,
		Velocity: tr.last.Velocity,
		Age:      age,
	}
}
