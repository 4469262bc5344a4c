package game

// SpeedSchedule computes pursuer speed as a step function of the round
// clock: every Interval elapsed steps add one Increment on top of Base.
type SpeedSchedule struct {
	Base      float64 `json:"base"`
	Increment float64 `json:"increment"`
	Interval  int     `json:"interval"`
}

// At returns the speed in effect at the given clock value. Steps before
// the first interval boundary run at Base; a non-positive interval
// disables the ramp entirely.
func (s SpeedSchedule) At(step int) float64 {
	if s.Interval <= 0 || step < 0 {
		return s.Base
	}
	return s.Base + s.Increment*float64(step/s.Interval)
}
