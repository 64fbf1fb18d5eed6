package tracer

import "math"

// The BlockScheduler interface is implemented by all block scheduling algorithms.
type BlockScheduler interface {
	// Split a ray batch into blocks of variable length and assign them to
	// the pool of tracers, possibly using feedback collected from the
	// previously traced batch.
	//
	// This function returns the block length assignment for each tracer
	// in the input list. Assignments always add up to batchLen.
	Schedule(tracers []Tracer, batchLen uint32) []uint32
}

// The naive scheduler splits batches based on the tracer speed estimates.
type naiveScheduler struct{}

// Create a new naive scheduler instance.
func NaiveScheduler() BlockScheduler {
	return &naiveScheduler{}
}

func (sch *naiveScheduler) Schedule(tracers []Tracer, batchLen uint32) []uint32 {
	return speedAssignment(tracers, batchLen)
}

// The perfect scheduler assumes that the volume of tracing work between two
// subsequent batches is approximately the same.
type perfectScheduler struct {
	blockAssignment []uint32
}

// Create a new perfect scheduler instance.
func PerfectScheduler() BlockScheduler {
	return &perfectScheduler{}
}

// When previous batch information is available the scheduler estimates the
// share of tracer w for batch i+1 as:
// w_i+1 = (blockLen,w_i / time,w_i) / Σ(blockLen_i / time_i)
func (sch *perfectScheduler) Schedule(tracers []Tracer, batchLen uint32) []uint32 {
	// If this is the first time we schedule, the number of tracers has
	// changed or some tracer has no usable timing info, fall back to the
	// speed estimates.
	if len(sch.blockAssignment) != len(tracers) || !haveTimings(tracers) {
		sch.blockAssignment = speedAssignment(tracers, batchLen)
		return sch.blockAssignment
	}

	var total float64
	for _, tr := range tracers {
		stats := tr.Stats()
		total += float64(stats.BlockLen) / float64(stats.TraceTime)
	}

	scaler := float64(batchLen) / total
	for idx, tr := range tracers {
		stats := tr.Stats()
		sch.blockAssignment[idx] = uint32(math.Max(1.0, math.Floor(float64(stats.BlockLen)/float64(stats.TraceTime)*scaler)))
	}

	balance(sch.blockAssignment, batchLen)
	return sch.blockAssignment
}

func haveTimings(tracers []Tracer) bool {
	for _, tr := range tracers {
		stats := tr.Stats()
		if stats.BlockLen == 0 || stats.TraceTime <= 0 {
			return false
		}
	}
	return true
}

// Distribute rays proportionally to each tracer's speed estimate.
func speedAssignment(tracers []Tracer, batchLen uint32) []uint32 {
	assignment := make([]uint32, len(tracers))
	if len(tracers) == 0 {
		return assignment
	}

	var total float64
	for _, tr := range tracers {
		total += float64(tr.Speed())
	}
	scaler := float64(batchLen) / total

	for idx, tr := range tracers {
		assignment[idx] = uint32(math.Max(1.0, math.Floor(float64(tr.Speed())*scaler)))
	}

	balance(assignment, batchLen)
	return assignment
}

// Adjust assignments so they add up to batchLen. Missing rays are appended
// to the first tracer; excess rays (caused by the one ray minimum) are
// removed from the last tracers.
func balance(assignment []uint32, batchLen uint32) {
	var scheduled uint32
	for _, rays := range assignment {
		scheduled += rays
	}

	if scheduled <= batchLen {
		assignment[0] += batchLen - scheduled
		return
	}

	excess := scheduled - batchLen
	for idx := len(assignment) - 1; idx >= 0 && excess > 0; idx-- {
		trim := assignment[idx]
		if trim > excess {
			trim = excess
		}
		assignment[idx] -= trim
		excess -= trim
	}
}
