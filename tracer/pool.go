package tracer

import (
	"fmt"
	"runtime"
	"time"

	"github.com/achilleasa/raycast/log"
	"github.com/achilleasa/raycast/scene"
	"github.com/achilleasa/raycast/types"
)

// Per-tracer statistics for the last traced batch.
type TracerStat struct {
	// The tracer id.
	Id string

	// The block length and the percentage of the batch it represents.
	BlockLen     uint32
	BatchPercent float32

	// Trace time for assigned block.
	TraceTime time.Duration
}

// Statistics for a traced batch.
type BatchStats struct {
	// Individual tracer stats.
	Tracers []TracerStat

	Rays              uint32
	Hits              uint32
	IntersectionTests uint64
	TraversalSteps    uint64

	// Total trace time for the entire batch.
	TraceTime time.Duration
}

// A Pool splits ray batches across a set of tracers and collects their
// results.
type Pool struct {
	logger log.Logger

	tracers   []Tracer
	scheduler BlockScheduler
}

// Create a pool with the given number of cpu tracers. If workers is not
// positive, one tracer per available cpu is started. A nil scheduler
// defaults to the perfect scheduler.
func NewPool(workers int, scheduler BlockScheduler) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	tracers := make([]Tracer, workers)
	for index := range tracers {
		tracers[index] = NewCPUTracer(fmt.Sprintf("cpu-%d", index), 1)
	}
	return NewPoolWithTracers(scheduler, tracers...)
}

// Create a pool that uses the supplied tracers.
func NewPoolWithTracers(scheduler BlockScheduler, tracers ...Tracer) *Pool {
	if scheduler == nil {
		scheduler = PerfectScheduler()
	}
	return &Pool{
		logger:    log.New("tracer pool"),
		tracers:   tracers,
		scheduler: scheduler,
	}
}

// Get the attached tracers.
func (p *Pool) Tracers() []Tracer {
	return p.tracers
}

// Shutdown all attached tracers.
func (p *Pool) Close() {
	for _, tr := range p.tracers {
		tr.Close()
	}
	p.tracers = nil
}

// Trace a batch of rays against target. The returned results are indexed
// like the input rays.
//
// Tracers only read from target, so it must be safe for concurrent queries.
func (p *Pool) Trace(target scene.Primitive, rays []types.Ray, rayT types.Interval) ([]Result, BatchStats, error) {
	if len(p.tracers) == 0 {
		return nil, BatchStats{}, ErrNoTracers
	}

	start := time.Now()
	results := make([]Result, len(rays))
	blockAssignment := p.scheduler.Schedule(p.tracers, uint32(len(rays)))

	doneChan := make(chan uint32, len(p.tracers))
	errChan := make(chan error, len(p.tracers))

	var blockStart uint32
	pending := 0
	for idx, tr := range p.tracers {
		if blockAssignment[idx] == 0 {
			continue
		}
		tr.Enqueue(BlockRequest{
			Target:     target,
			Rays:       rays,
			RayT:       rayT,
			BlockStart: blockStart,
			BlockLen:   blockAssignment[idx],
			Results:    results,
			DoneChan:   doneChan,
			ErrChan:    errChan,
		})
		blockStart += blockAssignment[idx]
		pending++
	}

	var err error
	for ; pending > 0; pending-- {
		select {
		case <-doneChan:
		case err = <-errChan:
		}
	}
	if err != nil {
		return nil, BatchStats{}, err
	}

	stats := p.collectStats(blockAssignment, len(rays))
	stats.TraceTime = time.Since(start)
	p.logger.Debugf("traced %d rays (%d hits) in %d ms", stats.Rays, stats.Hits, stats.TraceTime.Nanoseconds()/1e6)

	return results, stats, nil
}

func (p *Pool) collectStats(blockAssignment []uint32, numRays int) BatchStats {
	stats := BatchStats{
		Tracers: make([]TracerStat, len(p.tracers)),
		Rays:    uint32(numRays),
	}
	for idx, tr := range p.tracers {
		stats.Tracers[idx] = TracerStat{
			Id:       tr.Id(),
			BlockLen: blockAssignment[idx],
		}
		if numRays > 0 {
			stats.Tracers[idx].BatchPercent = 100.0 * float32(blockAssignment[idx]) / float32(numRays)
		}

		// Idle tracers keep the stats of an older batch
		if blockAssignment[idx] == 0 {
			continue
		}
		trStats := tr.Stats()
		stats.Tracers[idx].TraceTime = trStats.TraceTime
		stats.Hits += trStats.Hits
		stats.IntersectionTests += trStats.IntersectionTests
		stats.TraversalSteps += trStats.TraversalSteps
	}
	return stats
}
