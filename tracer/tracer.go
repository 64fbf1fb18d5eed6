package tracer

import (
	"time"

	"github.com/achilleasa/raycast/scene"
	"github.com/achilleasa/raycast/types"
)

// A unit of work that is processed by a tracer.
type BlockRequest struct {
	// The primitive (usually a world or acceleration structure) that rays
	// are traced against.
	Target scene.Primitive

	// The ray batch and the valid parameter range for each ray.
	Rays []types.Ray
	RayT types.Interval

	// Block start offset and length into the ray batch.
	BlockStart uint32
	BlockLen   uint32

	// Per-ray results; the tracer only writes the slots inside its block.
	Results []Result

	// A channel to signal on block completion with the number of traced rays.
	DoneChan chan<- uint32

	// A channel to signal if an error occurs.
	ErrChan chan<- error
}

// The outcome of tracing a single ray.
type Result struct {
	Hit    bool
	Record scene.HitRecord
}

// Tracer statistics for the last processed block.
type Stats struct {
	// The traced block length.
	BlockLen uint32

	// Number of rays in the block that hit something.
	Hits uint32

	// Counters accumulated over all rays in the block.
	IntersectionTests uint64
	TraversalSteps    uint64

	// The time for tracing this block.
	TraceTime time.Duration
}

type Tracer interface {
	// Get tracer id.
	Id() string

	// Get the computation speed estimate compared to the baseline
	// single-goroutine implementation.
	Speed() uint32

	// Shutdown and cleanup tracer.
	Close()

	// Enqueue block request.
	Enqueue(BlockRequest)

	// Retrieve last block statistics.
	Stats() *Stats
}
