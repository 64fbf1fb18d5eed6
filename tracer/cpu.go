package tracer

import (
	"fmt"
	"sync"
	"time"

	"github.com/achilleasa/raycast/log"
	"github.com/achilleasa/raycast/scene"
)

type cpuTracer struct {
	logger log.Logger

	sync.Mutex

	id    string
	speed uint32

	// A channel for receiving block requests from the pool.
	blockReqChan chan BlockRequest

	// A channel for signaling the worker to exit.
	closeChan chan struct{}

	// Statistics for the last traced block.
	stats *Stats
}

// Create a new tracer that processes blocks on its own goroutine.
func NewCPUTracer(id string, speed uint32) Tracer {
	if speed == 0 {
		speed = 1
	}

	tr := &cpuTracer{
		logger:       log.New(fmt.Sprintf("cpu tracer (%s)", id)),
		id:           id,
		speed:        speed,
		blockReqChan: make(chan BlockRequest, 1),
		closeChan:    make(chan struct{}),
		stats:        &Stats{},
	}
	go tr.worker()

	return tr
}

// Get tracer id.
func (tr *cpuTracer) Id() string {
	return tr.id
}

// Get the computation speed estimate.
func (tr *cpuTracer) Speed() uint32 {
	return tr.speed
}

// Shutdown the tracer worker. Calling Close more than once is a no-op.
func (tr *cpuTracer) Close() {
	tr.Lock()
	defer tr.Unlock()

	if tr.closeChan == nil {
		return
	}

	// Ask the worker to exit and wait for it to ack
	tr.closeChan <- struct{}{}
	<-tr.closeChan
	close(tr.closeChan)
	tr.closeChan = nil
}

// Enqueue block request. Requests sent to a closed tracer are rejected
// through the request error channel.
func (tr *cpuTracer) Enqueue(blockReq BlockRequest) {
	tr.Lock()
	closed := tr.closeChan == nil
	tr.Unlock()

	if closed {
		if blockReq.ErrChan != nil {
			blockReq.ErrChan <- ErrTracerClosed
		}
		return
	}
	tr.blockReqChan <- blockReq
}

// Retrieve last block statistics.
func (tr *cpuTracer) Stats() *Stats {
	return tr.stats
}

func (tr *cpuTracer) worker() {
	tr.logger.Debug("started worker")
	for {
		select {
		case blockReq := <-tr.blockReqChan:
			tr.process(&blockReq)
			if blockReq.DoneChan != nil {
				blockReq.DoneChan <- blockReq.BlockLen
			}
		case <-tr.closeChan:
			tr.logger.Debug("shutting down worker")
			tr.closeChan <- struct{}{}
			return
		}
	}
}

// Trace every ray in the request block and update the tracer stats.
func (tr *cpuTracer) process(blockReq *BlockRequest) {
	start := time.Now()
	stats := Stats{BlockLen: blockReq.BlockLen}

	end := blockReq.BlockStart + blockReq.BlockLen
	for index := blockReq.BlockStart; index < end; index++ {
		var rec scene.HitRecord
		hit := blockReq.Target.Hit(blockReq.Rays[index], blockReq.RayT, &rec)
		blockReq.Results[index] = Result{Hit: hit, Record: rec}

		if hit {
			stats.Hits++
		}
		stats.IntersectionTests += uint64(rec.IntersectionTests)
		stats.TraversalSteps += uint64(rec.TraversalSteps)
	}

	stats.TraceTime = time.Since(start)
	*tr.stats = stats
}
