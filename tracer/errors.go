package tracer

import "errors"

var (
	ErrTracerClosed = errors.New("tracer: tracer is closed")
	ErrNoTracers    = errors.New("tracer: no tracers attached to pool")
)
