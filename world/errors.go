package world

import "errors"

var (
	ErrNotBuilt = errors.New("world: acceleration structure not built")
)
