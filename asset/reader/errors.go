package reader

import "errors"

var (
	ErrNoGeometry = errors.New("reader: no faces defined")
)
