package config

import "errors"

var (
	ErrUnknownStructure  = errors.New("config: unknown acceleration structure")
	ErrInvalidGridCells  = errors.New("config: grid cell counts must be positive")
	ErrInvalidKdDepth    = errors.New("config: kd-tree max depth must be in [0, 32]")
	ErrInvalidKdLeafSize = errors.New("config: kd-tree min leaf size must not be negative")
	ErrInvalidKdAxis     = errors.New("config: unknown kd-tree split axis policy")
	ErrInvalidKdUniverse = errors.New("config: invalid kd-tree universe")
	ErrInvalidKdEpsilon  = errors.New("config: kd-tree epsilon must be positive")
	ErrInvalidInterval   = errors.New("config: query interval must satisfy tmin <= tmax")
)
