package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/achilleasa/raycast/accel"
	"github.com/achilleasa/raycast/config"
	"github.com/achilleasa/raycast/types"
	"github.com/urfave/cli"
)

// Load the options from the global config file (if specified) and apply
// any command-specific overrides.
func loadOptions(ctx *cli.Context) (config.Options, error) {
	opts := config.Default()
	if cfgFile := ctx.GlobalString("config"); cfgFile != "" {
		var err error
		if opts, err = config.Load(cfgFile); err != nil {
			return opts, err
		}
	}

	if ctx.IsSet("structure") {
		kind, err := accel.ParseKind(ctx.String("structure"))
		if err != nil {
			return opts, err
		}
		opts.Structure = kind
	}

	return opts, opts.Validate()
}

// Parse the structure kinds listed in a comma-separated flag value. An empty
// value selects all kinds.
func parseKinds(value string) ([]accel.Kind, error) {
	if value == "" {
		return accel.Kinds(), nil
	}

	var kinds []accel.Kind
	for _, name := range strings.Split(value, ",") {
		kind, err := accel.ParseKind(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

// Parse a vector in "x,y,z" format.
func parseVec3(value string) (types.Vec3, error) {
	tokens := strings.Split(value, ",")
	if len(tokens) != 3 {
		return types.Vec3{}, fmt.Errorf("invalid vector %q; expected x,y,z", value)
	}

	var v types.Vec3
	for index, token := range tokens {
		coord, err := strconv.ParseFloat(strings.TrimSpace(token), 64)
		if err != nil {
			return types.Vec3{}, fmt.Errorf("invalid vector %q: %s", value, err.Error())
		}
		v[index] = coord
	}
	return v, nil
}
