package cmd

import (
	"testing"

	"github.com/achilleasa/raycast/accel"
	"github.com/achilleasa/raycast/types"
)

func TestParseVec3(t *testing.T) {
	type spec struct {
		in     string
		exp    types.Vec3
		expErr bool
	}
	specs := []spec{
		{"1,2,3", types.XYZ(1, 2, 3), false},
		{" -1.5, 0 ,1e3", types.XYZ(-1.5, 0, 1000), false},
		{"1,2", types.Vec3{}, true},
		{"1,2,x", types.Vec3{}, true},
	}

	for index, s := range specs {
		v, err := parseVec3(s.in)
		if s.expErr {
			if err == nil {
				t.Fatalf("[spec %d] expected an error", index)
			}
			continue
		}
		if err != nil {
			t.Fatalf("[spec %d] unexpected error: %v", index, err)
		}
		if v != s.exp {
			t.Fatalf("[spec %d] expected %v; got %v", index, s.exp, v)
		}
	}
}

func TestParseKinds(t *testing.T) {
	kinds, err := parseKinds("")
	if err != nil || len(kinds) != len(accel.Kinds()) {
		t.Fatalf("expected all kinds; got %v (%v)", kinds, err)
	}

	kinds, err = parseKinds("grid, kdtree")
	if err != nil {
		t.Fatal(err)
	}
	if len(kinds) != 2 || kinds[0] != accel.Grid || kinds[1] != accel.KdTree {
		t.Fatalf("expected [grid kdtree]; got %v", kinds)
	}

	if _, err = parseKinds("bvh,octree"); err == nil {
		t.Fatal("expected an error for unknown structure")
	}
}
