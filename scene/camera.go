package scene

import (
	"fmt"
	"math"

	"github.com/achilleasa/raycast/types"
)

// Stores the ray directions at the four corners of the camera frustrum. It
// is used as a shortcut for generating per pixel rays via interpolation of
// the corner rays.
type Frustrum [4]types.Vec3

func (fr Frustrum) String() string {
	return fmt.Sprintf(
		"Frustrum Rays:\nTL : (%3.3f, %3.3f, %3.3f)\nTR : (%3.3f, %3.3f, %3.3f)\nBL : (%3.3f, %3.3f, %3.3f)\nBR : (%3.3f, %3.3f, %3.3f)",
		fr[0][0], fr[0][1], fr[0][2],
		fr[1][0], fr[1][1], fr[1][2],
		fr[2][0], fr[2][1], fr[2][2],
		fr[3][0], fr[3][1], fr[3][2],
	)
}

// A pinhole camera that emits one primary ray per pixel.
type Camera struct {
	Position types.Vec3
	LookAt   types.Vec3
	Up       types.Vec3

	// Vertical field of view in degrees.
	FOV float64

	Frustrum Frustrum
}

func NewCamera(fov float64) *Camera {
	return &Camera{
		Position: types.Vec3{0, 0, 0},
		LookAt:   types.Vec3{0, 0, -1},
		Up:       types.Vec3{0, 1, 0},
		FOV:      fov,
	}
}

// Update the frustrum corner rays for the given aspect ratio. It must be
// called after changing any of the camera fields.
func (c *Camera) SetupProjection(aspect float64) {
	dir := c.LookAt.Sub(c.Position).Normalize()
	right := dir.Cross(c.Up).Normalize()
	up := right.Cross(dir)

	halfH := math.Tan(c.FOV * math.Pi / 360.0)
	halfW := halfH * aspect

	c.Frustrum[0] = dir.Sub(right.Mul(halfW)).Add(up.Mul(halfH))
	c.Frustrum[1] = dir.Add(right.Mul(halfW)).Add(up.Mul(halfH))
	c.Frustrum[2] = dir.Sub(right.Mul(halfW)).Sub(up.Mul(halfH))
	c.Frustrum[3] = dir.Add(right.Mul(halfW)).Sub(up.Mul(halfH))
}

// Generate a ray through the center of each pixel of a frameW x frameH
// frame in row-major order starting from the top-left pixel.
func (c *Camera) Rays(frameW, frameH int) []types.Ray {
	if frameW <= 0 || frameH <= 0 {
		return nil
	}
	c.SetupProjection(float64(frameW) / float64(frameH))

	rays := make([]types.Ray, 0, frameW*frameH)
	for y := 0; y < frameH; y++ {
		v := (float64(y) + 0.5) / float64(frameH)
		for x := 0; x < frameW; x++ {
			u := (float64(x) + 0.5) / float64(frameW)
			top := lerp(c.Frustrum[0], c.Frustrum[1], u)
			bottom := lerp(c.Frustrum[2], c.Frustrum[3], u)
			rays = append(rays, types.NewRay(c.Position, lerp(top, bottom, v).Normalize()))
		}
	}
	return rays
}

func lerp(a, b types.Vec3, t float64) types.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
