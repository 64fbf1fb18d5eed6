package reader

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/achilleasa/raycast/asset"
	"github.com/achilleasa/raycast/log"
	"github.com/achilleasa/raycast/scene"
	"github.com/achilleasa/raycast/types"
)

// A Material is attached to every triangle declared after a usemtl
// statement. Only its name is tracked.
type Material struct {
	Name string
}

// ReadOptions control the transformation applied to parsed vertices.
type ReadOptions struct {
	// Added to every vertex after scaling.
	Offset types.Vec3

	// Vertex scale; zero means 1.
	Scale float64
}

// Mesh holds the triangles parsed from a wavefront object file.
type Mesh struct {
	// The first object or group name; the resource path if none is set.
	Name string

	Vertices  []types.Vec3
	Triangles []*scene.Triangle
}

// Get the mesh triangles as primitives.
func (m *Mesh) Primitives() []scene.Primitive {
	prims := make([]scene.Primitive, len(m.Triangles))
	for index, tri := range m.Triangles {
		prims[index] = tri
	}
	return prims
}

type wavefrontReader struct {
	logger log.Logger
	opts   ReadOptions

	mesh *Mesh

	// Materials by name and the currently active material.
	materials   map[string]*Material
	curMaterial *Material

	// Texture and normal coord counts; only used for validating face
	// indices.
	uvCount     int
	normalCount int

	// An error stack that provides additional error information when
	// files include other files.
	errStack []string
}

// Read an OBJ model from a file or URL.
func ReadFile(pathToFile string, opts ReadOptions) (*Mesh, error) {
	if !strings.HasSuffix(strings.ToLower(pathToFile), ".obj") {
		return nil, fmt.Errorf("reader: unsupported file format for %q", pathToFile)
	}

	res, err := asset.NewResource(pathToFile, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	return ReadOBJ(res, opts)
}

// Parse a wavefront OBJ model.
//
// Supported statements are v, f (v, v/vt, v//vn and v/vt/vn forms with
// positive or negative indices), o, g, usemtl and call (includes another
// obj file relative to the current one). Faces with more than three
// vertices are fan-triangulated. Other statements are ignored.
func ReadOBJ(res *asset.Resource, opts ReadOptions) (*Mesh, error) {
	if opts.Scale == 0 {
		opts.Scale = 1
	}

	r := &wavefrontReader{
		logger:    log.New("wavefront reader"),
		opts:      opts,
		mesh:      &Mesh{},
		materials: make(map[string]*Material),
	}

	r.logger.Noticef(`parsing model from "%s"`, res.Path())
	start := time.Now()

	if err := r.parse(res); err != nil {
		return nil, err
	}
	if len(r.mesh.Triangles) == 0 {
		return nil, ErrNoGeometry
	}
	if r.mesh.Name == "" {
		r.mesh.Name = res.Path()
	}

	r.logger.Noticef(
		"parsed %d vertices and %d triangles in %d ms",
		len(r.mesh.Vertices), len(r.mesh.Triangles), time.Since(start).Nanoseconds()/1e6,
	)
	return r.mesh, nil
}

// Generate an error message that also includes any data in the error stack.
func (r *wavefrontReader) emitError(file string, line int, msgFormat string, args ...interface{}) error {
	msg := fmt.Sprintf(msgFormat, args...)
	return fmt.Errorf(
		"%s",
		strings.Trim(
			fmt.Sprintf("reader: %s: line %d: %s\n%s", file, line, msg, strings.Join(r.errStack, "\n")),
			"\n",
		),
	)
}

// Push a frame to the error stack.
func (r *wavefrontReader) pushFrame(msg string) {
	r.errStack = append([]string{msg}, r.errStack...)
}

// Pop a frame from the error stack.
func (r *wavefrontReader) popFrame() {
	r.errStack = r.errStack[1:]
}

func (r *wavefrontReader) parse(res *asset.Resource) error {
	lineNum := 0

	// Included files use 1-based indices relative to the vertices that
	// they define.
	relVertexOffset := len(r.mesh.Vertices)
	relUvOffset := r.uvCount
	relNormalOffset := r.normalCount

	scanner := bufio.NewScanner(res)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "call":
			if len(lineTokens) != 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "%s"; expected 1 argument; got %d`, lineTokens[0], len(lineTokens)-1)
			}

			incRes, err := asset.NewResource(lineTokens[1], res)
			if err != nil {
				return r.emitError(res.Path(), lineNum, err.Error())
			}

			r.pushFrame(fmt.Sprintf("referenced from %s:%d [%s]", res.Path(), lineNum, lineTokens[0]))
			err = r.parse(incRes)
			incRes.Close()
			if err != nil {
				return err
			}
			r.popFrame()
		case "usemtl":
			if len(lineTokens) != 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "usemtl"; expected 1 argument; got %d`, len(lineTokens)-1)
			}

			matName := lineTokens[1]
			mat, exists := r.materials[matName]
			if !exists {
				mat = &Material{Name: matName}
				r.materials[matName] = mat
			}
			r.curMaterial = mat
		case "v":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, err.Error())
			}
			r.mesh.Vertices = append(r.mesh.Vertices, v.Mul(r.opts.Scale).Add(r.opts.Offset))
		case "vt":
			r.uvCount++
		case "vn":
			r.normalCount++
		case "g", "o":
			if len(lineTokens) < 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "%s"; expected 1 argument for object name; got %d`, lineTokens[0], len(lineTokens)-1)
			}
			if r.mesh.Name == "" {
				r.mesh.Name = lineTokens[1]
			}
		case "f":
			if err := r.parseFace(lineTokens, relVertexOffset, relUvOffset, relNormalOffset); err != nil {
				return r.emitError(res.Path(), lineNum, err.Error())
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return r.emitError(res.Path(), lineNum, err.Error())
	}
	return nil
}

// Parse a face definition with three or more vertices and append its
// triangles to the mesh.
func (r *wavefrontReader) parseFace(lineTokens []string, relVertexOffset, relUvOffset, relNormalOffset int) error {
	if len(lineTokens) < 4 {
		return fmt.Errorf(`unsupported syntax for "f"; expected at least 3 arguments; got %d`, len(lineTokens)-1)
	}

	vertices := make([]types.Vec3, 0, len(lineTokens)-1)
	expIndices := 0
	for arg := 0; arg < len(lineTokens)-1; arg++ {
		vTokens := strings.Split(lineTokens[arg+1], "/")

		// The first arg defines the format for the following args
		if arg == 0 {
			expIndices = len(vTokens)
		} else if len(vTokens) != expIndices {
			return fmt.Errorf("expected each face argument to contain %d indices; arg %d contains %d indices", expIndices, arg, len(vTokens))
		}
		if len(vTokens) > 3 {
			return fmt.Errorf("face argument %d contains %d indices; expected at most 3", arg, len(vTokens))
		}

		// Faces must at least define a vertex coord
		if vTokens[0] == "" {
			return fmt.Errorf("face argument %d does not include a vertex index", arg)
		}

		vOffset, err := selectFaceCoordIndex(vTokens[0], len(r.mesh.Vertices), relVertexOffset)
		if err != nil {
			return fmt.Errorf("could not parse vertex coord for face argument %d: %s", arg, err.Error())
		}
		vertices = append(vertices, r.mesh.Vertices[vOffset])

		if expIndices > 1 && vTokens[1] != "" {
			if _, err = selectFaceCoordIndex(vTokens[1], r.uvCount, relUvOffset); err != nil {
				return fmt.Errorf("could not parse tex coord for face argument %d: %s", arg, err.Error())
			}
		}
		if expIndices > 2 && vTokens[2] != "" {
			if _, err = selectFaceCoordIndex(vTokens[2], r.normalCount, relNormalOffset); err != nil {
				return fmt.Errorf("could not parse normal coord for face argument %d: %s", arg, err.Error())
			}
		}
	}

	var mat scene.Material
	if r.curMaterial != nil {
		mat = r.curMaterial
	}

	// Split polygons into a triangle fan around the first vertex
	for index := 1; index+1 < len(vertices); index++ {
		r.mesh.Triangles = append(
			r.mesh.Triangles,
			scene.NewTriangleFromVertices(vertices[0], vertices[index], vertices[index+1], mat),
		)
	}
	return nil
}

// Given an index for a face coord type (vertex, normal, tex) calculate the
// proper offset into the coord list. Wavefront format can also use negative
// indices to reference elements from the end of the coord list.
func selectFaceCoordIndex(indexToken string, coordListLen int, relOffset int) (int, error) {
	index, err := strconv.ParseInt(indexToken, 10, 32)
	if err != nil {
		return -1, err
	}

	var vOffset int
	switch {
	case index < 0:
		vOffset = coordListLen + int(index)
	case index == 0:
		return -1, fmt.Errorf("index 0 is not valid")
	default:
		vOffset = relOffset + int(index-1)
	}
	if vOffset < 0 || vOffset >= coordListLen {
		return -1, fmt.Errorf("index %d out of bounds", index)
	}
	return vOffset, nil
}

// Parse a Vec3 row.
func parseVec3(lineTokens []string) (types.Vec3, error) {
	if len(lineTokens) < 4 {
		return types.Vec3{}, fmt.Errorf(`unsupported syntax for "%s"; expected 3 arguments; got %d`, lineTokens[0], len(lineTokens)-1)
	}

	v := types.Vec3{}
	for tokIdx := 1; tokIdx <= 3; tokIdx++ {
		coord, err := strconv.ParseFloat(lineTokens[tokIdx], 64)
		if err != nil {
			return v, err
		}
		v[tokIdx-1] = coord
	}
	return v, nil
}
