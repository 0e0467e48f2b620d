package pipeline

import (
	"fmt"

	"github.com/Faultbox/softgl/pkg/glerr"
)

// Map2 defines a two-dimensional evaluator map.
func (p *Pipeline) Map2(c Channel, u1, u2 float32, uStride, uOrder int,
	v1, v2 float32, vStride, vOrder int, points []float32) error {
	if err := p.outside("map2"); err != nil {
		return err
	}
	return p.eval.Map2(c, u1, u2, uStride, uOrder, v1, v2, vStride, vOrder, points)
}

// MapGrid2 defines the grid EvalMesh2 walks.
func (p *Pipeline) MapGrid2(nu int, u1, u2 float32, nv int, v1, v2 float32) error {
	if err := p.outside("map grid2"); err != nil {
		return err
	}
	return p.eval.MapGrid2(nu, u1, u2, nv, v1, v2)
}

// EvalCoord2 evaluates the enabled maps at (u, v) and submits the vertex.
// It is only useful between Begin and End.
func (p *Pipeline) EvalCoord2(u, v float32) error {
	return p.eval.Coord(u, v)
}

// EvalMesh2 generates points, line strips or triangle strips over grid
// points i1..i2 and j1..j2.
func (p *Pipeline) EvalMesh2(mode MeshMode, i1, i2, j1, j2 int) error {
	if err := p.outside("eval mesh2"); err != nil {
		return err
	}
	if mode < MeshPoint || mode > MeshFill {
		return fmt.Errorf("eval mesh mode %d: %w", int(mode), glerr.ErrInvalidEnum)
	}
	return p.eval.Mesh(mode, i1, i2, j1, j2)
}
