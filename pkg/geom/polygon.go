package geom

// Face identifies which side of a polygon faces the viewer.
type Face int

const (
	FaceFront Face = iota
	FaceBack
	FaceFrontAndBack
)

func (f Face) String() string {
	switch f {
	case FaceFront:
		return "front"
	case FaceBack:
		return "back"
	case FaceFrontAndBack:
		return "front_and_back"
	default:
		return "unknown"
	}
}

// MaxPolygonVertices bounds a polygon before clipping.
const MaxPolygonVertices = 32

// PolygonCapacity bounds a polygon after clipping: each clip plane can add
// at most one vertex to a convex polygon.
const PolygonCapacity = MaxPolygonVertices + 6 + MaxUserClipPlanes

// Polygon is an ordered, bounded list of vertices handed from assembly to
// clipping and rendering. It owns copies of its input vertices plus a
// scratch pool for vertices created by clipping, so nothing downstream
// writes back into the assembler's buffer and nothing allocates.
type Polygon struct {
	// Vertices is the current vertex list; clipping may rewrite it.
	Vertices []*Vertex
	Facing   Face
	// Provoking supplies the flat-shaded color.
	Provoking *Vertex

	store   [PolygonCapacity]*Vertex
	alt     [PolygonCapacity]*Vertex
	input   [MaxPolygonVertices]Vertex
	scratch [2 * PolygonCapacity]Vertex
	nInput  int
	nScr    int
	useAlt  bool
}

// Reset empties the polygon.
func (p *Polygon) Reset() {
	p.Vertices = p.store[:0]
	p.Facing = FaceFront
	p.Provoking = nil
	p.nInput = 0
	p.nScr = 0
	p.useAlt = false
}

// Len returns the number of vertices.
func (p *Polygon) Len() int {
	return len(p.Vertices)
}

// AddCopy appends a copy of v and returns the copy.
// It panics if more than MaxPolygonVertices are added.
func (p *Polygon) AddCopy(v *Vertex) *Vertex {
	c := &p.input[p.nInput]
	p.nInput++
	*c = *v
	p.Vertices = append(p.Vertices, c)
	return c
}

// NewVertex hands out a zeroed vertex from the scratch pool, or nil when the
// pool is exhausted.
func (p *Polygon) NewVertex() *Vertex {
	if p.nScr == len(p.scratch) {
		return nil
	}
	v := &p.scratch[p.nScr]
	p.nScr++
	*v = Vertex{}
	return v
}

// Spare returns an empty list backed by whichever fixed array Vertices does
// not currently use, for building the output of one clip pass.
func (p *Polygon) Spare() []*Vertex {
	if p.useAlt {
		return p.store[:0]
	}
	return p.alt[:0]
}

// SetVertices installs a list previously obtained from Spare.
func (p *Polygon) SetVertices(vs []*Vertex) {
	p.Vertices = vs
	p.useAlt = !p.useAlt
}
