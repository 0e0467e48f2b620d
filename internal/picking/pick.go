// Package picking provides the pick matrix, selection buffer decoding and
// ray casting used to identify objects under a window point.
package picking

import (
	"cmp"
	"errors"
	"fmt"
	gomath "math"
	"slices"

	"github.com/Faultbox/softgl/pkg/glerr"
	"github.com/Faultbox/softgl/pkg/math"
	"github.com/Faultbox/softgl/pkg/pipeline"
)

// ErrTruncated reports a selection buffer whose last record is incomplete.
var ErrTruncated = errors.New("truncated hit record")

// PickMatrix returns a matrix that, multiplied in front of the projection,
// maps the width x height window region centered on (x, y) onto the whole
// view volume. Window y grows downward as in the viewport mapping.
func PickMatrix(x, y, width, height float32, vp pipeline.Viewport) (math.Mat4, error) {
	if width <= 0 || height <= 0 {
		return math.Mat4{}, fmt.Errorf("pick region %gx%g: %w", width, height, glerr.ErrInvalidValue)
	}

	center := vp.WindowToNDC(x, y, 0)
	sx := float32(vp.Width) / width
	sy := float32(vp.Height) / height
	return math.Scale(sx, sy, 1).Mul(math.Translate(-center.X, -center.Y, 0)), nil
}

// Hit is one decoded selection record.
type Hit struct {
	Names    []uint32
	MinDepth uint32
	MaxDepth uint32
}

// Near returns the minimum depth as a window depth in [0, 1].
func (h Hit) Near() float32 {
	return float32(float64(h.MinDepth) / gomath.MaxInt32)
}

// Far returns the maximum depth as a window depth in [0, 1].
func (h Hit) Far() float32 {
	return float32(float64(h.MaxDepth) / gomath.MaxInt32)
}

// Name returns the innermost name of the hit, or false for a hit recorded
// with an empty name stack.
func (h Hit) Name() (uint32, bool) {
	if len(h.Names) == 0 {
		return 0, false
	}
	return h.Names[len(h.Names)-1], true
}

// ParseHits decodes the first count records of a selection buffer, nearest
// first. A negative count, as returned after an overflow, decodes the
// records that fit.
func ParseHits(buf []uint32, count int) ([]Hit, error) {
	if count < 0 {
		count = -count
	}

	hits := make([]Hit, 0, count)
	pos := 0
	for i := 0; i < count; i++ {
		if pos+3 > len(buf) {
			return nil, fmt.Errorf("record %d at %d: %w", i, pos, ErrTruncated)
		}
		n := int(buf[pos])
		if pos+3+n > len(buf) {
			return nil, fmt.Errorf("record %d with %d names at %d: %w", i, n, pos, ErrTruncated)
		}
		hits = append(hits, Hit{
			MinDepth: buf[pos+1],
			MaxDepth: buf[pos+2],
			Names:    slices.Clone(buf[pos+3 : pos+3+n]),
		})
		pos += 3 + n
	}

	slices.SortStableFunc(hits, func(a, b Hit) int {
		return cmp.Compare(a.MinDepth, b.MinDepth)
	})
	return hits, nil
}
