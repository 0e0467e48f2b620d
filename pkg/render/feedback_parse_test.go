package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/softgl/pkg/geom"
)

func TestParseFeedback(t *testing.T) {
	values := []float32{
		TokenPassThrough, 42,
		TokenPoint, 1, 2,
		TokenLine, 0, 0, 3, 4,
		TokenPolygon, 3, 0, 0, 1, 0, 0, 1,
		TokenBitmap, 8, 4,
	}

	records, err := ParseFeedback(values, Feedback2D)
	require.NoError(t, err)

	want := []Record{
		{Token: TokenPassThrough, Value: 42},
		{Token: TokenPoint, Vertices: [][]float32{{1, 2}}},
		{Token: TokenLine, Vertices: [][]float32{{0, 0}, {3, 4}}},
		{Token: TokenPolygon, Vertices: [][]float32{{0, 0}, {1, 0}, {0, 1}}},
		{Token: TokenBitmap, Vertices: [][]float32{{8, 4}}},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}

	kinds := make([]string, len(records))
	for i, r := range records {
		kinds[i] = r.Kind()
	}
	assert.Equal(t, []string{"pass_through", "point", "line", "polygon", "bitmap"}, kinds)
}

func TestParseFeedbackRoundTrip(t *testing.T) {
	f := NewFeedback()
	buf := make([]float32, 32)
	require.NoError(t, f.Enter(buf, len(buf), Feedback3DColor))
	f.PassThrough(7)
	f.Point(windowVertex(1, 2, 0.5, geom.Color{R: 1, A: 1}))
	n := f.Exit()

	records, err := ParseFeedback(buf[:n], Feedback3DColor)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []float32{1, 2, 0.5, 1, 0, 0, 1}, records[1].Vertices[0])
}

func TestParseFeedbackMalformed(t *testing.T) {
	tests := []struct {
		name   string
		values []float32
		parsed int
	}{
		{"unknown token", []float32{TokenPassThrough, 1, 99}, 1},
		{"short point", []float32{TokenPoint, 1}, 0},
		{"missing polygon count", []float32{TokenPolygon}, 0},
		{"short polygon", []float32{TokenPolygon, 3, 0, 0, 1, 0}, 0},
		{"missing pass-through value", []float32{TokenPassThrough}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := ParseFeedback(tt.values, Feedback2D)
			assert.ErrorIs(t, err, ErrMalformedFeedback)
			assert.Len(t, records, tt.parsed)
		})
	}

	_, err := ParseFeedback(nil, FeedbackType(0))
	assert.ErrorIs(t, err, ErrMalformedFeedback)
}
