package render

import (
	"errors"
	"fmt"
)

// ErrMalformedFeedback reports a feedback stream that cannot be decoded.
var ErrMalformedFeedback = errors.New("malformed feedback stream")

// Record is one decoded feedback primitive. Each vertex holds Size values
// of the stream's feedback type; Value is set for pass-through markers.
type Record struct {
	Token    float32
	Value    float32
	Vertices [][]float32
}

// Kind names the record's token.
func (r Record) Kind() string {
	switch r.Token {
	case TokenPassThrough:
		return "pass_through"
	case TokenPoint:
		return "point"
	case TokenLine:
		return "line"
	case TokenPolygon:
		return "polygon"
	case TokenBitmap:
		return "bitmap"
	}
	return "unknown"
}

// ParseFeedback decodes values written in feedback mode as typ. It
// returns the records decoded before any error, so an overflowed stream
// still yields its complete prefix.
func ParseFeedback(values []float32, typ FeedbackType) ([]Record, error) {
	size := typ.Size()
	if size == 0 {
		return nil, fmt.Errorf("feedback type %d: %w", int(typ), ErrMalformedFeedback)
	}

	var records []Record
	pos := 0
	take := func(n int) ([][]float32, bool) {
		if pos+n*size > len(values) {
			return nil, false
		}
		vs := make([][]float32, n)
		for i := range vs {
			vs[i] = values[pos : pos+size : pos+size]
			pos += size
		}
		return vs, true
	}

	for pos < len(values) {
		start := pos
		r := Record{Token: values[pos]}
		pos++

		n := 0
		switch r.Token {
		case TokenPassThrough:
			if pos >= len(values) {
				return records, fmt.Errorf("pass-through at %d: %w", start, ErrMalformedFeedback)
			}
			r.Value = values[pos]
			pos++
			records = append(records, r)
			continue
		case TokenPoint, TokenBitmap:
			n = 1
		case TokenLine:
			n = 2
		case TokenPolygon:
			if pos >= len(values) {
				return records, fmt.Errorf("polygon at %d: %w", start, ErrMalformedFeedback)
			}
			n = int(values[pos])
			pos++
		default:
			return records, fmt.Errorf("token %g at %d: %w", r.Token, start, ErrMalformedFeedback)
		}

		vs, ok := take(n)
		if !ok {
			return records, fmt.Errorf("%s at %d: %w", r.Kind(), start, ErrMalformedFeedback)
		}
		r.Vertices = vs
		records = append(records, r)
	}
	return records, nil
}
