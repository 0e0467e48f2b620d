package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/softgl/pkg/geom"
	"github.com/Faultbox/softgl/pkg/math"
)

// DirectionalLight is a light at infinity. Direction points towards the light.
type DirectionalLight struct {
	Direction math.Vec3
	Color     geom.Color
}

// SunDirection converts longitude/latitude angles in degrees to a unit
// vector pointing towards the sun. Longitude rotates around Y, latitude is
// the elevation above the horizon.
func SunDirection(longitude, latitude float32) math.Vec3 {
	lon := longitude * math32.Pi / 180
	lat := latitude * math32.Pi / 180

	sinLon, cosLon := math32.Sincos(lon)
	sinLat, cosLat := math32.Sincos(lat)

	return math.Vec3{
		X: cosLat * sinLon,
		Y: sinLat,
		Z: cosLat * cosLon,
	}
}

// NewSun builds a white directional light from longitude and latitude.
func NewSun(longitude, latitude float32) *DirectionalLight {
	return &DirectionalLight{
		Direction: SunDirection(longitude, latitude),
		Color:     geom.Color{R: 1, G: 1, B: 1, A: 1},
	}
}

func (l *DirectionalLight) contribution(n math.Vec3, mat *Material) geom.Color {
	return lambert(n, l.Direction.Normalize(), l.Color, mat)
}
