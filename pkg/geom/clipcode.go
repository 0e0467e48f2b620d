package geom

import "github.com/Faultbox/softgl/pkg/math"

// ClipCode is a bitmask of the clip half-spaces a vertex lies outside of.
type ClipCode uint32

// Frustum plane bits, one per side of the canonical view volume.
const (
	ClipLeft   ClipCode = 1 << 0 // x < -w
	ClipRight  ClipCode = 1 << 1 // x > w
	ClipBottom ClipCode = 1 << 2 // y < -w
	ClipTop    ClipCode = 1 << 3 // y > w
	ClipNear   ClipCode = 1 << 4 // z < -w
	ClipFar    ClipCode = 1 << 5 // z > w

	ClipFrustumMask ClipCode = 0x3f
)

// MaxUserClipPlanes is the number of user-defined clip planes.
const MaxUserClipPlanes = 6

// ClipUser0 is the bit of the first user clip plane; plane i uses ClipUser0 << i.
const ClipUser0 ClipCode = 1 << 6

// ClipUserMask covers every user clip plane bit.
const ClipUserMask ClipCode = ((1 << MaxUserClipPlanes) - 1) << 6

// ClipMask covers every clip plane bit.
const ClipMask = ClipFrustumMask | ClipUserMask

// UserPlane returns the bit for user clip plane i.
func UserPlane(i int) ClipCode {
	return ClipUser0 << uint(i)
}

// FrustumCodes classifies a clip-space position against the six frustum planes.
func FrustumCodes(c math.Vec4) ClipCode {
	x, y, z, w := c[0], c[1], c[2], c[3]

	var codes ClipCode
	if x < -w {
		codes |= ClipLeft
	}
	if x > w {
		codes |= ClipRight
	}
	if y < -w {
		codes |= ClipBottom
	}
	if y > w {
		codes |= ClipTop
	}
	if z < -w {
		codes |= ClipNear
	}
	if z > w {
		codes |= ClipFar
	}
	return codes
}
