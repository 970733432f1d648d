// Package transform maps the visible data window to clip space and screen
// positions back to data values.
package transform

import "github.com/go-gl/mathgl/mgl32"

// Identity is used for layers drawn directly in clip space.
var Identity = mgl32.Ident4()

// PriceCamera returns the view-projection for the candle sub-chart. The
// camera looks at the centre of the window; the horizontal half extent is
// padded by half a bar so the edge bodies are not clipped.
func PriceCamera(left, right int, minPrice, maxPrice float64) mgl32.Mat4 {
	return camera(left, right, minPrice, maxPrice)
}

// VolumeCamera returns the view-projection for the volume sub-chart, whose
// vertical range is [0, maxVolume].
func VolumeCamera(left, right int, maxVolume float64) mgl32.Mat4 {
	return camera(left, right, 0, maxVolume)
}

func camera(left, right int, bottom, top float64) mgl32.Mat4 {
	cx := float32(left+right) / 2
	cy := float32(bottom+top) / 2

	view := mgl32.LookAtV(
		mgl32.Vec3{cx, cy, 0},
		mgl32.Vec3{cx, cy, -1},
		mgl32.Vec3{0, 1, 0},
	)

	hx := float32(right-left)/2 + 0.5
	hy := float32(top-bottom) / 2
	if hy == 0 {
		// flat window: keep the matrix invertible and centre the data
		hy = 1
	}
	proj := mgl32.Ortho(-hx, hx, -hy, hy, 0, 1)
	return proj.Mul4(view)
}

// Project applies m to the data space point (x, y) and returns clip
// space coordinates.
func Project(m mgl32.Mat4, x, y float32) (float32, float32) {
	v := m.Mul4x1(mgl32.Vec4{x, y, 0, 1})
	return v.X(), v.Y()
}
