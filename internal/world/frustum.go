package world

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	frustumNear float32 = 0.1
	frustumFar  float32 = 1000.0
)

// Frustum represents the 6 planes of a view frustum for culling
type Frustum struct {
	planes [6]clipPlane // left, right, bottom, top, near, far
}

// clipPlane is ax + by + cz + d = 0 with a unit normal pointing inward.
type clipPlane struct {
	normal   rl.Vector3
	distance float32
}

// ExtractFrustum extracts frustum planes from the camera's view-projection
// matrix using the Gribb/Hartmann method.
func ExtractFrustum(camera rl.Camera3D, aspect float32) Frustum {
	view := rl.MatrixLookAt(camera.Position, camera.Target, camera.Up)

	var proj rl.Matrix
	if camera.Projection == rl.CameraPerspective {
		proj = rl.MatrixPerspective(camera.Fovy*rl.Deg2rad, aspect, frustumNear, frustumFar)
	} else {
		halfH := camera.Fovy / 2.0
		halfW := halfH * aspect
		proj = rl.MatrixOrtho(-halfW, halfW, -halfH, halfH, frustumNear, frustumFar)
	}

	// Combine view and projection: VP = P * V
	vp := rl.MatrixMultiply(view, proj)

	row := func(sign float32, x, y, z, w float32) clipPlane {
		return normalizePlane(clipPlane{
			normal: rl.Vector3{
				X: vp.M3 + sign*x,
				Y: vp.M7 + sign*y,
				Z: vp.M11 + sign*z,
			},
			distance: vp.M15 + sign*w,
		})
	}

	var f Frustum
	f.planes[0] = row(1, vp.M0, vp.M4, vp.M8, vp.M12)   // left
	f.planes[1] = row(-1, vp.M0, vp.M4, vp.M8, vp.M12)  // right
	f.planes[2] = row(1, vp.M1, vp.M5, vp.M9, vp.M13)   // bottom
	f.planes[3] = row(-1, vp.M1, vp.M5, vp.M9, vp.M13)  // top
	f.planes[4] = row(1, vp.M2, vp.M6, vp.M10, vp.M14)  // near
	f.planes[5] = row(-1, vp.M2, vp.M6, vp.M10, vp.M14) // far
	return f
}

func normalizePlane(p clipPlane) clipPlane {
	length := rl.Vector3Length(p.normal)
	if length == 0 {
		return p
	}
	return clipPlane{
		normal:   rl.Vector3Scale(p.normal, 1.0/length),
		distance: p.distance / length,
	}
}

// ContainsSphere tests if a sphere is inside or intersects the frustum
func (f *Frustum) ContainsSphere(center rl.Vector3, radius float32) bool {
	for i := 0; i < 6; i++ {
		dist := rl.Vector3DotProduct(f.planes[i].normal, center) + f.planes[i].distance
		// Completely behind any plane means outside
		if dist < -radius {
			return false
		}
	}
	return true
}

// ContainsPoint tests if a point is inside the frustum
func (f *Frustum) ContainsPoint(point rl.Vector3) bool {
	return f.ContainsSphere(point, 0)
}
