package locomotion

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// projectDirectionOnPlane removes the normal component of direction and
// renormalizes what is left.
func projectDirectionOnPlane(direction, normal rl.Vector3) rl.Vector3 {
	return rl.Vector3Normalize(
		rl.Vector3Subtract(direction, rl.Vector3Scale(normal, rl.Vector3DotProduct(direction, normal))),
	)
}

// moveTowards steps current toward target by at most maxDelta.
func moveTowards(current, target, maxDelta float32) float32 {
	if absf(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}

func clampMagnitude(v rl.Vector2, maxLength float32) rl.Vector2 {
	lengthSqr := v.X*v.X + v.Y*v.Y
	if lengthSqr <= maxLength*maxLength {
		return v
	}
	scale := maxLength / float32(math.Sqrt(float64(lengthSqr)))
	return rl.Vector2{X: v.X * scale, Y: v.Y * scale}
}

func isFinite(v rl.Vector3) bool {
	for _, c := range [3]float32{v.X, v.Y, v.Z} {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
