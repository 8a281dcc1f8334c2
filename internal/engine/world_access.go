package engine

import rl "github.com/gen2brain/raylib-go/raylib"

// Collision describes one contact manifold delivered to a CollisionHandler.
// Normals point away from Other, toward the receiving object.
type Collision struct {
	Other   *GameObject
	Normals []rl.Vector3
}

// RaycastResult holds information about a raycast hit.
// Defined here to avoid circular imports with physics package.
type RaycastResult struct {
	GameObject *GameObject
	Point      rl.Vector3
	Normal     rl.Vector3
	Distance   float32
}

// AllLayers is a layer mask matching every layer.
const AllLayers uint32 = 0xFFFFFFFF

// WorldAccess provides components with access to world-level operations
// without creating circular import dependencies.
type WorldAccess interface {
	GetCollidableObjects() []*GameObject
	SpawnObject(g *GameObject)
	Destroy(g *GameObject)
	Raycast(origin, direction rl.Vector3, maxDistance float32, layerMask uint32) (RaycastResult, bool)
}
