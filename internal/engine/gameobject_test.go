package engine

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestNewGameObject(t *testing.T) {
	obj := NewGameObject("TestObject")

	if obj.Name != "TestObject" {
		t.Errorf("Expected name 'TestObject', got '%s'", obj.Name)
	}

	if obj.UID == 0 {
		t.Error("UID should not be 0")
	}

	if obj.components == nil {
		t.Error("components slice should be initialized")
	}
}

func TestGameObjectUniqueUIDs(t *testing.T) {
	obj1 := NewGameObject("First")
	obj2 := NewGameObject("Second")
	obj3 := NewGameObject("Third")

	if obj1.UID == obj2.UID {
		t.Error("GameObjects should have unique UIDs")
	}
	if obj2.UID == obj3.UID {
		t.Error("GameObjects should have unique UIDs")
	}
	if obj1.UID == obj3.UID {
		t.Error("GameObjects should have unique UIDs")
	}
}

func TestGameObjectHasTag(t *testing.T) {
	obj := NewGameObject("Test")
	obj.Tags = []string{"enemy", "ai", "dangerous"}

	if !obj.HasTag("enemy") {
		t.Error("HasTag should return true for existing tag")
	}

	if !obj.HasTag("ai") {
		t.Error("HasTag should return true for existing tag")
	}

	if obj.HasTag("player") {
		t.Error("HasTag should return false for non-existent tag")
	}

	// Test empty tags
	obj2 := NewGameObject("Test2")
	if obj2.HasTag("anything") {
		t.Error("HasTag should return false when Tags is nil/empty")
	}
}

func TestGameObjectParentChild(t *testing.T) {
	parent := NewGameObject("Parent")
	child := NewGameObject("Child")

	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("Child.Parent should be set")
	}

	if len(parent.Children) != 1 {
		t.Errorf("Expected 1 child, got %d", len(parent.Children))
	}

	if parent.Children[0] != child {
		t.Error("Child not added to parent's Children slice")
	}
}

func TestGameObjectRemoveChild(t *testing.T) {
	parent := NewGameObject("Parent")
	child1 := NewGameObject("Child1")
	child2 := NewGameObject("Child2")

	parent.AddChild(child1)
	parent.AddChild(child2)

	parent.RemoveChild(child1)

	if len(parent.Children) != 1 {
		t.Errorf("Expected 1 child after removal, got %d", len(parent.Children))
	}

	if parent.Children[0] != child2 {
		t.Error("Wrong child removed")
	}

	if child1.Parent != nil {
		t.Error("Removed child should have nil parent")
	}
}

func TestGameObjectAddComponent(t *testing.T) {
	obj := NewGameObject("Test")
	comp := &BaseComponent{}

	obj.AddComponent(comp)

	if len(obj.components) != 1 {
		t.Errorf("Expected 1 component, got %d", len(obj.components))
	}

	if comp.gameObject != obj {
		t.Error("Component.gameObject should be set")
	}
}

func TestGameObjectGetComponent(t *testing.T) {
	obj := NewGameObject("Test")
	comp := &BaseComponent{}

	obj.AddComponent(comp)

	found := GetComponent[*BaseComponent](obj)
	if found != comp {
		t.Error("GetComponent failed to find component")
	}
}

func TestGameObjectStartCalledOnce(t *testing.T) {
	obj := NewGameObject("Test")

	// First call should set started = true
	obj.Start()
	if !obj.started {
		t.Error("started flag should be true after Start()")
	}

	// Second call should be a no-op (no panic, no re-initialization)
	obj.Start() // Should not panic or cause issues
}

func TestGameObjectFixedUpdateOnlyReachesFixedUpdaters(t *testing.T) {
	obj := NewGameObject("Test")
	fixed := &fixedCounter{}
	obj.AddComponent(&BaseComponent{})
	obj.AddComponent(fixed)

	obj.FixedUpdate(0.01)
	if fixed.calls != 1 {
		t.Errorf("Expected 1 FixedUpdate call, got %d", fixed.calls)
	}

	obj.Active = false
	obj.FixedUpdate(0.01)
	if fixed.calls != 1 {
		t.Error("Inactive GameObject should not run FixedUpdate")
	}
}

type fixedCounter struct {
	BaseComponent
	calls int
}

func (f *fixedCounter) FixedUpdate(deltaTime float32) {
	f.calls++
}

func TestRotationAxesIdentityAndYaw(t *testing.T) {
	axes := RotationAxes(rl.Vector3{})
	if axes[0] != (rl.Vector3{X: 1}) || axes[1] != (rl.Vector3{Y: 1}) || axes[2] != (rl.Vector3{Z: 1}) {
		t.Errorf("Expected identity axes, got %v", axes)
	}

	// A yaw keeps the Y axis fixed and the X and Z axes orthogonal
	axes = RotationAxes(rl.Vector3{Y: 90})
	if rl.Vector3Distance(axes[1], rl.Vector3{Y: 1}) > 1e-5 {
		t.Errorf("Expected Y axis unchanged by yaw, got %v", axes[1])
	}
	if d := rl.Vector3DotProduct(axes[0], axes[2]); d > 1e-5 || d < -1e-5 {
		t.Errorf("Expected orthogonal X/Z axes, dot=%f", d)
	}
	if axes[0].Y > 1e-5 || axes[0].Y < -1e-5 {
		t.Errorf("Expected X axis to stay horizontal, got %v", axes[0])
	}
}
