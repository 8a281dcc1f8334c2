package engine

type Component interface {
	Start()
	Update(deltaTime float32)
	SetGameObject(g *GameObject)
	GetGameObject() *GameObject
}

// FixedUpdater is implemented by components that run on the fixed simulation
// step rather than once per rendered frame.
type FixedUpdater interface {
	FixedUpdate(deltaTime float32)
}

// CollisionHandler is implemented by components that want to receive collision callbacks.
// Enter fires on the first step two colliders touch, Stay on every later step
// they remain in contact, Exit on the first step they no longer touch.
type CollisionHandler interface {
	OnCollisionEnter(c Collision)
	OnCollisionStay(c Collision)
	OnCollisionExit(other *GameObject)
}

// BaseComponent provides default implementation for Component interface
type BaseComponent struct {
	gameObject *GameObject
}

func (b *BaseComponent) Start() {}

func (b *BaseComponent) Update(deltaTime float32) {}

func (b *BaseComponent) SetGameObject(g *GameObject) {
	b.gameObject = g
}

func (b *BaseComponent) GetGameObject() *GameObject {
	return b.gameObject
}
