package world

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"spherewalk/internal/components"
	"spherewalk/internal/engine"
	"spherewalk/internal/gravity"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownSource    = errors.New("unknown gravity source type")
	ErrUnknownColor     = errors.New("unknown color")
	ErrUnknownComponent = errors.New("unknown component type")
	ErrUnknownMesh      = errors.New("unknown mesh")
	ErrUnknownObject    = errors.New("unknown object")
	ErrLayerRange       = errors.New("layer out of range 0-31")
)

// --- YAML types ---

type LevelFile struct {
	Name    string      `yaml:"name"`
	Gravity GravityDef  `yaml:"gravity"`
	Agent   AgentDef    `yaml:"agent"`
	Objects []ObjectDef `yaml:"objects"`
}

type GravityDef struct {
	FallbackUp *[3]float32 `yaml:"fallbackUp,omitempty"`
	Sources    []SourceDef `yaml:"sources"`
}

// SourceDef is one gravity source. Only the fields of its type are read.
type SourceDef struct {
	Type string `yaml:"type"` // uniform, plane or sphere

	// Attach names an object whose position the plane origin or sphere
	// center follows every step.
	Attach string `yaml:"attach,omitempty"`

	Acceleration [3]float32 `yaml:"acceleration,omitempty"`

	Origin   [3]float32 `yaml:"origin,omitempty"`
	Up       [3]float32 `yaml:"up,omitempty"`
	Strength *float32   `yaml:"strength,omitempty"`
	Range    float32    `yaml:"range,omitempty"`

	Center             [3]float32 `yaml:"center,omitempty"`
	InnerFalloffRadius *float32   `yaml:"innerFalloffRadius,omitempty"`
	InnerRadius        *float32   `yaml:"innerRadius,omitempty"`
	OuterRadius        *float32   `yaml:"outerRadius,omitempty"`
	OuterFalloffRadius *float32   `yaml:"outerFalloffRadius,omitempty"`
}

type AgentDef struct {
	Name     string     `yaml:"name"`
	Position [3]float32 `yaml:"position"`
	Radius   float32    `yaml:"radius"`
	Mass     float32    `yaml:"mass"`
	Layer    uint8      `yaml:"layer"`
	Color    string     `yaml:"color"`
}

type ObjectDef struct {
	Name       string      `yaml:"name"`
	Tags       []string    `yaml:"tags,omitempty"`
	Layer      uint8       `yaml:"layer"`
	Position   [3]float32  `yaml:"position"`
	Rotation   [3]float32  `yaml:"rotation"`
	Scale      [3]float32  `yaml:"scale"`
	Components []yaml.Node `yaml:"components"`
}

type componentHeader struct {
	Type string `yaml:"type"`
}

type meshRendererDef struct {
	Mesh  string     `yaml:"mesh"`
	Size  [3]float32 `yaml:"size"`
	Color string     `yaml:"color"`
}

type boxColliderDef struct {
	Size   [3]float32 `yaml:"size"`
	Offset [3]float32 `yaml:"offset"`
}

type sphereColliderDef struct {
	Radius float32    `yaml:"radius"`
	Offset [3]float32 `yaml:"offset"`
}

type rigidbodyDef struct {
	Mass         float32  `yaml:"mass"`
	Bounciness   *float32 `yaml:"bounciness"`
	Friction     *float32 `yaml:"friction"`
	UseGravity   *bool    `yaml:"useGravity"`
	IsKinematic  bool     `yaml:"isKinematic"`
	FloatToSleep bool     `yaml:"floatToSleep"`
	CanSleep     *bool    `yaml:"canSleep"`
}

type scriptDef struct {
	Name  string         `yaml:"name"`
	Props map[string]any `yaml:"props"`
}

// --- Color mapping ---

var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"Pink":      rl.Pink,
	"SkyBlue":   rl.SkyBlue,
	"Lime":      rl.Lime,
	"Magenta":   rl.Magenta,
	"White":     rl.White,
	"LightGray": rl.LightGray,
	"Gray":      rl.Gray,
	"DarkGray":  rl.DarkGray,
	"Black":     rl.Black,
	"Brown":     rl.Brown,
	"Beige":     rl.Beige,
	"Maroon":    rl.Maroon,
	"Gold":      rl.Gold,
}

// lookupColor accepts a color name or #rrggbb / #rrggbbaa. Empty means white.
func lookupColor(name string) (rl.Color, error) {
	if name == "" {
		return rl.White, nil
	}
	if c, ok := colorByName[name]; ok {
		return c, nil
	}
	if strings.HasPrefix(name, "#") {
		var r, g, b uint8
		a := uint8(255)
		switch len(name) {
		case 7:
			if _, err := fmt.Sscanf(name, "#%02x%02x%02x", &r, &g, &b); err == nil {
				return rl.Color{R: r, G: g, B: b, A: a}, nil
			}
		case 9:
			if _, err := fmt.Sscanf(name, "#%02x%02x%02x%02x", &r, &g, &b, &a); err == nil {
				return rl.Color{R: r, G: g, B: b, A: a}, nil
			}
		}
	}
	return rl.Color{}, fmt.Errorf("%w %q", ErrUnknownColor, name)
}

func vec3(v [3]float32) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

// --- Loading ---

// LoadLevel reads and parses a level file.
func LoadLevel(path string) (*LevelFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	lf, err := ParseLevel(data)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return lf, nil
}

// ParseLevel decodes level YAML and fills agent defaults.
func ParseLevel(data []byte) (*LevelFile, error) {
	var lf LevelFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parse level: %w", err)
	}
	if lf.Agent.Name == "" {
		lf.Agent.Name = "Agent"
	}
	if lf.Agent.Radius <= 0 {
		lf.Agent.Radius = 0.5
	}
	if lf.Agent.Mass <= 0 {
		lf.Agent.Mass = 1
	}
	return &lf, nil
}

// BuildField creates the gravity field described by the level. A level
// without a fallback axis falls back to world up.
func (lf *LevelFile) BuildField() (*gravity.Field, error) {
	fallback := rl.Vector3{Y: 1}
	if lf.Gravity.FallbackUp != nil {
		fallback = vec3(*lf.Gravity.FallbackUp)
	}
	field := gravity.NewField(fallback)
	for i, def := range lf.Gravity.Sources {
		src, err := def.build()
		if err != nil {
			return nil, fmt.Errorf("gravity source %d: %w", i, err)
		}
		field.Add(src)
	}
	return field, nil
}

func (d SourceDef) build() (gravity.Source, error) {
	switch d.Type {
	case "uniform":
		return gravity.NewUniform(vec3(d.Acceleration)), nil
	case "plane":
		strength := float32(9.81)
		if d.Strength != nil {
			strength = *d.Strength
		}
		return gravity.NewPlane(vec3(d.Origin), vec3(d.Up), strength, d.Range), nil
	case "sphere":
		p := gravity.DefaultSphereParams()
		p.Center = vec3(d.Center)
		if d.Strength != nil {
			p.Strength = *d.Strength
		}
		if d.InnerFalloffRadius != nil {
			p.InnerFalloffRadius = *d.InnerFalloffRadius
		}
		if d.InnerRadius != nil {
			p.InnerRadius = *d.InnerRadius
		}
		if d.OuterRadius != nil {
			p.OuterRadius = *d.OuterRadius
		}
		if d.OuterFalloffRadius != nil {
			p.OuterFalloffRadius = *d.OuterFalloffRadius
		}
		return gravity.NewSphere(p), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownSource, d.Type)
}

// buildObject creates a GameObject and its components from a definition.
func buildObject(def ObjectDef) (*engine.GameObject, error) {
	g := engine.NewGameObject(def.Name)
	g.Tags = def.Tags
	if def.Layer > 31 {
		return nil, fmt.Errorf("object %q: %w: %d", def.Name, ErrLayerRange, def.Layer)
	}
	g.Layer = def.Layer
	g.Transform.Position = vec3(def.Position)
	g.Transform.Rotation = vec3(def.Rotation)

	// Default scale to 1 if zero
	if def.Scale == [3]float32{} {
		g.Transform.Scale = rl.Vector3{X: 1, Y: 1, Z: 1}
	} else {
		g.Transform.Scale = vec3(def.Scale)
	}

	for i := range def.Components {
		node := &def.Components[i]
		var header componentHeader
		if err := node.Decode(&header); err != nil {
			return nil, fmt.Errorf("object %q: %w", def.Name, err)
		}

		var err error
		switch header.Type {
		case "MeshRenderer":
			err = loadMeshRenderer(g, node)
		case "BoxCollider":
			err = loadBoxCollider(g, node)
		case "SphereCollider":
			err = loadSphereCollider(g, node)
		case "Rigidbody":
			err = loadRigidbody(g, node)
		case "Script":
			err = loadScript(g, node)
		default:
			err = fmt.Errorf("%w %q", ErrUnknownComponent, header.Type)
		}
		if err != nil {
			return nil, fmt.Errorf("object %q: %w", def.Name, err)
		}
	}
	return g, nil
}

func loadMeshRenderer(g *engine.GameObject, node *yaml.Node) error {
	var def meshRendererDef
	if err := node.Decode(&def); err != nil {
		return err
	}
	color, err := lookupColor(def.Color)
	if err != nil {
		return err
	}
	var mesh components.MeshType
	switch def.Mesh {
	case "cube", "":
		mesh = components.MeshCube
	case "sphere":
		mesh = components.MeshSphere
	default:
		return fmt.Errorf("%w %q", ErrUnknownMesh, def.Mesh)
	}
	g.AddComponent(components.NewMeshRenderer(mesh, color, vec3(def.Size)))
	return nil
}

func loadBoxCollider(g *engine.GameObject, node *yaml.Node) error {
	var def boxColliderDef
	if err := node.Decode(&def); err != nil {
		return err
	}
	col := components.NewBoxCollider(vec3(def.Size))
	col.Offset = vec3(def.Offset)
	g.AddComponent(col)
	return nil
}

func loadSphereCollider(g *engine.GameObject, node *yaml.Node) error {
	var def sphereColliderDef
	if err := node.Decode(&def); err != nil {
		return err
	}
	col := components.NewSphereCollider(def.Radius)
	col.Offset = vec3(def.Offset)
	g.AddComponent(col)
	return nil
}

func loadRigidbody(g *engine.GameObject, node *yaml.Node) error {
	var def rigidbodyDef
	if err := node.Decode(&def); err != nil {
		return err
	}
	rb := components.NewRigidbody()
	if def.Mass > 0 {
		rb.Mass = def.Mass
	}
	if def.Bounciness != nil {
		rb.Bounciness = *def.Bounciness
	}
	if def.Friction != nil {
		rb.Friction = *def.Friction
	}
	if def.UseGravity != nil {
		rb.UseGravity = *def.UseGravity
	}
	if def.CanSleep != nil {
		rb.CanSleep = *def.CanSleep
	}
	rb.IsKinematic = def.IsKinematic
	rb.FloatToSleep = def.FloatToSleep
	g.AddComponent(rb)
	return nil
}

func loadScript(g *engine.GameObject, node *yaml.Node) error {
	var def scriptDef
	if err := node.Decode(&def); err != nil {
		return err
	}
	comp, err := engine.CreateScript(def.Name, def.Props)
	if err != nil {
		return err
	}
	g.AddComponent(comp)
	return nil
}
