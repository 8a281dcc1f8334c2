package engine

import (
	"fmt"
	"slices"
)

// ScriptFactory creates a Component from level-file props.
type ScriptFactory func(props map[string]any) (Component, error)

var scriptRegistry = map[string]ScriptFactory{}

// RegisterScript registers a named script factory. Registering a name twice panics.
func RegisterScript(name string, factory ScriptFactory) {
	if _, exists := scriptRegistry[name]; exists {
		panic(fmt.Sprintf("script %q already registered", name))
	}
	scriptRegistry[name] = factory
}

// CreateScript looks up a registered script by name and creates it with the given props.
func CreateScript(name string, props map[string]any) (Component, error) {
	factory, ok := scriptRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown script %q", name)
	}
	c, err := factory(props)
	if err != nil {
		return nil, fmt.Errorf("script %q: %w", name, err)
	}
	return c, nil
}

// GetRegisteredScripts returns a sorted list of all registered script names.
func GetRegisteredScripts() []string {
	names := make([]string, 0, len(scriptRegistry))
	for name := range scriptRegistry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// PropFloat reads a numeric prop. YAML and JSON decoders disagree on integer
// vs float types, so every numeric kind is accepted.
func PropFloat(props map[string]any, key string, def float32) float32 {
	switch v := props[key].(type) {
	case float64:
		return float32(v)
	case float32:
		return v
	case int:
		return float32(v)
	case int64:
		return float32(v)
	}
	return def
}

// PropVector3 reads a 3-element numeric list prop.
func PropVector3(props map[string]any, key string, def [3]float32) [3]float32 {
	list, ok := props[key].([]any)
	if !ok || len(list) != 3 {
		return def
	}
	out := def
	for i, item := range list {
		out[i] = PropFloat(map[string]any{"v": item}, "v", def[i])
	}
	return out
}
