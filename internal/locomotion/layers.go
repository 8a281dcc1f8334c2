package locomotion

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// LayerMask is a bit set of layers.
type LayerMask uint32

const (
	NoLayers  LayerMask = 0
	AllLayers LayerMask = 0xFFFFFFFF
)

// MaskOf builds a mask from layer indices.
func MaskOf(layers ...Layer) LayerMask {
	var m LayerMask
	for _, l := range layers {
		m |= 1 << (l & 31)
	}
	return m
}

// Contains reports whether layer is in the mask.
func (m LayerMask) Contains(layer Layer) bool {
	return m&(1<<(layer&31)) != 0
}

// UnmarshalYAML accepts "all", "none", a single layer index or a list of
// layer indices.
func (m *LayerMask) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		switch value.Value {
		case "all":
			*m = AllLayers
			return nil
		case "none", "":
			*m = NoLayers
			return nil
		}
		var layer int
		if err := value.Decode(&layer); err != nil {
			return fmt.Errorf("layer mask: %w", err)
		}
		return m.setLayers([]int{layer})
	case yaml.SequenceNode:
		var layers []int
		if err := value.Decode(&layers); err != nil {
			return fmt.Errorf("layer mask: %w", err)
		}
		return m.setLayers(layers)
	}
	return fmt.Errorf("layer mask: unsupported yaml node at line %d", value.Line)
}

func (m *LayerMask) setLayers(layers []int) error {
	var out LayerMask
	for _, l := range layers {
		if l < 0 || l > 31 {
			return fmt.Errorf("layer mask: layer %d out of range [0, 31]", l)
		}
		out |= 1 << l
	}
	*m = out
	return nil
}
