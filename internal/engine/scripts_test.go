package engine

import (
	"errors"
	"testing"
)

// Mock script for testing
type MockScript struct {
	BaseComponent
	Speed  float32
	Offset [3]float32
}

var errBadSpeed = errors.New("speed must be positive")

func mockFactory(props map[string]any) (Component, error) {
	script := &MockScript{
		Speed:  PropFloat(props, "speed", 1),
		Offset: PropVector3(props, "offset", [3]float32{}),
	}
	if script.Speed <= 0 {
		return nil, errBadSpeed
	}
	return script, nil
}

func TestRegisterScript(t *testing.T) {
	// Clear registry for clean test
	scriptRegistry = map[string]ScriptFactory{}

	RegisterScript("MockScript", mockFactory)

	if _, exists := scriptRegistry["MockScript"]; !exists {
		t.Error("Script not registered")
	}
}

func TestRegisterScriptDuplicate(t *testing.T) {
	scriptRegistry = map[string]ScriptFactory{}

	RegisterScript("Duplicate", mockFactory)

	// Should panic on duplicate registration
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic on duplicate registration")
		}
	}()

	RegisterScript("Duplicate", mockFactory)
}

func TestCreateScript(t *testing.T) {
	scriptRegistry = map[string]ScriptFactory{}
	RegisterScript("MockScript", mockFactory)

	// YAML decodes whole numbers as int
	props := map[string]any{
		"speed":  10.5,
		"offset": []any{1, 2.5, -3},
	}

	component, err := CreateScript("MockScript", props)
	if err != nil {
		t.Fatalf("CreateScript returned error: %v", err)
	}

	script, ok := component.(*MockScript)
	if !ok {
		t.Fatal("CreateScript didn't return MockScript")
	}

	if script.Speed != 10.5 {
		t.Errorf("Expected Speed 10.5, got %f", script.Speed)
	}
	if script.Offset != [3]float32{1, 2.5, -3} {
		t.Errorf("Expected Offset [1 2.5 -3], got %v", script.Offset)
	}
}

func TestCreateScriptErrors(t *testing.T) {
	scriptRegistry = map[string]ScriptFactory{}
	RegisterScript("MockScript", mockFactory)

	if _, err := CreateScript("DoesNotExist", nil); err == nil {
		t.Error("CreateScript should fail for non-existent script")
	}

	_, err := CreateScript("MockScript", map[string]any{"speed": -1})
	if !errors.Is(err, errBadSpeed) {
		t.Errorf("Expected wrapped factory error, got %v", err)
	}
}

func TestGetRegisteredScripts(t *testing.T) {
	scriptRegistry = map[string]ScriptFactory{}

	RegisterScript("ScriptC", mockFactory)
	RegisterScript("ScriptA", mockFactory)
	RegisterScript("ScriptB", mockFactory)

	scripts := GetRegisteredScripts()

	if len(scripts) != 3 {
		t.Errorf("Expected 3 scripts, got %d", len(scripts))
	}

	// Verify sorted order
	if scripts[0] != "ScriptA" || scripts[1] != "ScriptB" || scripts[2] != "ScriptC" {
		t.Errorf("Scripts not in sorted order: %v", scripts)
	}
}

func TestPropDefaults(t *testing.T) {
	props := map[string]any{"name": "x", "short": []any{1, 2}}

	if v := PropFloat(props, "missing", 3); v != 3 {
		t.Errorf("Expected default 3, got %f", v)
	}
	if v := PropFloat(props, "name", 4); v != 4 {
		t.Errorf("Expected default 4 for non-numeric prop, got %f", v)
	}
	if v := PropVector3(props, "short", [3]float32{7, 8, 9}); v != [3]float32{7, 8, 9} {
		t.Errorf("Expected default vector for short list, got %v", v)
	}
}
