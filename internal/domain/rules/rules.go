// Package rules holds the fixed detection presets.
package rules

// EventRule is an immutable parameter record for the event detector.
type EventRule struct {
	Name               string
	DerivativeZ        float64
	MinGapSec          float64
	ChangepointPenalty float64
}

// presets is the closed set of rule presets. Read-only.
var presets = map[string]EventRule{
	"default":   {Name: "default", DerivativeZ: 2.5, MinGapSec: 5.0, ChangepointPenalty: 8.0},
	"sensitive": {Name: "sensitive", DerivativeZ: 1.8, MinGapSec: 3.0, ChangepointPenalty: 6.0},
	"strict":    {Name: "strict", DerivativeZ: 3.2, MinGapSec: 7.5, ChangepointPenalty: 10.0},
}

// Get returns the named preset, falling back to "default" for unknown names.
func Get(name string) EventRule {
	if r, ok := presets[name]; ok {
		return r
	}
	return presets["default"]
}

// Names lists the available preset names.
func Names() []string {
	out := make([]string, 0, len(presets))
	for name := range presets {
		out = append(out, name)
	}
	return out
}
