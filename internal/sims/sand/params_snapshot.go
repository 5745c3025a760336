package sand

import (
	"strconv"

	"sandfall/internal/core"
)

// Parameters reports the world settings and rule probabilities.
func (w *World) Parameters() core.ParameterSnapshot {
	params := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", w.cfg.Width),
				intParam("h", "Height", w.cfg.Height),
				int64Param("seed", "Seed", w.cfg.Seed),
				{Key: "scene", Label: "Scene", Type: core.ParamTypeString, Value: w.cfg.Scene},
				{Key: "debug", Label: "Debug", Type: core.ParamTypeBool, Value: strconv.FormatBool(w.cfg.Debug)},
			},
		},
		{
			Name: "Fire",
			Params: []core.Parameter{
				floatParam("water_extinguish_chance", "Water extinguish chance", params.WaterExtinguishChance),
				floatParam("burnout_smoke_chance", "Burnout smoke chance", params.BurnoutSmokeChance),
				floatParam("flicker_chance", "Flicker chance", params.FlickerChance),
			},
		},
		{
			Name: "Water",
			Params: []core.Parameter{
				floatParam("wet_chance", "Wet chance", params.WetChance),
			},
		},
		{
			Name: "Lava",
			Params: []core.Parameter{
				floatParam("lava_smoke_chance", "Lava smoke chance", params.LavaSmokeChance),
				floatParam("lava_resolidify_chance", "Lava resolidify chance", params.LavaResolidifyChance),
			},
		},
		{
			Name:    "Movement",
			Summary: "Velocity lost per diagonal or lateral move.",
			Params: []core.Parameter{
				floatParam("diagonal_damping", "Diagonal damping", params.DiagonalDamping),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the tunables adjustable while the world runs.
func (w *World) ParameterControls() []core.ParameterControl {
	prob := func(key, label string, step float64) core.ParameterControl {
		return core.ParameterControl{
			Key: key, Label: label, Type: core.ParamTypeFloat, Step: step,
			Min: 0, Max: 1, HasMin: true, HasMax: true,
		}
	}
	return []core.ParameterControl{
		prob("water_extinguish_chance", "Extinguish", 0.05),
		prob("wet_chance", "Wet", 0.05),
		prob("burnout_smoke_chance", "Burnout smoke", 0.05),
		prob("flicker_chance", "Flicker", 0.05),
		prob("lava_smoke_chance", "Lava smoke", 0.0001),
		prob("lava_resolidify_chance", "Resolidify", 0.05),
		{Key: "diagonal_damping", Label: "Damping", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, HasMin: true},
	}
}

// SetFloatParameter updates a rule probability or the damping factor.
func (w *World) SetFloatParameter(key string, value float64) bool {
	field := w.cfg.Params.floatField(key)
	if field == nil || value < 0 {
		return false
	}
	if key != "diagonal_damping" && value > 1 {
		return false
	}
	*field = value
	w.resolver.damping = w.cfg.Params.DiagonalDamping
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
