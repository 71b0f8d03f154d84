package bridge

import (
	"fmt"
	"strconv"
	"strings"
)

var operationModeNames = map[int]string{
	1: "Cooling",
	2: "Heating",
	3: "Auto-thermostat",
	4: "Auto heat-pump",
	5: "Fireplace",
}

var heatingModeNames = map[int]string{
	0: "Off",
	1: "On",
	2: "Emergency operation",
	3: "APX",
}

// scaleEnergy reproduces a portal quirk: energy counters above zero are
// reported scaled by 100, zero and below come through unscaled. The > 0
// boundary is deliberate, an exact 0 is not divided.
func scaleEnergy(value float64) float64 {
	if value > 0 {
		return value / 100
	}

	return value
}

// binaryState normalizes the portal's binary-coded strings: "ON" and "1" mean
// on, anything else means off.
func binaryState(value string) string {
	if value == "ON" || value == "1" {
		return "ON"
	}

	return "OFF"
}

func operationModeText(mode interface{}) string {
	code, err := modeCode(mode)
	if err != nil {
		return "Unavailable"
	}

	if name, ok := operationModeNames[code]; ok {
		return name
	}

	return "Unknown operation mode"
}

func heatingModeText(mode interface{}) string {
	code, err := modeCode(mode)
	if err != nil {
		return "Unavailable"
	}

	if name, ok := heatingModeNames[code]; ok {
		return name
	}

	return "Unknown heating mode"
}

// modeCode coerces a mode field to an int. The portal sends these either as
// JSON numbers or as numeric strings depending on firmware.
func modeCode(value interface{}) (int, error) {
	switch v := value.(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	case string:
		return strconv.Atoi(strings.TrimSpace(v))
	case nil:
		return 0, fmt.Errorf("mode is not set")
	default:
		return 0, fmt.Errorf("unexpected mode type %T", value)
	}
}
