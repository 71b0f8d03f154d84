package bridge

import "github.com/victorjacobs/go-eplucon/eplucon"

const (
	classTemperature = "temperature"
	classPressure    = "pressure"
	classEnergy      = "energy"
	classPower       = "power"
	classDuration    = "duration"
	classEnum        = "enum"
	classHeat        = "heat"

	stateMeasurement     = "measurement"
	stateTotalIncreasing = "total_increasing"

	unitCelsius = "°C"
	unitRpm     = "rpm"
	unitBar     = "bar"
	unitKwh     = "kWh"
	unitKw      = "kW"
	unitHours   = "h"
	unitPercent = "%"
)

var sensorDefinitions = [...]*sensorDescription{
	temperatureSensor("indoor_temperature", "Indoor Temperature", func(c *eplucon.CommonInfo) *float64 { return c.IndoorTemperature }),
	numberSensor("act_vent_rpm", "Act Vent RPM", "", unitRpm, func(c *eplucon.CommonInfo) *float64 { return c.ActVentRpm }),
	numberSensor("brine_circulation_pump", "Brine Circulation Pump", "", unitPercent, func(c *eplucon.CommonInfo) *float64 { return c.BrineCirculationPump }),
	temperatureSensor("brine_in_temperature", "Brine In Temperature", func(c *eplucon.CommonInfo) *float64 { return c.BrineInTemperature }),
	temperatureSensor("brine_out_temperature", "Brine Out Temperature", func(c *eplucon.CommonInfo) *float64 { return c.BrineOutTemperature }),
	numberSensor("brine_pressure", "Brine Pressure", classPressure, unitBar, func(c *eplucon.CommonInfo) *float64 { return c.BrinePressure }),
	numberSensor("compressor_speed", "Compressor Speed", "", unitRpm, func(c *eplucon.CommonInfo) *float64 { return c.CompressorSpeed }),
	temperatureSensor("condensation_temperature", "Condensation Temperature", func(c *eplucon.CommonInfo) *float64 { return c.CondensationTemperature }),
	temperatureSensor("configured_indoor_temperature", "Configured Indoor Temperature", func(c *eplucon.CommonInfo) *float64 { return c.ConfiguredIndoorTemperature }),
	numberSensor("cv_pressure", "CV Pressure", classPressure, unitBar, func(c *eplucon.CommonInfo) *float64 { return c.CvPressure }),
	energyCounterSensor("energy_delivered", "Energy Delivered", func(c *eplucon.CommonInfo) *float64 { return c.EnergyDelivered }),
	{
		key:         "energy_usage",
		name:        "Energy Usage",
		deviceClass: classEnergy,
		unit:        unitKwh,
		exists:      commonNumberExists(func(c *eplucon.CommonInfo) *float64 { return c.EnergyUsage }),
		value:       commonNumberValue(func(c *eplucon.CommonInfo) *float64 { return c.EnergyUsage }),
	},
	temperatureSensor("evaporation_temperature", "Evaporation Temperature", func(c *eplucon.CommonInfo) *float64 { return c.EvaporationTemperature }),
	scaledEnergyCounterSensor("export_energy", "Export Energy", func(c *eplucon.CommonInfo) *float64 { return c.ExportEnergy }),
	temperatureSensor("heating_in_temperature", "Heating In Temperature", func(c *eplucon.CommonInfo) *float64 { return c.HeatingInTemperature }),
	temperatureSensor("heating_out_temperature", "Heating Out Temperature", func(c *eplucon.CommonInfo) *float64 { return c.HeatingOutTemperature }),
	scaledEnergyCounterSensor("import_energy", "Import Energy", func(c *eplucon.CommonInfo) *float64 { return c.ImportEnergy }),
	temperatureSensor("inverter_temperature", "Inverter Temperature", func(c *eplucon.CommonInfo) *float64 { return c.InverterTemperature }),
	{
		key:         "operating_hours",
		name:        "Operating Hours",
		deviceClass: classDuration,
		stateClass:  stateMeasurement,
		unit:        unitHours,
		exists:      commonNumberExists(func(c *eplucon.CommonInfo) *float64 { return c.OperatingHours }),
		value:       commonNumberValue(func(c *eplucon.CommonInfo) *float64 { return c.OperatingHours }),
	},
	temperatureSensor("outdoor_temperature", "Outdoor Temperature", func(c *eplucon.CommonInfo) *float64 { return c.OutdoorTemperature }),
	temperatureSensor("overheating", "Overheating", func(c *eplucon.CommonInfo) *float64 { return c.Overheating }),
	numberSensor("press_gas_pressure", "Press Gas Pressure", classPressure, unitBar, func(c *eplucon.CommonInfo) *float64 { return c.PressGasPressure }),
	temperatureSensor("press_gas_temperature", "Press Gas Temperature", func(c *eplucon.CommonInfo) *float64 { return c.PressGasTemperature }),
	numberSensor("production_circulation_pump", "Production Circulation Pump", "", unitPercent, func(c *eplucon.CommonInfo) *float64 { return c.ProductionCirculationPump }),
	numberSensor("suction_gas_pressure", "Suction Gas Pressure", classPressure, unitBar, func(c *eplucon.CommonInfo) *float64 { return c.SuctionGasPressure }),
	temperatureSensor("suction_gas_temperature", "Suction Gas Temperature", func(c *eplucon.CommonInfo) *float64 { return c.SuctionGasTemperature }),
	numberSensor("total_active_power", "Total Active Power", classPower, unitKw, func(c *eplucon.CommonInfo) *float64 { return c.TotalActivePower }),
	temperatureSensor("ww_temperature", "WW Temperature", func(c *eplucon.CommonInfo) *float64 { return c.WwTemperature }),
	temperatureSensor("ww_temperature_configured", "WW Temperature Configured", func(c *eplucon.CommonInfo) *float64 { return c.WwTemperatureConfigured }),
	binarySensor("active_requests_ww", "Active WW request", classHeat, func(c *eplucon.CommonInfo) *string { return c.ActiveRequestsWw }),
	binarySensor("dg1", "Direct Outlet (DG1)", "", func(c *eplucon.CommonInfo) *string { return c.Dg1 }),
	binarySensor("sg2", "Mixture Outlet (SG2)", "", func(c *eplucon.CommonInfo) *string { return c.Sg2 }),
	binarySensor("sg3", "Mixture Outlet (SG3)", "", func(c *eplucon.CommonInfo) *string { return c.Sg3 }),
	binarySensor("sg4", "Mixture Outlet (SG4)", "", func(c *eplucon.CommonInfo) *string { return c.Sg4 }),
	{
		key:        "spf",
		name:       "Seasonal Performance Factor (SPF)",
		stateClass: stateMeasurement,
		exists:     commonNumberExists(func(c *eplucon.CommonInfo) *float64 { return c.Spf }),
		value:      commonNumberValue(func(c *eplucon.CommonInfo) *float64 { return c.Spf }),
	},
	{
		key:        "position_expansion_ventil",
		name:       "Position Expansion Ventil",
		stateClass: stateMeasurement,
		unit:       unitPercent,
		exists:     commonNumberExists(func(c *eplucon.CommonInfo) *float64 { return c.PositionExpansionVentil }),
		value:      commonNumberValue(func(c *eplucon.CommonInfo) *float64 { return c.PositionExpansionVentil }),
	},
	{
		key:        "number_of_starts",
		name:       "Number of Starts",
		stateClass: stateTotalIncreasing,
		exists:     commonNumberExists(func(c *eplucon.CommonInfo) *float64 { return c.NumberOfStarts }),
		value:      commonNumberValue(func(c *eplucon.CommonInfo) *float64 { return c.NumberOfStarts }),
	},
	{
		key:         "heating_mode",
		name:        "Heating Mode",
		deviceClass: classEnum,
		exists:      func(device *eplucon.Device) bool { return commonInfo(device) != nil && commonInfo(device).HeatingMode != nil },
		value:       func(device *eplucon.Device) interface{} { return commonInfo(device).HeatingMode },
	},
	binarySensor("warmwater", "Warm Water", classHeat, func(c *eplucon.CommonInfo) *string { return c.Warmwater }),
	binarySensor("alarm_active", "Alarm Active", "", func(c *eplucon.CommonInfo) *string { return c.AlarmActive }),
	binarySensor("current_heating_pump_state", "Current Heating Pump State", "", func(c *eplucon.CommonInfo) *string { return c.CurrentHeatingPumpState }),
	binarySensor("current_heating_state", "Current Heating State", "", func(c *eplucon.CommonInfo) *string { return c.CurrentHeatingState }),
	{
		key:         "operation_mode",
		name:        "Operation Mode",
		deviceClass: classEnum,
		exists:      func(device *eplucon.Device) bool { return commonInfo(device) != nil && commonInfo(device).OperationMode != nil },
		value:       func(device *eplucon.Device) interface{} { return commonInfo(device).OperationMode },
	},
	{
		key:         "heatloading_active",
		name:        "Heatloading Active",
		deviceClass: classEnum,
		exists: func(device *eplucon.Device) bool {
			return device.HeatloadingStatus != nil && device.HeatloadingStatus.HeatloadingActive != nil
		},
		value: func(device *eplucon.Device) interface{} { return device.HeatloadingStatus.HeatloadingActive },
	},
	heatloadingConfigurationSensor("domestic_hot_water", "Domestic Hot Water"),
	heatloadingConfigurationSensor("heatloading_for_heating", "Heatloading for Heating"),
	{
		key:         "operation_mode_text",
		name:        "Operation Mode Text",
		deviceClass: classEnum,
		exists:      func(device *eplucon.Device) bool { return commonInfo(device) != nil && commonInfo(device).OperationMode != nil },
		value:       func(device *eplucon.Device) interface{} { return operationModeText(commonInfo(device).OperationMode) },
	},
	{
		key:         "heating_mode_text",
		name:        "Heating Mode Text",
		deviceClass: classEnum,
		exists:      func(device *eplucon.Device) bool { return commonInfo(device) != nil && commonInfo(device).HeatingMode != nil },
		value:       func(device *eplucon.Device) interface{} { return heatingModeText(commonInfo(device).HeatingMode) },
	},
}

func commonInfo(device *eplucon.Device) *eplucon.CommonInfo {
	if device.RealtimeInfo == nil {
		return nil
	}

	return device.RealtimeInfo.Common
}

func commonNumberExists(field func(*eplucon.CommonInfo) *float64) func(*eplucon.Device) bool {
	return func(device *eplucon.Device) bool {
		return commonInfo(device) != nil && field(commonInfo(device)) != nil
	}
}

func commonNumberValue(field func(*eplucon.CommonInfo) *float64) func(*eplucon.Device) interface{} {
	return func(device *eplucon.Device) interface{} {
		return *field(commonInfo(device))
	}
}

func numberSensor(key string, name string, deviceClass string, unit string, field func(*eplucon.CommonInfo) *float64) *sensorDescription {
	return &sensorDescription{
		key:         key,
		name:        name,
		deviceClass: deviceClass,
		stateClass:  stateMeasurement,
		unit:        unit,
		exists:      commonNumberExists(field),
		value:       commonNumberValue(field),
	}
}

func temperatureSensor(key string, name string, field func(*eplucon.CommonInfo) *float64) *sensorDescription {
	return numberSensor(key, name, classTemperature, unitCelsius, field)
}

func energyCounterSensor(key string, name string, field func(*eplucon.CommonInfo) *float64) *sensorDescription {
	return &sensorDescription{
		key:         key,
		name:        name,
		deviceClass: classEnergy,
		stateClass:  stateTotalIncreasing,
		unit:        unitKwh,
		exists:      commonNumberExists(field),
		value:       commonNumberValue(field),
	}
}

func scaledEnergyCounterSensor(key string, name string, field func(*eplucon.CommonInfo) *float64) *sensorDescription {
	description := energyCounterSensor(key, name, field)
	description.value = func(device *eplucon.Device) interface{} {
		return scaleEnergy(*field(commonInfo(device)))
	}

	return description
}

func binarySensor(key string, name string, deviceClass string, field func(*eplucon.CommonInfo) *string) *sensorDescription {
	return &sensorDescription{
		key:         key,
		name:        name,
		deviceClass: deviceClass,
		exists: func(device *eplucon.Device) bool {
			return commonInfo(device) != nil && field(commonInfo(device)) != nil
		},
		value: func(device *eplucon.Device) interface{} {
			return binaryState(*field(commonInfo(device)))
		},
	}
}

func heatloadingConfigurationSensor(key string, name string) *sensorDescription {
	return &sensorDescription{
		key:         key,
		name:        name,
		deviceClass: classEnum,
		exists: func(device *eplucon.Device) bool {
			if device.HeatloadingStatus == nil || device.HeatloadingStatus.Configurations == nil {
				return false
			}

			_, ok := device.HeatloadingStatus.Configurations[key]

			return ok
		},
		value: func(device *eplucon.Device) interface{} {
			return device.HeatloadingStatus.Configurations[key]
		},
	}
}
