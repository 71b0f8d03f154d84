package eplucon

import "encoding/json"

// Device is one e-control module as reported by the portal. The identity
// fields come from the module listing; RealtimeInfo and HeatloadingStatus are
// filled in per refresh cycle. A refreshed Device is always built from
// scratch, never patched in place.
type Device struct {
	Id                 int    `json:"id"`
	Name               string `json:"name"`
	Type               string `json:"type"`
	AccountModuleIndex string `json:"account_module_index"`

	RealtimeInfo      *RealtimeInfo `json:"-"`
	HeatloadingStatus *HeatLoading  `json:"-"`
}

// CommonInfo is the "common" block of get_realtime_info. Every field is
// optional: which ones are present depends on the device model, so absence is
// normal, not an error. Binary-coded states arrive as "ON"/"OFF"/"1"/"0"
// strings; the mode fields arrive either as numbers or numeric strings
// depending on firmware, hence interface{}.
type CommonInfo struct {
	IndoorTemperature           *float64 `json:"indoor_temperature"`
	ConfiguredIndoorTemperature *float64 `json:"configured_indoor_temperature"`
	OutdoorTemperature          *float64 `json:"outdoor_temperature"`
	BrineInTemperature          *float64 `json:"brine_in_temperature"`
	BrineOutTemperature         *float64 `json:"brine_out_temperature"`
	BrinePressure               *float64 `json:"brine_pressure"`
	BrineCirculationPump        *float64 `json:"brine_circulation_pump"`
	HeatingInTemperature        *float64 `json:"heating_in_temperature"`
	HeatingOutTemperature       *float64 `json:"heating_out_temperature"`
	CondensationTemperature     *float64 `json:"condensation_temperature"`
	EvaporationTemperature      *float64 `json:"evaporation_temperature"`
	InverterTemperature         *float64 `json:"inverter_temperature"`
	PressGasTemperature         *float64 `json:"press_gas_temperature"`
	PressGasPressure            *float64 `json:"press_gas_pressure"`
	SuctionGasTemperature       *float64 `json:"suction_gas_temperature"`
	SuctionGasPressure          *float64 `json:"suction_gas_pressure"`
	Overheating                 *float64 `json:"overheating"`
	CvPressure                  *float64 `json:"cv_pressure"`
	CompressorSpeed             *float64 `json:"compressor_speed"`
	ActVentRpm                  *float64 `json:"act_vent_rpm"`
	ProductionCirculationPump   *float64 `json:"production_circulation_pump"`
	PositionExpansionVentil     *float64 `json:"position_expansion_ventil"`
	TotalActivePower            *float64 `json:"total_active_power"`
	EnergyDelivered             *float64 `json:"energy_delivered"`
	EnergyUsage                 *float64 `json:"energy_usage"`
	ExportEnergy                *float64 `json:"export_energy"`
	ImportEnergy                *float64 `json:"import_energy"`
	OperatingHours              *float64 `json:"operating_hours"`
	NumberOfStarts              *float64 `json:"number_of_starts"`
	Spf                         *float64 `json:"spf"`
	WwTemperature               *float64 `json:"ww_temperature"`
	WwTemperatureConfigured     *float64 `json:"ww_temperature_configured"`

	ActiveRequestsWw        *string `json:"active_requests_ww"`
	Warmwater               *string `json:"warmwater"`
	AlarmActive             *string `json:"alarm_active"`
	CurrentHeatingPumpState *string `json:"current_heating_pump_state"`
	CurrentHeatingState     *string `json:"current_heating_state"`
	Dg1                     *string `json:"dg1"`
	Sg2                     *string `json:"sg2"`
	Sg3                     *string `json:"sg3"`
	Sg4                     *string `json:"sg4"`

	OperationMode interface{} `json:"operation_mode"`
	HeatingMode   interface{} `json:"heating_mode"`
}

// RealtimeInfo is the payload of get_realtime_info. The heatpump block has no
// documented schema, so it is carried through as raw JSON.
type RealtimeInfo struct {
	Common   *CommonInfo     `json:"common"`
	Heatpump json.RawMessage `json:"heatpump"`
}

// HeatLoading is the payload of heatloading_status.
type HeatLoading struct {
	HeatloadingActive interface{}            `json:"heatloading_active"`
	Configurations    map[string]interface{} `json:"configurations"`
}
