package homeassistant

type deviceBlock struct {
	Identifiers      []string `json:"identifiers"`
	Manufacturer     string   `json:"manufacturer"`
	Model            string   `json:"model,omitempty"`
	Name             string   `json:"name"`
	ConfigurationUrl string   `json:"configuration_url,omitempty"`
}

type sensorConfiguration struct {
	UniqueId          string       `json:"unique_id"`
	Name              string       `json:"name"`
	DeviceClass       string       `json:"device_class,omitempty"`
	StateClass        string       `json:"state_class,omitempty"`
	StateTopic        string       `json:"state_topic"`
	AvailabilityTopic string       `json:"availability_topic"`
	UnitOfMeasurement string       `json:"unit_of_measurement,omitempty"`
	Device            *deviceBlock `json:"device,omitempty"`
}
