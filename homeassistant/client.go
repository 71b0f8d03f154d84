package homeassistant

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/victorjacobs/go-eplucon/config"
)

const Manufacturer = "Eplucon"
const PortalUrl = "https://portaal.eplucon.nl"

// DeviceInfo links sensors to one registry device. Identifier is the portal's
// account_module_index, which is stable across refreshes and reconfigures.
type DeviceInfo struct {
	Identifier string
	Name       string
	Model      string
}

// SensorInfo describes one sensor to announce via MQTT discovery.
type SensorInfo struct {
	DeviceId    int
	Key         string
	Name        string
	DeviceClass string
	StateClass  string
	Unit        string
}

type Client struct {
	mqtt mqtt.Client
}

func NewClient(mqtt mqtt.Client) *Client {
	return &Client{
		mqtt: mqtt,
	}
}

// RegisterSensor announces a sensor with a retained discovery message and
// returns the state topic it should be published on.
func (h *Client) RegisterSensor(device DeviceInfo, sensor SensorInfo) (string, error) {
	uniqueId := fmt.Sprintf("%v_%v_%v", config.TopicPrefix, sensor.DeviceId, sensor.Key)
	stateTopic := fmt.Sprintf("%v/%v/%v", config.TopicPrefix, sensor.DeviceId, sensor.Key)

	sensorConfiguration, _ := json.Marshal(sensorConfiguration{
		UniqueId:          uniqueId,
		Name:              sensor.Name,
		DeviceClass:       sensor.DeviceClass,
		StateClass:        sensor.StateClass,
		StateTopic:        stateTopic,
		AvailabilityTopic: AvailabilityTopic(),
		UnitOfMeasurement: sensor.Unit,
		Device: &deviceBlock{
			Identifiers:      []string{device.Identifier},
			Manufacturer:     Manufacturer,
			Model:            device.Model,
			Name:             device.Name,
			ConfigurationUrl: PortalUrl,
		},
	})

	configTopic := fmt.Sprintf("%v/sensor/%v/config", config.HomeAssistantPrefix, uniqueId)

	if t := h.mqtt.Publish(configTopic, 0, true, sensorConfiguration); t.Wait() && t.Error() != nil {
		return "", t.Error()
	}

	return stateTopic, nil
}

// PublishState publishes one sensor value, retained.
func (h *Client) PublishState(stateTopic string, value string) error {
	if t := h.mqtt.Publish(stateTopic, 0, true, value); t.Wait() && t.Error() != nil {
		return t.Error()
	}

	return nil
}

// PublishAvailability marks every registered sensor online or offline at
// once. Called after each refresh cycle.
func (h *Client) PublishAvailability(online bool) error {
	payload := "offline"
	if online {
		payload = "online"
	}

	if t := h.mqtt.Publish(AvailabilityTopic(), 0, true, payload); t.Wait() && t.Error() != nil {
		return t.Error()
	}

	return nil
}

func AvailabilityTopic() string {
	return fmt.Sprintf("%v/availability", config.TopicPrefix)
}
