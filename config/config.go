package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

const HomeAssistantPrefix = "homeassistant"
const TopicPrefix = "eplucon"

const defaultPollIntervalSeconds = 30

type Configuration struct {
	ApiToken            string   `json:"api_token"`
	ApiEndpoint         string   `json:"api_endpoint"`
	PollIntervalSeconds int      `json:"poll_interval_seconds"`
	Devices             []Device `json:"devices"`
	Mqtt                Mqtt     `json:"mqtt"`
}

// Device pins the tracked device set in the configuration file. When empty,
// the bridge tracks whatever the portal lists at startup.
type Device struct {
	Id                 int    `json:"id"`
	Name               string `json:"name"`
	Type               string `json:"type"`
	AccountModuleIndex string `json:"account_module_index"`
}

type Mqtt struct {
	IpAddress string `json:"ip_address"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

func LoadConfiguration(filename string) (*Configuration, error) {
	var file *os.File
	var err error
	if file, err = os.Open(filename); err != nil {
		return nil, err
	}

	defer file.Close()
	decoder := json.NewDecoder(file)
	configuration := &Configuration{}
	if err := decoder.Decode(configuration); err != nil {
		return nil, err
	}

	if configuration.ApiToken == "" {
		return nil, fmt.Errorf("api_token is required")
	}

	if configuration.PollIntervalSeconds == 0 {
		configuration.PollIntervalSeconds = defaultPollIntervalSeconds
	}

	return configuration, nil
}

func (c *Configuration) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

func (m *Mqtt) ClientOptions() *mqtt.ClientOptions {
	return mqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("tcp://%v:1883", m.IpAddress)).
		SetUsername(m.Username).
		SetPassword(m.Password).
		SetAutoReconnect(true).
		SetConnectionLostHandler(func(client mqtt.Client, err error) {
			log.Warn().Err(err).Msg("MQTT connection lost")
		}).
		SetReconnectingHandler(func(client mqtt.Client, opts *mqtt.ClientOptions) {
			log.Info().Msg("MQTT reconnecting")
		})
}
