package bridge

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
	"github.com/victorjacobs/go-eplucon/config"
	"github.com/victorjacobs/go-eplucon/eplucon"
	"github.com/victorjacobs/go-eplucon/homeassistant"
)

// Client is the slice of the Eplucon API the bridge consumes.
type Client interface {
	GetDevices(ctx context.Context) ([]eplucon.Device, error)
	GetRealtimeInfo(ctx context.Context, moduleId int) (*eplucon.RealtimeInfo, error)
	GetHeatloadingStatus(ctx context.Context, moduleId int) (*eplucon.HeatLoading, error)
}

// supportedTypes is the device type allow-list. Modules of any other type are
// dropped from polling, they are listed by the portal but expose no telemetry
// endpoints we understand.
var supportedTypes = map[string]bool{
	"heatpump": true,
}

type Bridge struct {
	cfg     *config.Configuration
	client  Client
	devices []eplucon.Device
	sensors []*Sensor

	// mu guards the published cycle result, which the /state endpoint reads
	// concurrently with the poll loop. The device list itself is only ever
	// touched from the poll loop.
	mu            sync.RWMutex
	snapshots     []*eplucon.Device
	lastRefreshed time.Time
	lastErr       error
}

// New establishes the tracked device set, from the configuration when it pins
// one and from the portal's module listing otherwise, and keeps the supported
// devices. Returns an error when there are no supported devices.
func New(ctx context.Context, cfg *config.Configuration, client Client) (*Bridge, error) {
	var devices []eplucon.Device
	if len(cfg.Devices) > 0 {
		for _, device := range cfg.Devices {
			devices = append(devices, eplucon.Device{
				Id:                 device.Id,
				Name:               device.Name,
				Type:               device.Type,
				AccountModuleIndex: device.AccountModuleIndex,
			})
		}
	} else {
		var err error
		if devices, err = client.GetDevices(ctx); err != nil {
			return nil, err
		}
	}

	tracked := make([]eplucon.Device, 0, len(devices))
	for _, device := range devices {
		if !supportedTypes[device.Type] {
			log.Warn().Int("id", device.Id).Str("name", device.Name).Str("type", device.Type).
				Msg("Device type is not supported yet, skipping")

			continue
		}

		log.Info().Int("id", device.Id).Str("name", device.Name).Str("type", device.Type).Msg("Tracking device")
		tracked = append(tracked, device)
	}

	if len(tracked) == 0 {
		return nil, fmt.Errorf("no supported devices found")
	}

	return &Bridge{
		cfg:     cfg,
		client:  client,
		devices: tracked,
	}, nil
}

// Refresh runs one update cycle: for every tracked device, in order, fetch
// realtime and heat-loading data and build a fresh snapshot. Unsupported
// devices are dropped from the tracked set for good. Any API error aborts the
// whole cycle, nothing is published and the previous snapshots stay in place.
func (b *Bridge) Refresh(ctx context.Context) ([]*eplucon.Device, error) {
	tracked := make([]eplucon.Device, len(b.devices))
	copy(tracked, b.devices)

	kept := make([]eplucon.Device, 0, len(tracked))
	snapshots := make([]*eplucon.Device, 0, len(tracked))

	for _, device := range tracked {
		if !supportedTypes[device.Type] {
			log.Warn().Int("id", device.Id).Str("type", device.Type).
				Msg("Device type is not supported yet, dropping from polling")

			continue
		}

		realtimeInfo, err := b.client.GetRealtimeInfo(ctx, device.Id)
		if err != nil {
			b.recordFailure(err)

			return nil, err
		}

		heatloadingStatus, err := b.client.GetHeatloadingStatus(ctx, device.Id)
		if err != nil {
			b.recordFailure(err)

			return nil, err
		}

		// Always a brand new Device value. Reusing the previous cycle's
		// snapshot would let stale fields alias between cycles.
		snapshot := &eplucon.Device{
			Id:                 device.Id,
			Name:               device.Name,
			Type:               device.Type,
			AccountModuleIndex: device.AccountModuleIndex,
			RealtimeInfo:       realtimeInfo,
			HeatloadingStatus:  heatloadingStatus,
		}

		kept = append(kept, device)
		snapshots = append(snapshots, snapshot)
	}

	b.devices = kept

	b.mu.Lock()
	b.snapshots = snapshots
	b.lastRefreshed = time.Now()
	b.lastErr = nil
	b.mu.Unlock()

	log.Debug().Int("devices", len(snapshots)).Msg("Refresh cycle completed")

	return snapshots, nil
}

func (b *Bridge) recordFailure(err error) {
	b.mu.Lock()
	b.lastErr = err
	b.mu.Unlock()
}

// RegisterSensors announces one sensor per device and field that exists in
// the current snapshots. Must run after a successful Refresh.
func (b *Bridge) RegisterSensors(mqttClient mqtt.Client) error {
	homeAssistantClient := homeassistant.NewClient(mqttClient)

	b.mu.RLock()
	snapshots := b.snapshots
	b.mu.RUnlock()

	for _, snapshot := range snapshots {
		deviceInfo := homeassistant.DeviceInfo{
			Identifier: snapshot.AccountModuleIndex,
			Name:       snapshot.Name,
			Model:      snapshot.Type,
		}

		registered := 0
		for _, description := range sensorDefinitions {
			if !description.exists(snapshot) {
				continue
			}

			stateTopic, err := homeAssistantClient.RegisterSensor(deviceInfo, homeassistant.SensorInfo{
				DeviceId:    snapshot.Id,
				Key:         description.key,
				Name:        description.name,
				DeviceClass: description.deviceClass,
				StateClass:  description.stateClass,
				Unit:        description.unit,
			})
			if err != nil {
				return err
			}

			b.sensors = append(b.sensors, &Sensor{
				description: description,
				device:      snapshot,
				stateTopic:  stateTopic,
				available:   true,
			})
			registered++
		}

		log.Info().Int("id", snapshot.Id).Str("name", snapshot.Name).Int("sensors", registered).
			Msg("Registered sensors for device")
	}

	return nil
}

// Poll runs one cycle and publishes the outcome: sensor states and online
// availability on success, offline availability on failure.
func (b *Bridge) Poll(ctx context.Context, mqttClient mqtt.Client) {
	homeAssistantClient := homeassistant.NewClient(mqttClient)

	snapshots, err := b.Refresh(ctx)
	if err != nil {
		var authErr *eplucon.AuthError
		if errors.As(err, &authErr) {
			log.Error().Err(err).Msg("API token rejected, reconfigure the bridge with a valid token")
		} else {
			log.Error().Err(err).Msg("Refresh cycle failed")
		}

		if err := homeAssistantClient.PublishAvailability(false); err != nil {
			log.Error().Err(err).Msg("MQTT publishing failed")
		}

		return
	}

	b.publishSensors(homeAssistantClient, snapshots)

	if err := homeAssistantClient.PublishAvailability(true); err != nil {
		log.Error().Err(err).Msg("MQTT publishing failed")
	}
}

func (b *Bridge) publishSensors(homeAssistantClient *homeassistant.Client, snapshots []*eplucon.Device) {
	for _, sensor := range b.sensors {
		sensor.UpdateFrom(snapshots)

		value, ok := sensor.Value()
		if !ok {
			log.Debug().Int("id", sensor.DeviceId()).Str("key", sensor.Key()).Msg("Sensor has no value this cycle")

			continue
		}

		if err := homeAssistantClient.PublishState(sensor.stateTopic, fmt.Sprintf("%v", value)); err != nil {
			log.Error().Err(err).Str("key", sensor.Key()).Msg("MQTT publishing failed")

			continue
		}
	}
}

// Status reports the last published cycle for the HTTP state endpoint.
func (b *Bridge) Status() ([]*eplucon.Device, time.Time, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.snapshots, b.lastRefreshed, b.lastErr
}

// Values derives every declared field that exists on the snapshot, keyed by
// field key. A failure computing one value skips that field only.
func Values(device *eplucon.Device) map[string]interface{} {
	values := make(map[string]interface{})

	for _, description := range sensorDefinitions {
		if !description.exists(device) {
			continue
		}

		func() {
			defer func() {
				if v := recover(); v != nil {
					log.Warn().Int("id", device.Id).Str("key", description.key).Interface("panic", v).
						Msg("Failed to compute sensor value")
				}
			}()

			values[description.key] = description.value(device)
		}()
	}

	return values
}
