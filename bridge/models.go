package bridge

import (
	"github.com/victorjacobs/go-eplucon/eplucon"
)

// sensorDescription declares one publishable field. exists must be checked
// before value: value may dereference anything exists verified, so calling it
// on a device where exists is false is not allowed.
type sensorDescription struct {
	key         string
	name        string
	deviceClass string
	stateClass  string
	unit        string
	exists      func(device *eplucon.Device) bool
	value       func(device *eplucon.Device) interface{}
}

// Sensor is one descriptor instantiated for one device. It holds the device
// snapshot from the last cycle it was seen in and swaps it out wholesale on
// reconciliation.
type Sensor struct {
	description *sensorDescription
	device      *eplucon.Device
	stateTopic  string
	available   bool
}

// UpdateFrom reconciles the sensor against a new cycle's snapshot list,
// matching by device id. A device missing from the list leaves the sensor
// holding its old snapshot but marked unavailable.
func (s *Sensor) UpdateFrom(snapshots []*eplucon.Device) {
	for _, snapshot := range snapshots {
		if snapshot.Id == s.device.Id {
			s.device = snapshot
			s.available = true

			return
		}
	}

	s.available = false
}

// Value returns the current value for this sensor. ok is false when the
// device dropped out of the snapshot list, when the field is absent this
// cycle, or when computing the value fails; a failure never propagates past
// this one field.
func (s *Sensor) Value() (value interface{}, ok bool) {
	defer func() {
		if recover() != nil {
			value, ok = nil, false
		}
	}()

	if !s.available || !s.description.exists(s.device) {
		return nil, false
	}

	return s.description.value(s.device), true
}

func (s *Sensor) Key() string {
	return s.description.key
}

func (s *Sensor) DeviceId() int {
	return s.device.Id
}
