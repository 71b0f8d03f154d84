package bridge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/victorjacobs/go-eplucon/config"
	"github.com/victorjacobs/go-eplucon/eplucon"
)

type fakeClient struct {
	devices          []eplucon.Device
	realtime         map[int]*eplucon.RealtimeInfo
	heatloading      map[int]*eplucon.HeatLoading
	realtimeErr      map[int]error
	realtimeCalls    []int
	heatloadingCalls []int
}

func (f *fakeClient) GetDevices(ctx context.Context) ([]eplucon.Device, error) {
	return f.devices, nil
}

func (f *fakeClient) GetRealtimeInfo(ctx context.Context, moduleId int) (*eplucon.RealtimeInfo, error) {
	f.realtimeCalls = append(f.realtimeCalls, moduleId)

	if err := f.realtimeErr[moduleId]; err != nil {
		return nil, err
	}

	if realtimeInfo, ok := f.realtime[moduleId]; ok {
		return realtimeInfo, nil
	}

	return &eplucon.RealtimeInfo{Common: &eplucon.CommonInfo{}}, nil
}

func (f *fakeClient) GetHeatloadingStatus(ctx context.Context, moduleId int) (*eplucon.HeatLoading, error) {
	f.heatloadingCalls = append(f.heatloadingCalls, moduleId)

	if heatLoading, ok := f.heatloading[moduleId]; ok {
		return heatLoading, nil
	}

	return &eplucon.HeatLoading{}, nil
}

func floatPtr(v float64) *float64 {
	return &v
}

func realtimeWithIndoorTemperature(v float64) *eplucon.RealtimeInfo {
	return &eplucon.RealtimeInfo{Common: &eplucon.CommonInfo{IndoorTemperature: floatPtr(v)}}
}

func TestNewFiltersUnsupportedDevices(t *testing.T) {
	client := &fakeClient{
		devices: []eplucon.Device{
			{Id: 1, Name: "House", Type: "heatpump"},
			{Id: 2, Name: "Mystery", Type: "solar_inverter"},
		},
	}

	b, err := New(context.Background(), &config.Configuration{}, client)
	require.NoError(t, err)

	snapshots, err := b.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, 1, snapshots[0].Id)
	assert.Equal(t, []int{1}, client.realtimeCalls)
}

func TestNewUsesConfiguredDevices(t *testing.T) {
	client := &fakeClient{
		devices: []eplucon.Device{{Id: 9, Type: "heatpump"}},
	}
	cfg := &config.Configuration{
		Devices: []config.Device{{Id: 1, Name: "House", Type: "heatpump", AccountModuleIndex: "a"}},
	}

	b, err := New(context.Background(), cfg, client)
	require.NoError(t, err)

	snapshots, err := b.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, 1, snapshots[0].Id)
	assert.Equal(t, "a", snapshots[0].AccountModuleIndex)
}

func TestNewErrorsWithoutSupportedDevices(t *testing.T) {
	client := &fakeClient{
		devices: []eplucon.Device{{Id: 2, Type: "solar_inverter"}},
	}

	_, err := New(context.Background(), &config.Configuration{}, client)
	assert.Error(t, err)
}

func TestRefreshDropsUnsupportedDevicePermanently(t *testing.T) {
	client := &fakeClient{}
	b := &Bridge{
		client: client,
		devices: []eplucon.Device{
			{Id: 1, Type: "heatpump"},
			{Id: 2, Type: "unsupported"},
		},
	}

	snapshots, err := b.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, 1, snapshots[0].Id)

	// Device 2 must not be fetched this cycle, nor in any later one.
	snapshots, err = b.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, []int{1, 1}, client.realtimeCalls)
	assert.Len(t, b.devices, 1)
}

func TestRefreshAbortsWholeCycleOnError(t *testing.T) {
	client := &fakeClient{
		realtimeErr: map[int]error{1: &eplucon.ProtocolError{StatusCode: 503}},
	}
	b := &Bridge{
		client: client,
		devices: []eplucon.Device{
			{Id: 1, Type: "heatpump"},
			{Id: 2, Type: "heatpump"},
		},
	}

	previous := []*eplucon.Device{{Id: 1, RealtimeInfo: realtimeWithIndoorTemperature(21.0)}}
	b.snapshots = previous

	snapshots, err := b.Refresh(context.Background())

	var protocolErr *eplucon.ProtocolError
	require.ErrorAs(t, err, &protocolErr)
	assert.Equal(t, 503, protocolErr.StatusCode)
	assert.Nil(t, snapshots)

	// Device 2 was pending and must not have been touched.
	assert.Equal(t, []int{1}, client.realtimeCalls)
	assert.Empty(t, client.heatloadingCalls)

	// The previous cycle's data stays published, the failure is recorded.
	published, _, lastErr := b.Status()
	assert.Equal(t, previous, published)
	assert.Error(t, lastErr)
}

func TestRefreshBuildsFreshSnapshots(t *testing.T) {
	client := &fakeClient{
		realtime: map[int]*eplucon.RealtimeInfo{1: realtimeWithIndoorTemperature(21.0)},
	}
	b := &Bridge{
		client:  client,
		devices: []eplucon.Device{{Id: 1, Type: "heatpump"}},
	}

	first, err := b.Refresh(context.Background())
	require.NoError(t, err)

	sensor := &Sensor{
		description: findDefinition(t, "indoor_temperature"),
		device:      first[0],
		available:   true,
	}

	value, ok := sensor.Value()
	require.True(t, ok)
	assert.Equal(t, 21.0, value)

	client.realtime[1] = realtimeWithIndoorTemperature(21.5)

	second, err := b.Refresh(context.Background())
	require.NoError(t, err)

	sensor.UpdateFrom(second)

	value, ok = sensor.Value()
	require.True(t, ok)
	assert.Equal(t, 21.5, value)

	// The new cycle replaced the snapshot instead of mutating the old one.
	assert.NotSame(t, first[0], second[0])
	assert.Equal(t, 21.0, *first[0].RealtimeInfo.Common.IndoorTemperature)
}

func TestSensorUnavailableWhenDeviceDisappears(t *testing.T) {
	device := &eplucon.Device{Id: 1, RealtimeInfo: realtimeWithIndoorTemperature(21.0)}
	sensor := &Sensor{
		description: findDefinition(t, "indoor_temperature"),
		device:      device,
		available:   true,
	}

	sensor.UpdateFrom([]*eplucon.Device{{Id: 2, RealtimeInfo: realtimeWithIndoorTemperature(18.0)}})

	_, ok := sensor.Value()
	assert.False(t, ok)
}

func TestSensorUnavailableWhenFieldMissing(t *testing.T) {
	sensor := &Sensor{
		description: findDefinition(t, "indoor_temperature"),
		device:      &eplucon.Device{Id: 1, RealtimeInfo: &eplucon.RealtimeInfo{Common: &eplucon.CommonInfo{}}},
		available:   true,
	}

	_, ok := sensor.Value()
	assert.False(t, ok)
}

func findDefinition(t *testing.T, key string) *sensorDescription {
	t.Helper()

	for _, description := range sensorDefinitions {
		if description.key == key {
			return description
		}
	}

	t.Fatalf("no sensor definition for %v", key)

	return nil
}
