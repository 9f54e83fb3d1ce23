package iwd_test

import (
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dogeorg/iwdscan/pkg/iwd"
)

func TestDecodeObject_RoundTrip(t *testing.T) {
	withoutOptional := func(p iwd.Properties, keys ...string) iwd.Properties {
		for _, k := range keys {
			delete(p, k)
		}
		return p
	}

	tests := []struct {
		name  string
		iface string
		props iwd.Properties
	}{
		{"station", iwd.StationInterface, stationProps()},
		{"station disconnected", iwd.StationInterface, withoutOptional(stationProps(), "ConnectedNetwork")},
		{"device", iwd.DeviceInterface, deviceProps()},
		{"network", iwd.NetworkInterface, networkProps("home")},
		{"network unknown", iwd.NetworkInterface, withoutOptional(networkProps("cafe"), "KnownNetwork")},
		{"known network", iwd.KnownNetworkInterface, knownNetworkProps()},
		{"adapter", iwd.AdapterInterface, adapterProps()},
		{"adapter bare", iwd.AdapterInterface, withoutOptional(adapterProps(), "Model", "Vendor")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := iwd.DecodeObject([]iwd.InterfaceProperties{{Interface: tt.iface, Properties: tt.props}})
			require.NoError(t, err)
			assert.Empty(t, b.Rest)

			records := b.Records()
			require.Len(t, records, 1)
			assert.Equal(t, tt.iface, records[0].Interface())
			assert.Equal(t, tt.props, records[0].Properties())
		})
	}
}

func TestDecodeObject_TypedValues(t *testing.T) {
	b, err := iwd.DecodeInterfaces(managedObjects()[stationPath])
	require.NoError(t, err)

	require.NotNil(t, b.Station)
	assert.Equal(t, iwd.StationConnected, b.Station.State)
	require.NotNil(t, b.Station.ConnectedNetwork)
	assert.Equal(t, homePath, *b.Station.ConnectedNetwork)
	assert.False(t, b.Station.Scanning)

	require.NotNil(t, b.Device)
	assert.Equal(t, "wlan0", b.Device.Name)
	assert.Equal(t, iwd.ModeStation, b.Device.Mode)
	assert.Equal(t, adapterPath, b.Device.Adapter)

	a, err := iwd.DecodeInterfaces(managedObjects()[adapterPath])
	require.NoError(t, err)
	require.NotNil(t, a.Adapter)
	assert.Equal(t, []iwd.DeviceMode{iwd.ModeAdHoc, iwd.ModeStation, iwd.ModeAccessPoint}, a.Adapter.SupportedModes)
	require.NotNil(t, a.Adapter.Vendor)
	assert.Equal(t, "Intel Corporation", *a.Adapter.Vendor)
}

func TestDecodeObject_ExtraFieldsIgnored(t *testing.T) {
	props := networkProps("home")
	props["ExtendedServiceSet"] = v([]dbus.ObjectPath{"/net/connman/iwd/0/4/686f6d65_psk/020000000100"})

	b, err := iwd.DecodeObject([]iwd.InterfaceProperties{{Interface: iwd.NetworkInterface, Properties: props}})
	require.NoError(t, err)
	require.NotNil(t, b.Network)
	assert.Equal(t, "home", b.Network.Name)
}

func TestDecodeObject_Residual(t *testing.T) {
	simple := iwd.Properties{"WPS": v(true)}
	entries := []iwd.InterfaceProperties{
		{Interface: iwd.StationInterface, Properties: stationProps()},
		{Interface: "org.freedesktop.DBus.Properties", Properties: iwd.Properties{}},
		{Interface: iwd.DeviceInterface, Properties: deviceProps()},
		{Interface: "net.connman.iwd.SimpleConfiguration", Properties: simple},
		{Interface: iwd.NetworkInterface, Properties: networkProps("home")},
		{Interface: iwd.KnownNetworkInterface, Properties: knownNetworkProps()},
		{Interface: iwd.AdapterInterface, Properties: adapterProps()},
	}

	b, err := iwd.DecodeObject(entries)
	require.NoError(t, err)
	assert.Len(t, b.Records(), 5)

	assert.Equal(t, map[string]iwd.Properties{
		"org.freedesktop.DBus.Properties":     {},
		"net.connman.iwd.SimpleConfiguration": simple,
	}, b.Rest)
	for name := range b.Rest {
		assert.False(t, iwd.IsRecognized(name), name)
	}
}

func TestDecodeObject_LastWriteWins(t *testing.T) {
	first := iwd.InterfaceProperties{Interface: iwd.NetworkInterface, Properties: networkProps("first")}
	second := iwd.InterfaceProperties{Interface: iwd.NetworkInterface, Properties: networkProps("second")}

	b, err := iwd.DecodeObject([]iwd.InterfaceProperties{first, second})
	require.NoError(t, err)
	assert.Equal(t, "second", b.Network.Name)

	b, err = iwd.DecodeObject([]iwd.InterfaceProperties{second, first})
	require.NoError(t, err)
	assert.Equal(t, "first", b.Network.Name)

	extra := iwd.InterfaceProperties{Interface: "net.connman.iwd.Extra", Properties: iwd.Properties{"A": v(int32(1))}}
	extraLater := iwd.InterfaceProperties{Interface: "net.connman.iwd.Extra", Properties: iwd.Properties{"A": v(int32(2))}}
	b, err = iwd.DecodeObject([]iwd.InterfaceProperties{extra, extraLater})
	require.NoError(t, err)
	assert.Equal(t, extraLater.Properties, b.Rest["net.connman.iwd.Extra"])
}

func TestDecodeObject_OrderIndependent(t *testing.T) {
	entries := []iwd.InterfaceProperties{
		{Interface: iwd.StationInterface, Properties: stationProps()},
		{Interface: iwd.DeviceInterface, Properties: deviceProps()},
		{Interface: "net.connman.iwd.SimpleConfiguration", Properties: iwd.Properties{}},
	}
	permutations := [][]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}

	want, err := iwd.DecodeObject(entries)
	require.NoError(t, err)

	for _, perm := range permutations {
		shuffled := make([]iwd.InterfaceProperties, 0, len(perm))
		for _, i := range perm {
			shuffled = append(shuffled, entries[i])
		}
		got, err := iwd.DecodeObject(shuffled)
		require.NoError(t, err)
		assert.Equal(t, want, got, "order %v", perm)
	}
}

func TestDecodeObject_Errors(t *testing.T) {
	with := func(p iwd.Properties, key string, val interface{}) iwd.Properties {
		p[key] = v(val)
		return p
	}
	without := func(p iwd.Properties, key string) iwd.Properties {
		delete(p, key)
		return p
	}
	empty := func(p iwd.Properties, key string) iwd.Properties {
		p[key] = dbus.Variant{}
		return p
	}

	tests := []struct {
		name    string
		iface   string
		props   iwd.Properties
		field   string
		value   interface{}
		wantErr error
	}{
		{"unknown station state", iwd.StationInterface, with(stationProps(), "State", "unknown-state"), "state", "unknown-state", iwd.ErrInvalidEnum},
		{"missing scanning", iwd.StationInterface, without(stationProps(), "Scanning"), "scanning", nil, iwd.ErrMissingField},
		{"connected network as string", iwd.StationInterface, with(stationProps(), "ConnectedNetwork", "/net/connman/iwd/0/4/x"), "connected_network", "/net/connman/iwd/0/4/x", iwd.ErrWrongType},
		{"device name as empty variant", iwd.DeviceInterface, empty(deviceProps(), "Name"), "name", nil, iwd.ErrMissingField},
		{"device mode", iwd.DeviceInterface, with(deviceProps(), "Mode", "monitor"), "mode", "monitor", iwd.ErrInvalidEnum},
		{"device powered as string", iwd.DeviceInterface, with(deviceProps(), "Powered", "yes"), "powered", "yes", iwd.ErrWrongType},
		{"network type case", iwd.NetworkInterface, with(networkProps("home"), "Type", "PSK"), "type", "PSK", iwd.ErrInvalidEnum},
		{"network missing device", iwd.NetworkInterface, without(networkProps("home"), "Device"), "device", nil, iwd.ErrMissingField},
		{"known network hidden", iwd.KnownNetworkInterface, with(knownNetworkProps(), "Hidden", uint32(0)), "hidden", uint32(0), iwd.ErrWrongType},
		{"adapter mode list", iwd.AdapterInterface, with(adapterProps(), "SupportedModes", []string{"station", "mesh"}), "supported_modes", "mesh", iwd.ErrInvalidEnum},
		{"adapter model as int", iwd.AdapterInterface, with(adapterProps(), "Model", int32(8265)), "model", int32(8265), iwd.ErrWrongType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := iwd.DecodeObject([]iwd.InterfaceProperties{
				{Interface: "net.connman.iwd.SimpleConfiguration", Properties: iwd.Properties{}},
				{Interface: tt.iface, Properties: tt.props},
			})
			require.Error(t, err)
			assert.Nil(t, b)
			assert.ErrorIs(t, err, tt.wantErr)

			var de *iwd.DecodeError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.iface, de.Interface)
			assert.Equal(t, tt.field, de.Field)
			assert.Equal(t, tt.value, de.Value)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestDecoder_Strict(t *testing.T) {
	objects := managedObjects()
	objects[cafePath][iwd.NetworkInterface]["Type"] = v("wpa3")

	bundles, err := iwd.Decoder{}.Decode(objects)
	require.Error(t, err)
	assert.Nil(t, bundles)

	var oe *iwd.ObjectError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, cafePath, oe.Path)
	assert.ErrorIs(t, err, iwd.ErrInvalidEnum)
}

func TestDecoder_SkipInvalid(t *testing.T) {
	logger, hook := test.NewNullLogger()
	objects := managedObjects()
	objects[cafePath][iwd.NetworkInterface]["Type"] = v("wpa3")

	bundles, err := iwd.Decoder{SkipInvalid: true, Log: logger}.Decode(objects)
	require.NoError(t, err)

	assert.Len(t, bundles, len(objects)-1)
	assert.NotContains(t, bundles, cafePath)
	assert.Contains(t, bundles, homePath)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, cafePath, hook.LastEntry().Data["path"])
}
