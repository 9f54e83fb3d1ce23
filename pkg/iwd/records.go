package iwd

import (
	"github.com/godbus/dbus/v5"
)

// Properties is one interface's property bag as it travels on the wire,
// keyed by PascalCase property name. It must stay an alias: godbus only
// stores a decoded a{oa{sa{sv}}} into ManagedObjects when the element types
// are unnamed.
type Properties = map[string]dbus.Variant

// Record is implemented by the five typed interface records and nothing else.
type Record interface {
	Interface() string
	// Properties re-encodes the record into its wire property bag.
	Properties() Properties
	record()
}

type Station struct {
	State            StationState
	ConnectedNetwork *dbus.ObjectPath
	Scanning         bool
}

type Device struct {
	Name    string
	Address string
	Powered bool
	Adapter dbus.ObjectPath
	Mode    DeviceMode
}

type Network struct {
	Name         string
	Type         SecurityType
	Connected    bool
	Device       dbus.ObjectPath
	KnownNetwork *dbus.ObjectPath
}

// Known reports whether iwd holds a stored profile for the network.
func (n *Network) Known() bool {
	return n.KnownNetwork != nil
}

type KnownNetwork struct {
	Name              string
	Type              SecurityType
	Hidden            bool
	LastConnectedTime string // passed through as iwd formats it
	AutoConnect       bool
}

type Adapter struct {
	Name           string
	Powered        bool
	Model          *string
	Vendor         *string
	SupportedModes []DeviceMode
}

func (*Station) Interface() string      { return StationInterface }
func (*Device) Interface() string       { return DeviceInterface }
func (*Network) Interface() string      { return NetworkInterface }
func (*KnownNetwork) Interface() string { return KnownNetworkInterface }
func (*Adapter) Interface() string      { return AdapterInterface }

func (*Station) record()      {}
func (*Device) record()       {}
func (*Network) record()      {}
func (*KnownNetwork) record() {}
func (*Adapter) record()      {}

type propertyWriter Properties

func (w propertyWriter) set(f Field, v interface{}) {
	w[f.WireName()] = dbus.MakeVariant(v)
}

func (w propertyWriter) setPath(f Field, p *dbus.ObjectPath) {
	if p != nil {
		w.set(f, *p)
	}
}

func (w propertyWriter) setString(f Field, s *string) {
	if s != nil {
		w.set(f, *s)
	}
}

func (s *Station) Properties() Properties {
	w := propertyWriter{}
	w.set(stationState, string(s.State))
	w.setPath(stationConnectedNetwork, s.ConnectedNetwork)
	w.set(stationScanning, s.Scanning)
	return Properties(w)
}

func (d *Device) Properties() Properties {
	w := propertyWriter{}
	w.set(deviceName, d.Name)
	w.set(deviceAddress, d.Address)
	w.set(devicePowered, d.Powered)
	w.set(deviceAdapter, d.Adapter)
	w.set(deviceMode, string(d.Mode))
	return Properties(w)
}

func (n *Network) Properties() Properties {
	w := propertyWriter{}
	w.set(networkName, n.Name)
	w.set(networkType, string(n.Type))
	w.set(networkConnected, n.Connected)
	w.set(networkDevice, n.Device)
	w.setPath(networkKnownNetwork, n.KnownNetwork)
	return Properties(w)
}

func (k *KnownNetwork) Properties() Properties {
	w := propertyWriter{}
	w.set(knownNetworkName, k.Name)
	w.set(knownNetworkType, string(k.Type))
	w.set(knownNetworkHidden, k.Hidden)
	w.set(knownNetworkLastConnectedTime, k.LastConnectedTime)
	w.set(knownNetworkAutoConnect, k.AutoConnect)
	return Properties(w)
}

func (a *Adapter) Properties() Properties {
	modes := make([]string, 0, len(a.SupportedModes))
	for _, m := range a.SupportedModes {
		modes = append(modes, string(m))
	}

	w := propertyWriter{}
	w.set(adapterName, a.Name)
	w.set(adapterPowered, a.Powered)
	w.setString(adapterModel, a.Model)
	w.setString(adapterVendor, a.Vendor)
	w.set(adapterSupportedModes, modes)
	return Properties(w)
}
