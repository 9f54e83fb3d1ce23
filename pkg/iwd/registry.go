// Package iwd decodes the objects exported by the iwd wireless daemon over
// D-Bus and drives its station interface.
//
// GetManagedObjects answers with every object iwd knows about, each carrying a
// map of interface name to an untyped property bag. The decoder in this
// package turns the five interfaces listed in the registry below into typed
// records and keeps everything else untouched in Bundle.Rest.
package iwd

import (
	"fmt"
	"strings"
)

const (
	Service = "net.connman.iwd"

	StationInterface      = "net.connman.iwd.Station"
	DeviceInterface       = "net.connman.iwd.Device"
	NetworkInterface      = "net.connman.iwd.Network"
	KnownNetworkInterface = "net.connman.iwd.KnownNetwork"
	AdapterInterface      = "net.connman.iwd.Adapter"

	objectManagerPath               = "/"
	objectManagerGetManagedObjects  = "org.freedesktop.DBus.ObjectManager.GetManagedObjects"
	stationScanMethod               = StationInterface + ".Scan"
	stationGetOrderedNetworksMethod = StationInterface + ".GetOrderedNetworks"
)

type FieldKind int

const (
	FieldString FieldKind = iota
	FieldBool
	FieldEnum
	FieldPath
	FieldEnumList
)

func (k FieldKind) String() string {
	switch k {
	case FieldString:
		return "string"
	case FieldBool:
		return "boolean"
	case FieldEnum:
		return "enumeration"
	case FieldPath:
		return "object path"
	case FieldEnumList:
		return "enumeration list"
	}
	return fmt.Sprintf("FieldKind(%d)", int(k))
}

// Field describes one property of an interface schema. Name is the logical
// snake_case name; the wire carries it in PascalCase (see WireName).
type Field struct {
	Name     string
	Kind     FieldKind
	Optional bool
}

// WireName applies the rename rule: every '_' separated word is capitalised
// and the separators are dropped.
func (f Field) WireName() string {
	return WireName(f.Name)
}

func WireName(name string) string {
	var b strings.Builder
	for _, word := range strings.Split(name, "_") {
		if word == "" {
			continue
		}
		b.WriteString(strings.ToUpper(word[:1]))
		b.WriteString(word[1:])
	}
	return b.String()
}

type Schema struct {
	Interface string
	Fields    []Field
}

var (
	stationState            = Field{Name: "state", Kind: FieldEnum}
	stationConnectedNetwork = Field{Name: "connected_network", Kind: FieldPath, Optional: true}
	stationScanning         = Field{Name: "scanning", Kind: FieldBool}

	deviceName    = Field{Name: "name", Kind: FieldString}
	deviceAddress = Field{Name: "address", Kind: FieldString}
	devicePowered = Field{Name: "powered", Kind: FieldBool}
	deviceAdapter = Field{Name: "adapter", Kind: FieldPath}
	deviceMode    = Field{Name: "mode", Kind: FieldEnum}

	networkName         = Field{Name: "name", Kind: FieldString}
	networkType         = Field{Name: "type", Kind: FieldEnum}
	networkConnected    = Field{Name: "connected", Kind: FieldBool}
	networkDevice       = Field{Name: "device", Kind: FieldPath}
	networkKnownNetwork = Field{Name: "known_network", Kind: FieldPath, Optional: true}

	knownNetworkName              = Field{Name: "name", Kind: FieldString}
	knownNetworkType              = Field{Name: "type", Kind: FieldEnum}
	knownNetworkHidden            = Field{Name: "hidden", Kind: FieldBool}
	knownNetworkLastConnectedTime = Field{Name: "last_connected_time", Kind: FieldString}
	knownNetworkAutoConnect       = Field{Name: "auto_connect", Kind: FieldBool}

	adapterName           = Field{Name: "name", Kind: FieldString}
	adapterPowered        = Field{Name: "powered", Kind: FieldBool}
	adapterModel          = Field{Name: "model", Kind: FieldString, Optional: true}
	adapterVendor         = Field{Name: "vendor", Kind: FieldString, Optional: true}
	adapterSupportedModes = Field{Name: "supported_modes", Kind: FieldEnumList}
)

var (
	StationSchema = Schema{
		Interface: StationInterface,
		Fields:    []Field{stationState, stationConnectedNetwork, stationScanning},
	}
	DeviceSchema = Schema{
		Interface: DeviceInterface,
		Fields:    []Field{deviceName, deviceAddress, devicePowered, deviceAdapter, deviceMode},
	}
	NetworkSchema = Schema{
		Interface: NetworkInterface,
		Fields:    []Field{networkName, networkType, networkConnected, networkDevice, networkKnownNetwork},
	}
	KnownNetworkSchema = Schema{
		Interface: KnownNetworkInterface,
		Fields: []Field{knownNetworkName, knownNetworkType, knownNetworkHidden,
			knownNetworkLastConnectedTime, knownNetworkAutoConnect},
	}
	AdapterSchema = Schema{
		Interface: AdapterInterface,
		Fields:    []Field{adapterName, adapterPowered, adapterModel, adapterVendor, adapterSupportedModes},
	}
)

// Schemas returns the closed set of recognised interfaces.
func Schemas() []Schema {
	return []Schema{StationSchema, DeviceSchema, NetworkSchema, KnownNetworkSchema, AdapterSchema}
}

func LookupSchema(iface string) (Schema, bool) {
	switch iface {
	case StationInterface:
		return StationSchema, true
	case DeviceInterface:
		return DeviceSchema, true
	case NetworkInterface:
		return NetworkSchema, true
	case KnownNetworkInterface:
		return KnownNetworkSchema, true
	case AdapterInterface:
		return AdapterSchema, true
	}
	return Schema{}, false
}

func IsRecognized(iface string) bool {
	_, ok := LookupSchema(iface)
	return ok
}

type StationState string

const (
	StationConnected     StationState = "connected"
	StationDisconnected  StationState = "disconnected"
	StationConnecting    StationState = "connecting"
	StationDisconnecting StationState = "disconnecting"
	StationRoaming       StationState = "roaming"
)

func ParseStationState(s string) (StationState, error) {
	switch v := StationState(s); v {
	case StationConnected, StationDisconnected, StationConnecting, StationDisconnecting, StationRoaming:
		return v, nil
	}
	return "", ErrInvalidEnum
}

type DeviceMode string

const (
	ModeAdHoc       DeviceMode = "ad-hoc"
	ModeStation     DeviceMode = "station"
	ModeAccessPoint DeviceMode = "ap"
)

func ParseDeviceMode(s string) (DeviceMode, error) {
	switch v := DeviceMode(s); v {
	case ModeAdHoc, ModeStation, ModeAccessPoint:
		return v, nil
	}
	return "", ErrInvalidEnum
}

type SecurityType string

const (
	SecurityOpen       SecurityType = "open"
	SecurityWEP        SecurityType = "wep"
	SecurityPSK        SecurityType = "psk"
	SecurityEnterprise SecurityType = "8021x"
	SecurityHotspot    SecurityType = "hotspot"
)

func ParseSecurityType(s string) (SecurityType, error) {
	switch v := SecurityType(s); v {
	case SecurityOpen, SecurityWEP, SecurityPSK, SecurityEnterprise, SecurityHotspot:
		return v, nil
	}
	return "", ErrInvalidEnum
}
