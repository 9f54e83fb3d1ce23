package iwd

import (
	"errors"
	"fmt"
	"slices"

	"github.com/godbus/dbus/v5"
	"github.com/sirupsen/logrus"
)

var (
	ErrMissingField = errors.New("missing required field")
	ErrWrongType    = errors.New("unexpected value type")
	ErrInvalidEnum  = errors.New("value outside enumeration")
)

// DecodeError reports a property bag that does not fit its interface schema.
// Value is the offending wire value, nil when the field is missing.
type DecodeError struct {
	Interface string
	Field     string
	Value     interface{}
	Err       error
}

func (e *DecodeError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%s: field %s: %v", e.Interface, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: field %s: %v: %#v", e.Interface, e.Field, e.Err, e.Value)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ObjectError ties a decode failure to the object it came from.
type ObjectError struct {
	Path dbus.ObjectPath
	Err  error
}

func (e *ObjectError) Error() string {
	return fmt.Sprintf("object %s: %v", e.Path, e.Err)
}

func (e *ObjectError) Unwrap() error { return e.Err }

// ManagedObjects is the reply of org.freedesktop.DBus.ObjectManager.GetManagedObjects.
type ManagedObjects map[dbus.ObjectPath]map[string]Properties

// InterfaceProperties is one (interface, bag) pair of an object, in the
// order it was received.
type InterfaceProperties struct {
	Interface  string
	Properties Properties
}

// Bundle holds everything decoded for a single object. Rest never contains
// a recognised interface name.
type Bundle struct {
	Station      *Station
	Device       *Device
	Network      *Network
	KnownNetwork *KnownNetwork
	Adapter      *Adapter
	Rest         map[string]Properties
}

// Records lists the decoded records in registry order.
func (b *Bundle) Records() []Record {
	var out []Record
	if b.Station != nil {
		out = append(out, b.Station)
	}
	if b.Device != nil {
		out = append(out, b.Device)
	}
	if b.Network != nil {
		out = append(out, b.Network)
	}
	if b.KnownNetwork != nil {
		out = append(out, b.KnownNetwork)
	}
	if b.Adapter != nil {
		out = append(out, b.Adapter)
	}
	return out
}

// DecodeObject decodes entries in order. A recognised interface seen twice
// keeps the later bag; any schema violation fails the whole object.
func DecodeObject(entries []InterfaceProperties) (*Bundle, error) {
	b := &Bundle{Rest: map[string]Properties{}}

	for _, e := range entries {
		var err error

		switch e.Interface {
		case StationInterface:
			b.Station, err = decodeStation(e.Properties)
		case DeviceInterface:
			b.Device, err = decodeDevice(e.Properties)
		case NetworkInterface:
			b.Network, err = decodeNetwork(e.Properties)
		case KnownNetworkInterface:
			b.KnownNetwork, err = decodeKnownNetwork(e.Properties)
		case AdapterInterface:
			b.Adapter, err = decodeAdapter(e.Properties)
		default:
			b.Rest[e.Interface] = e.Properties
		}

		if err != nil {
			return nil, err
		}
	}

	return b, nil
}

// DecodeInterfaces decodes one object of a GetManagedObjects reply. Names are
// visited in sorted order so the result never depends on map iteration.
func DecodeInterfaces(ifaces map[string]Properties) (*Bundle, error) {
	names := make([]string, 0, len(ifaces))
	for name := range ifaces {
		names = append(names, name)
	}
	slices.Sort(names)

	entries := make([]InterfaceProperties, 0, len(names))
	for _, name := range names {
		entries = append(entries, InterfaceProperties{Interface: name, Properties: ifaces[name]})
	}
	return DecodeObject(entries)
}

type Decoder struct {
	// SkipInvalid drops undecodable objects with a warning instead of
	// failing the whole enumeration.
	SkipInvalid bool
	Log         logrus.FieldLogger
}

func (d Decoder) Decode(objects ManagedObjects) (map[dbus.ObjectPath]*Bundle, error) {
	log := d.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	bundles := make(map[dbus.ObjectPath]*Bundle, len(objects))
	for _, path := range sortedPaths(objects) {
		b, err := DecodeInterfaces(objects[path])
		if err != nil {
			err = &ObjectError{Path: path, Err: err}
			if !d.SkipInvalid {
				return nil, err
			}
			log.WithError(err).WithField("path", path).Warn("Skipping undecodable object")
			continue
		}
		bundles[path] = b
	}

	log.WithField("objects", len(bundles)).Debug("Decoded managed objects")
	return bundles, nil
}

func sortedPaths[V any](m map[dbus.ObjectPath]V) []dbus.ObjectPath {
	paths := make([]dbus.ObjectPath, 0, len(m))
	for p := range m {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

func decodeStation(p Properties) (*Station, error) {
	r := &bagReader{iface: StationInterface, props: p}
	s := &Station{
		State:            readEnum(r, stationState, ParseStationState),
		ConnectedNetwork: r.optPath(stationConnectedNetwork),
		Scanning:         r.boolean(stationScanning),
	}
	if r.err != nil {
		return nil, r.err
	}
	return s, nil
}

func decodeDevice(p Properties) (*Device, error) {
	r := &bagReader{iface: DeviceInterface, props: p}
	d := &Device{
		Name:    r.str(deviceName),
		Address: r.str(deviceAddress),
		Powered: r.boolean(devicePowered),
		Adapter: r.path(deviceAdapter),
		Mode:    readEnum(r, deviceMode, ParseDeviceMode),
	}
	if r.err != nil {
		return nil, r.err
	}
	return d, nil
}

func decodeNetwork(p Properties) (*Network, error) {
	r := &bagReader{iface: NetworkInterface, props: p}
	n := &Network{
		Name:         r.str(networkName),
		Type:         readEnum(r, networkType, ParseSecurityType),
		Connected:    r.boolean(networkConnected),
		Device:       r.path(networkDevice),
		KnownNetwork: r.optPath(networkKnownNetwork),
	}
	if r.err != nil {
		return nil, r.err
	}
	return n, nil
}

func decodeKnownNetwork(p Properties) (*KnownNetwork, error) {
	r := &bagReader{iface: KnownNetworkInterface, props: p}
	k := &KnownNetwork{
		Name:              r.str(knownNetworkName),
		Type:              readEnum(r, knownNetworkType, ParseSecurityType),
		Hidden:            r.boolean(knownNetworkHidden),
		LastConnectedTime: r.str(knownNetworkLastConnectedTime),
		AutoConnect:       r.boolean(knownNetworkAutoConnect),
	}
	if r.err != nil {
		return nil, r.err
	}
	return k, nil
}

func decodeAdapter(p Properties) (*Adapter, error) {
	r := &bagReader{iface: AdapterInterface, props: p}
	a := &Adapter{
		Name:           r.str(adapterName),
		Powered:        r.boolean(adapterPowered),
		Model:          r.optStr(adapterModel),
		Vendor:         r.optStr(adapterVendor),
		SupportedModes: readEnumList(r, adapterSupportedModes, ParseDeviceMode),
	}
	if r.err != nil {
		return nil, r.err
	}
	return a, nil
}

// bagReader pulls typed fields out of one property bag. The first failure
// sticks; later reads return zero values.
type bagReader struct {
	iface string
	props Properties
	err   error
}

func (r *bagReader) fail(f Field, v interface{}, err error) {
	if r.err == nil {
		r.err = &DecodeError{Interface: r.iface, Field: f.Name, Value: v, Err: err}
	}
}

func (r *bagReader) value(f Field) (interface{}, bool) {
	if r.err != nil {
		return nil, false
	}
	// A zero Variant carries no value and counts as absent.
	v, ok := r.props[f.WireName()]
	if !ok || v.Value() == nil {
		if !f.Optional {
			r.fail(f, nil, ErrMissingField)
		}
		return nil, false
	}
	return v.Value(), true
}

func readAs[T any](r *bagReader, f Field) (T, bool) {
	var zero T
	v, ok := r.value(f)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		r.fail(f, v, ErrWrongType)
		return zero, false
	}
	return t, true
}

func (r *bagReader) str(f Field) string {
	s, _ := readAs[string](r, f)
	return s
}

func (r *bagReader) optStr(f Field) *string {
	s, ok := readAs[string](r, f)
	if !ok {
		return nil
	}
	return &s
}

func (r *bagReader) boolean(f Field) bool {
	b, _ := readAs[bool](r, f)
	return b
}

func (r *bagReader) path(f Field) dbus.ObjectPath {
	p, _ := readAs[dbus.ObjectPath](r, f)
	return p
}

func (r *bagReader) optPath(f Field) *dbus.ObjectPath {
	p, ok := readAs[dbus.ObjectPath](r, f)
	if !ok {
		return nil
	}
	return &p
}

func readEnum[T any](r *bagReader, f Field, parse func(string) (T, error)) T {
	var zero T
	s, ok := readAs[string](r, f)
	if !ok {
		return zero
	}
	v, err := parse(s)
	if err != nil {
		r.fail(f, s, err)
		return zero
	}
	return v
}

func readEnumList[T any](r *bagReader, f Field, parse func(string) (T, error)) []T {
	raw, ok := readAs[[]string](r, f)
	if !ok {
		return nil
	}
	out := make([]T, 0, len(raw))
	for _, s := range raw {
		v, err := parse(s)
		if err != nil {
			r.fail(f, s, err)
			return nil
		}
		out = append(out, v)
	}
	return out
}
