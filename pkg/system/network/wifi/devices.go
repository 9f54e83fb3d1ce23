package network_wifi

import (
	"context"
	"slices"

	"github.com/godbus/dbus/v5"
	"github.com/mdlayher/wifi"

	"github.com/dogeorg/iwdscan/pkg/iwd"
)

type WifiDevice struct {
	Path    dbus.ObjectPath
	Name    string
	Address string
	Mode    iwd.DeviceMode
	Powered bool
	Station bool
	Model   string
	Vendor  string

	// Filled from nl80211 when the kernel reports an interface of the same
	// name; zero otherwise.
	Index     int
	Frequency int
}

type InterfaceSource func() ([]*wifi.Interface, error)

func nl80211Interfaces() ([]*wifi.Interface, error) {
	c, err := wifi.New()
	if err != nil {
		return nil, err
	}
	defer c.Close()

	return c.Interfaces()
}

// Devices lists every iwd device, sorted by object path.
func (s IWDScanner) Devices(ctx context.Context) ([]WifiDevice, error) {
	log := s.log()

	client, err := s.dial(ctx)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	bundles, err := s.enumerate(ctx, client)
	if err != nil {
		return nil, err
	}

	paths := make([]dbus.ObjectPath, 0, len(bundles))
	for path, b := range bundles {
		if b.Device != nil {
			paths = append(paths, path)
		}
	}
	slices.Sort(paths)

	interfaces := s.Interfaces
	if interfaces == nil {
		interfaces = nl80211Interfaces
	}
	kernel := map[string]*wifi.Interface{}
	ifis, err := interfaces()
	if err != nil {
		log.WithError(err).Info("Could not list nl80211 interfaces")
	}
	for _, ifi := range ifis {
		kernel[ifi.Name] = ifi
	}

	devices := make([]WifiDevice, 0, len(paths))
	for _, path := range paths {
		b := bundles[path]
		d := WifiDevice{
			Path:    path,
			Name:    b.Device.Name,
			Address: b.Device.Address,
			Mode:    b.Device.Mode,
			Powered: b.Device.Powered,
			Station: b.Station != nil,
		}

		if adapter, ok := bundles[b.Device.Adapter]; ok && adapter.Adapter != nil {
			if adapter.Adapter.Model != nil {
				d.Model = *adapter.Adapter.Model
			}
			if adapter.Adapter.Vendor != nil {
				d.Vendor = *adapter.Adapter.Vendor
			}
		}

		if ifi, ok := kernel[d.Name]; ok {
			d.Index = ifi.Index
			d.Frequency = ifi.Frequency
		}

		devices = append(devices, d)
	}
	return devices, nil
}
