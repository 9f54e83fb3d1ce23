package iwd_test

import (
	"github.com/godbus/dbus/v5"

	"github.com/dogeorg/iwdscan/pkg/iwd"
)

const (
	adapterPath = dbus.ObjectPath("/net/connman/iwd/0")
	stationPath = dbus.ObjectPath("/net/connman/iwd/0/4")
	homePath    = dbus.ObjectPath("/net/connman/iwd/0/4/686f6d65_psk")
	cafePath    = dbus.ObjectPath("/net/connman/iwd/0/4/63616665_open")
	knownPath   = dbus.ObjectPath("/net/connman/iwd/686f6d65_psk")
)

func v(x interface{}) dbus.Variant {
	return dbus.MakeVariant(x)
}

func stationProps() iwd.Properties {
	return iwd.Properties{
		"State":            v("connected"),
		"ConnectedNetwork": v(homePath),
		"Scanning":         v(false),
	}
}

func deviceProps() iwd.Properties {
	return iwd.Properties{
		"Name":    v("wlan0"),
		"Address": v("02:00:00:00:01:00"),
		"Powered": v(true),
		"Adapter": v(adapterPath),
		"Mode":    v("station"),
	}
}

func networkProps(name string) iwd.Properties {
	return iwd.Properties{
		"Name":         v(name),
		"Type":         v("psk"),
		"Connected":    v(false),
		"Device":       v(stationPath),
		"KnownNetwork": v(knownPath),
	}
}

func knownNetworkProps() iwd.Properties {
	return iwd.Properties{
		"Name":              v("home"),
		"Type":              v("psk"),
		"Hidden":            v(false),
		"LastConnectedTime": v("2026-10-01T08:15:00Z"),
		"AutoConnect":       v(true),
	}
}

func adapterProps() iwd.Properties {
	return iwd.Properties{
		"Name":           v("phy0"),
		"Powered":        v(true),
		"Model":          v("Wireless 8265 / 8275"),
		"Vendor":         v("Intel Corporation"),
		"SupportedModes": v([]string{"ad-hoc", "station", "ap"}),
	}
}

func managedObjects() iwd.ManagedObjects {
	return iwd.ManagedObjects{
		adapterPath: {
			iwd.AdapterInterface:              adapterProps(),
			"org.freedesktop.DBus.Properties": {},
		},
		stationPath: {
			iwd.DeviceInterface:                   deviceProps(),
			iwd.StationInterface:                  stationProps(),
			"net.connman.iwd.SimpleConfiguration": {},
		},
		homePath:  {iwd.NetworkInterface: networkProps("home")},
		cafePath:  {iwd.NetworkInterface: networkProps("cafe")},
		knownPath: {iwd.KnownNetworkInterface: knownNetworkProps()},
	}
}
