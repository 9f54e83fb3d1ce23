package iwd

import (
	"github.com/godbus/dbus/v5"
)

type Catalog struct {
	// Station is the first of StationCandidates, nil when there is none.
	Station *Path[StationProxy]
	// StationCandidates holds every object exposing both Station and Device,
	// sorted by path.
	StationCandidates []dbus.ObjectPath
	Networks          map[dbus.ObjectPath]*Network
}

// BuildCatalog classifies decoded objects. An object with Station and Device
// is a station candidate; otherwise one with Network goes into the network
// lookup; anything else is left out. Network records are shared with the
// bundles, not copied.
func BuildCatalog(bundles map[dbus.ObjectPath]*Bundle) *Catalog {
	c := &Catalog{Networks: map[dbus.ObjectPath]*Network{}}

	for _, path := range sortedPaths(bundles) {
		b := bundles[path]
		switch {
		case b.Station != nil && b.Device != nil:
			c.StationCandidates = append(c.StationCandidates, path)
		case b.Network != nil:
			c.Networks[path] = b.Network
		}
	}

	if len(c.StationCandidates) > 0 {
		station := NewPath[StationProxy](c.StationCandidates[0])
		c.Station = &station
	}
	return c
}
