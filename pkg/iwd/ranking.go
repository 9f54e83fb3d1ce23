package iwd

import (
	"github.com/godbus/dbus/v5"
)

type RankedNetwork struct {
	Path    dbus.ObjectPath
	Signal  int16
	Network *Network
}

// Rank joins iwd's ordering with the network lookup. Order is kept as given;
// paths missing from the lookup are dropped since networks come and go
// between enumeration and scan.
func Rank(ordered []OrderedNetwork, networks map[dbus.ObjectPath]*Network) []RankedNetwork {
	out := make([]RankedNetwork, 0, len(ordered))
	for _, o := range ordered {
		n, ok := networks[o.Path]
		if !ok {
			continue
		}
		out = append(out, RankedNetwork{Path: o.Path, Signal: o.Signal, Network: n})
	}
	return out
}
