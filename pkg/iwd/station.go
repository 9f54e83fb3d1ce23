package iwd

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/sirupsen/logrus"
)

// OrderedNetwork is one entry of GetOrderedNetworks. Signal is on iwd's own
// scale; only its order relative to other entries is meaningful.
type OrderedNetwork struct {
	Path   dbus.ObjectPath
	Signal int16
}

// StationProxy calls net.connman.iwd.Station methods on one object.
type StationProxy struct {
	client *Client
	obj    dbus.BusObject
}

var _ Proxy[StationProxy] = StationProxy{}

func (StationProxy) Interface() string { return StationInterface }

func (StationProxy) bind(c *Client, obj dbus.BusObject) StationProxy {
	return StationProxy{client: c, obj: obj}
}

func (s StationProxy) Path() dbus.ObjectPath {
	return s.obj.Path()
}

func (s StationProxy) Scan(ctx context.Context) error {
	return s.client.call(ctx, s.obj, stationScanMethod)
}

// GetOrderedNetworks returns visible networks best first, as ranked by iwd.
func (s StationProxy) GetOrderedNetworks(ctx context.Context) ([]OrderedNetwork, error) {
	var out []OrderedNetwork
	if err := s.client.call(ctx, s.obj, stationGetOrderedNetworksMethod, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type StationController interface {
	Scan(ctx context.Context) error
	GetOrderedNetworks(ctx context.Context) ([]OrderedNetwork, error)
}

// ScanAndList requests a scan, waits for the reply and then lists the ranked
// networks. A failed scan only gets logged: iwd may still hold results from an
// earlier one.
func ScanAndList(ctx context.Context, st StationController, log logrus.FieldLogger) ([]OrderedNetwork, error) {
	if err := st.Scan(ctx); err != nil {
		log.WithError(err).Warn("Scan request failed, listing previous results")
	}

	ordered, err := st.GetOrderedNetworks(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing ordered networks: %w", err)
	}
	return ordered, nil
}
