package network_wifi

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/sirupsen/logrus"

	"github.com/dogeorg/iwdscan/pkg/iwd"
)

var _ WifiScanner = IWDScanner{}

// IWDScanner scans through the iwd daemon. Every call opens its own bus
// connection and closes it before returning.
type IWDScanner struct {
	Options     iwd.Options
	SkipInvalid bool
	Log         logrus.FieldLogger

	// Dial defaults to iwd.Dial.
	Dial func(ctx context.Context, opts iwd.Options) (*iwd.Client, error)
	// Interfaces defaults to listing nl80211 interfaces.
	Interfaces InterfaceSource
}

func (s IWDScanner) log() logrus.FieldLogger {
	if s.Log == nil {
		return logrus.StandardLogger()
	}
	return s.Log
}

func (s IWDScanner) dial(ctx context.Context) (*iwd.Client, error) {
	dial := s.Dial
	if dial == nil {
		dial = iwd.Dial
	}
	return dial(ctx, s.Options)
}

func (s IWDScanner) enumerate(ctx context.Context, client *iwd.Client) (map[dbus.ObjectPath]*iwd.Bundle, error) {
	objects, err := client.ManagedObjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate iwd objects: %w", err)
	}

	decoder := iwd.Decoder{SkipInvalid: s.SkipInvalid, Log: s.log()}
	bundles, err := decoder.Decode(objects)
	if err != nil {
		return nil, fmt.Errorf("failed to decode iwd objects: %w", err)
	}
	return bundles, nil
}

func (s IWDScanner) Scan(ctx context.Context) ([]ScannedWifiNetwork, error) {
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

	catalog := iwd.BuildCatalog(bundles)
	log.WithField("networks", len(catalog.Networks)).Debug("Built iwd catalog")

	if catalog.Station == nil {
		log.Info("No wireless station found")
		return nil, nil
	}
	if len(catalog.StationCandidates) > 1 {
		log.WithFields(logrus.Fields{
			"candidates": catalog.StationCandidates,
			"using":      catalog.Station.String(),
		}).Warn("Multiple wireless stations found, using the first")
	}
	log.WithField("station", catalog.Station.String()).Debug("Using station")

	station, err := catalog.Station.Proxy(client)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve station %s: %w", catalog.Station, err)
	}

	ordered, err := iwd.ScanAndList(ctx, station, log)
	if err != nil {
		return nil, err
	}

	ranked := iwd.Rank(ordered, catalog.Networks)
	if skipped := len(ordered) - len(ranked); skipped > 0 {
		log.WithField("skipped", skipped).Debug("Ordered networks missing from catalog")
	}

	networks := make([]ScannedWifiNetwork, 0, len(ranked))
	for _, r := range ranked {
		networks = append(networks, ScannedWifiNetwork{
			Path:      r.Path,
			SSID:      r.Network.Name,
			Security:  r.Network.Type,
			Signal:    r.Signal,
			Connected: r.Network.Connected,
			Known:     r.Network.Known(),
		})
	}
	return networks, nil
}
