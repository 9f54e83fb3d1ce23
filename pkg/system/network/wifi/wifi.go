package network_wifi

import (
	"context"

	"github.com/godbus/dbus/v5"
	"github.com/sirupsen/logrus"

	iwdscan "github.com/dogeorg/iwdscan/pkg"
	"github.com/dogeorg/iwdscan/pkg/iwd"
)

type ScannedWifiNetwork struct {
	Path      dbus.ObjectPath
	SSID      string
	Security  iwd.SecurityType
	Signal    int16
	Connected bool
	Known     bool
}

type WifiScanner interface {
	// Scan returns the visible networks best first. A nil slice with a nil
	// error means there is no wireless station to scan with.
	Scan(ctx context.Context) ([]ScannedWifiNetwork, error)
}

func NewWifiScanner(config iwdscan.Config, log logrus.FieldLogger) IWDScanner {
	return IWDScanner{
		Options:     config.ClientOptions(),
		SkipInvalid: config.SkipInvalid,
		Log:         log,
	}
}
