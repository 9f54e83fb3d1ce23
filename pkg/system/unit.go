package system

import (
	"context"
	"fmt"

	dbus "github.com/coreos/go-systemd/v22/dbus"
)

type UnitState struct {
	Name        string
	LoadState   string
	ActiveState string
	SubState    string
}

func (s UnitState) String() string {
	return fmt.Sprintf("%s is %s (%s, %s)", s.Name, s.ActiveState, s.SubState, s.LoadState)
}

// Running reports whether systemd considers the unit up.
func (s UnitState) Running() bool {
	return s.ActiveState == "active" || s.ActiveState == "reloading"
}

type unitLister interface {
	ListUnitsByNamesContext(ctx context.Context, units []string) ([]dbus.UnitStatus, error)
	Close()
}

// GetUnitState asks systemd over the system bus for the state of one unit.
func GetUnitState(ctx context.Context, unit string) (UnitState, error) {
	conn, err := dbus.NewSystemConnectionContext(ctx)
	if err != nil {
		return UnitState{}, fmt.Errorf("failed to connect to systemd: %w", err)
	}
	return getUnitState(ctx, conn, unit)
}

func getUnitState(ctx context.Context, conn unitLister, unit string) (UnitState, error) {
	defer conn.Close()

	units, err := conn.ListUnitsByNamesContext(ctx, []string{unit})
	if err != nil {
		return UnitState{}, fmt.Errorf("failed to query unit %s: %w", unit, err)
	}

	for _, u := range units {
		if u.Name == unit {
			return UnitState{
				Name:        u.Name,
				LoadState:   u.LoadState,
				ActiveState: u.ActiveState,
				SubState:    u.SubState,
			}, nil
		}
	}

	return UnitState{}, fmt.Errorf("unit %s not known to systemd", unit)
}
