package iwd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"
)

var ErrNotConnected = errors.New("iwd: bus connection is closed")

// Bus is the part of *dbus.Conn the client needs.
type Bus interface {
	Object(dest string, path dbus.ObjectPath) dbus.BusObject
	Connected() bool
	Close() error
}

var _ Bus = (*dbus.Conn)(nil)

type Options struct {
	// Bus is "system", "session" or a D-Bus address.
	Bus     string
	Service string
	// Timeout bounds every method call. Zero means no limit beyond ctx.
	Timeout time.Duration
}

type Client struct {
	bus     Bus
	service string
	timeout time.Duration
}

func NewClient(bus Bus, service string, timeout time.Duration) *Client {
	if service == "" {
		service = Service
	}
	return &Client{bus: bus, service: service, timeout: timeout}
}

// Dial opens a private connection to the configured bus. The caller owns
// the returned client and must Close it.
func Dial(ctx context.Context, opts Options) (*Client, error) {
	var (
		conn *dbus.Conn
		err  error
	)

	switch opts.Bus {
	case "", "system":
		conn, err = dbus.ConnectSystemBus(dbus.WithContext(ctx))
	case "session":
		conn, err = dbus.ConnectSessionBus(dbus.WithContext(ctx))
	default:
		conn, err = dbus.Connect(opts.Bus, dbus.WithContext(ctx))
	}
	if err != nil {
		return nil, fmt.Errorf("connecting to %s bus: %w", busName(opts.Bus), err)
	}

	return NewClient(conn, opts.Service, opts.Timeout), nil
}

func busName(bus string) string {
	if bus == "" {
		return "system"
	}
	return bus
}

func (c *Client) Close() error {
	return c.bus.Close()
}

// ManagedObjects fetches every object iwd exports in one round trip.
func (c *Client) ManagedObjects(ctx context.Context) (ManagedObjects, error) {
	if !c.bus.Connected() {
		return nil, ErrNotConnected
	}

	var objects ManagedObjects
	obj := c.bus.Object(c.service, objectManagerPath)
	if err := c.call(ctx, obj, objectManagerGetManagedObjects, &objects); err != nil {
		return nil, err
	}
	return objects, nil
}

func (c *Client) call(ctx context.Context, obj dbus.BusObject, method string, out ...interface{}) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	call := obj.CallWithContext(ctx, method, 0)
	if call.Err != nil {
		return fmt.Errorf("%s on %s: %w", method, obj.Path(), call.Err)
	}
	if len(out) == 0 {
		return nil
	}
	if err := call.Store(out...); err != nil {
		return fmt.Errorf("decoding %s reply: %w", method, err)
	}
	return nil
}
