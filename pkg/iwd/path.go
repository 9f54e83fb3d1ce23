package iwd

import (
	"github.com/godbus/dbus/v5"
)

// Proxy is implemented by the typed views of a remote object. A Path's type
// parameter names the view the path is expected to support.
type Proxy[T any] interface {
	Interface() string
	bind(c *Client, obj dbus.BusObject) T
}

// Path is an object path tagged with the proxy type it is asserted to
// support. The tag exists only at compile time: nothing checks it against the
// remote object, and a wrong assertion shows up as a failed method call.
type Path[T Proxy[T]] struct {
	path dbus.ObjectPath
}

func NewPath[T Proxy[T]](p dbus.ObjectPath) Path[T] {
	return Path[T]{path: p}
}

// ObjectPath drops the tag, e.g. to put the path back on the wire.
func (p Path[T]) ObjectPath() dbus.ObjectPath {
	return p.path
}

func (p Path[T]) String() string {
	return string(p.path)
}

// Proxy binds the path to c. It fails only when the connection is gone.
func (p Path[T]) Proxy(c *Client) (T, error) {
	var view T
	if !c.bus.Connected() {
		return view, ErrNotConnected
	}
	return view.bind(c, c.bus.Object(c.service, p.path)), nil
}
