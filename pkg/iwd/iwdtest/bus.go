// Package iwdtest provides an in-memory D-Bus for exercising iwd clients
// without a running daemon.
package iwdtest

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
)

const errUnknownMethod = "org.freedesktop.DBus.Error.UnknownMethod"

type Call struct {
	Destination string
	Path        dbus.ObjectPath
	Method      string
}

type callKey struct {
	path   dbus.ObjectPath
	method string
}

type reply struct {
	body []interface{}
	err  error
}

// Bus answers method calls from canned replies and records every call in
// the order it was made. Calls without a reply fail with UnknownMethod, like
// a real object lacking the interface. Reply bodies are marshalled to the
// wire format and back, so callers see the types a connection would hand
// them.
type Bus struct {
	mu      sync.Mutex
	replies map[callKey]reply
	calls   []Call
	closed  bool
}

func NewBus() *Bus {
	return &Bus{replies: map[callKey]reply{}}
}

func (b *Bus) Reply(path dbus.ObjectPath, method string, body ...interface{}) *Bus {
	decoded, err := roundTrip(body)
	if err != nil {
		err = fmt.Errorf("iwdtest: encoding %s reply: %w", method, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.replies[callKey{path, method}] = reply{body: decoded, err: err}
	return b
}

// roundTrip encodes body as a method return message and decodes it again.
func roundTrip(body []interface{}) ([]interface{}, error) {
	if len(body) == 0 {
		return nil, nil
	}

	msg := &dbus.Message{
		Type: dbus.TypeMethodReply,
		Headers: map[dbus.HeaderField]dbus.Variant{
			dbus.FieldReplySerial: dbus.MakeVariant(uint32(1)),
			dbus.FieldSignature:   dbus.MakeVariant(dbus.SignatureOf(body...)),
		},
		Body: body,
	}

	var buf bytes.Buffer
	if err := msg.EncodeTo(&buf, binary.LittleEndian); err != nil {
		return nil, err
	}
	decoded, err := dbus.DecodeMessage(&buf)
	if err != nil {
		return nil, err
	}
	return decoded.Body, nil
}

func (b *Bus) Fail(path dbus.ObjectPath, method string, err error) *Bus {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.replies[callKey{path, method}] = reply{err: err}
	return b
}

func (b *Bus) Object(dest string, path dbus.ObjectPath) dbus.BusObject {
	return &Object{bus: b, dest: dest, path: path}
}

func (b *Bus) Connected() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.closed
}

func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

func (b *Bus) Closed() bool {
	return !b.Connected()
}

func (b *Bus) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Call(nil), b.calls...)
}

// Methods lists the called method names in order.
func (b *Bus) Methods() []string {
	var out []string
	for _, c := range b.Calls() {
		out = append(out, c.Method)
	}
	return out
}

// Object implements the calling side of dbus.BusObject. Methods other than
// CallWithContext, Destination and Path are not supported and panic.
type Object struct {
	dbus.BusObject

	bus  *Bus
	dest string
	path dbus.ObjectPath
}

func (o *Object) Destination() string   { return o.dest }
func (o *Object) Path() dbus.ObjectPath { return o.path }

func (o *Object) CallWithContext(ctx context.Context, method string, flags dbus.Flags, args ...interface{}) *dbus.Call {
	b := o.bus
	b.mu.Lock()
	b.calls = append(b.calls, Call{Destination: o.dest, Path: o.path, Method: method})
	r, ok := b.replies[callKey{o.path, method}]
	b.mu.Unlock()

	call := &dbus.Call{Destination: o.dest, Path: o.path, Method: method, Args: args}
	switch {
	case ctx.Err() != nil:
		call.Err = ctx.Err()
	case !ok:
		call.Err = dbus.Error{Name: errUnknownMethod, Body: []interface{}{method}}
	case r.err != nil:
		call.Err = r.err
	default:
		call.Body = r.body
	}
	return call
}

type Pair struct {
	Path   dbus.ObjectPath
	Signal int16
}

// OrderedNetworks builds a GetOrderedNetworks reply body, signature a(on).
func OrderedNetworks(pairs ...Pair) []Pair {
	return pairs
}
