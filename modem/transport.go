package modem

//go:generate go tool mockgen -source=transport.go -destination=mock_transport.go -package=modem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

// DefaultReadTimeout bounds a single read on a serial Transport. Reads that
// time out return no data, which lets the response matcher enforce its own
// deadlines.
const DefaultReadTimeout = 50 * time.Millisecond

// Transport represents an established, bidirectional byte stream to a
// Sigfox module.
//
// Reads must not block indefinitely: when no data is available, Read should
// return (0, nil) after a short while, as a serial port with a read timeout
// does. Typical implementations include serial ports or in-memory fakes
// used for testing.
type Transport interface {
	io.ReadWriteCloser
}

// Dialer opens a Transport to the module plugged into a socket.
//
// Dialer abstracts how the link is created and is used by On each time the
// module is powered up.
type Dialer interface {
	// Dial is responsible for creating and returning a connected Transport
	// for the given socket at the given baud rate. It should respect
	// cancellation provided by the context.
	Dial(ctx context.Context, socket Socket, baudRate int) (Transport, error)
}

// SerialDialer opens the module's UART using go.bug.st/serial.
type SerialDialer struct {
	// Ports maps each socket to the serial device it is wired to,
	// e.g. "/dev/ttyUSB0".
	Ports map[Socket]string
	// Mode overrides the default 8N1 framing. The baud rate passed to Dial
	// always takes precedence over Mode.BaudRate.
	Mode *serial.Mode
	// ReadTimeout defaults to DefaultReadTimeout.
	ReadTimeout time.Duration
}

// Dial implements Dialer.
func (d SerialDialer) Dial(ctx context.Context, socket Socket, baudRate int) (Transport, error) {
	if ctx == nil {
		return nil, errors.New("sigfox: context is nil")
	}

	name := d.Ports[socket]
	if name == "" {
		return nil, fmt.Errorf("sigfox: no serial port configured for %v", socket)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	if d.Mode != nil {
		m := *d.Mode
		if baudRate > 0 {
			m.BaudRate = baudRate
		}
		mode = &m
	}

	port, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("sigfox: open %s: %w", name, err)
	}

	readTimeout := d.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = DefaultReadTimeout
	}
	if err := port.SetReadTimeout(readTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("sigfox: set read timeout on %s: %w", name, err)
	}

	// Drop boot noise the module printed before we were listening.
	if err := port.ResetInputBuffer(); err != nil {
		port.Close()
		return nil, fmt.Errorf("sigfox: reset input buffer on %s: %w", name, err)
	}

	return port, nil
}
