package modem

//go:generate go tool mockgen -source=collaborators.go -destination=mock_collaborators.go -package=modem

import (
	"fmt"
	"io"
	"sync"

	"github.com/ecc1/gpio"
)

// Socket identifies a physical slot the module can be plugged into.
type Socket int

const (
	Socket0 Socket = iota
	Socket1
)

func (s Socket) String() string {
	return fmt.Sprintf("socket%d", int(s))
}

// PowerRail switches the supply of a socket.
type PowerRail interface {
	Set(socket Socket, on bool) error
}

// Mux routes the host UART to a socket.
type Mux interface {
	Select(socket Socket) error
	Release(socket Socket) error
}

// Console receives human-readable diagnostics, one line at a time.
type Console interface {
	Println(line string)
}

// WriterConsole is a Console printing to an io.Writer.
type WriterConsole struct {
	W io.Writer
}

// Println implements Console.
func (c WriterConsole) Println(line string) {
	fmt.Fprintln(c.W, line)
}

// pinWriter is the part of gpio.OutputPin the collaborators use.
type pinWriter interface {
	Write(bool) error
}

// openPin is replaced in tests.
var openPin = func(pin int, activeLow bool, initial bool) (pinWriter, error) {
	return gpio.Output(pin, activeLow, initial)
}

// pinSet lazily exports GPIO output pins and keeps them open.
type pinSet struct {
	mu   sync.Mutex
	pins map[int]pinWriter
}

func (s *pinSet) write(pin int, activeLow bool, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pins[pin]
	if !ok {
		var err error
		p, err = openPin(pin, activeLow, value)
		if err != nil {
			return fmt.Errorf("open gpio %d: %w", pin, err)
		}
		if s.pins == nil {
			s.pins = make(map[int]pinWriter)
		}
		s.pins[pin] = p
	}

	if err := p.Write(value); err != nil {
		return fmt.Errorf("write gpio %d: %w", pin, err)
	}
	return nil
}

// GPIOPowerRail drives one GPIO line per socket to switch its supply.
type GPIOPowerRail struct {
	// Pins maps each socket to the GPIO line enabling its supply.
	Pins map[Socket]int
	// ActiveLow inverts the lines.
	ActiveLow bool

	pins pinSet
}

// Set implements PowerRail.
func (r *GPIOPowerRail) Set(socket Socket, on bool) error {
	pin, ok := r.Pins[socket]
	if !ok {
		return fmt.Errorf("no power pin for %v", socket)
	}
	return r.pins.write(pin, r.ActiveLow, on)
}

// GPIOMux routes the UART through a two-way multiplexer: SelectPin low
// routes Socket0, high routes Socket1, and EnablePin connects the mux.
type GPIOMux struct {
	SelectPin int
	EnablePin int
	ActiveLow bool

	pins pinSet
}

// Select implements Mux.
func (m *GPIOMux) Select(socket Socket) error {
	if socket != Socket0 && socket != Socket1 {
		return fmt.Errorf("mux cannot route %v", socket)
	}
	if err := m.pins.write(m.SelectPin, m.ActiveLow, socket == Socket1); err != nil {
		return err
	}
	return m.pins.write(m.EnablePin, m.ActiveLow, true)
}

// Release implements Mux. The UART falls back to the host's console port.
func (m *GPIOMux) Release(Socket) error {
	return m.pins.write(m.EnablePin, m.ActiveLow, false)
}
