package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the application configuration
type Config struct {
	// BindAddress is the address the server listens on (e.g. "0.0.0.0:8080")
	BindAddress string `toml:"bind_address"`
	// SerialPort0 and SerialPort1 are the UARTs wired to each socket
	// (e.g. "/dev/ttyS0"). An empty path leaves the socket unused.
	SerialPort0 string `toml:"serial_port_0"`
	SerialPort1 string `toml:"serial_port_1"`
	// Socket is the socket the module is plugged into (0 or 1)
	Socket int `toml:"socket"`
	// BaudRate is the baud rate for serial communication with the module (e.g. 9600)
	BaudRate int `toml:"baud_rate"`
	// LogLevel sets the logging level (e.g. "debug", "info", "warn", "error")
	LogLevel string `toml:"log_level"`
	// SettleDelay is how long the module gets to boot after power-on
	SettleDelay time.Duration `toml:"settle_delay"`

	// PowerPin0 and PowerPin1 are the GPIO lines switching the socket
	// supplies. -1 disables power control.
	PowerPin0      int  `toml:"power_pin_0"`
	PowerPin1      int  `toml:"power_pin_1"`
	PowerActiveLow bool `toml:"power_active_low"`

	// MuxSelectPin and MuxEnablePin drive the UART multiplexer. -1
	// disables it.
	MuxSelectPin int  `toml:"mux_select_pin"`
	MuxEnablePin int  `toml:"mux_enable_pin"`
	MuxActiveLow bool `toml:"mux_active_low"`
}

// ConfigOption is a function that modifies a Config
type ConfigOption func(*Config) error

// LoadConfig creates a new config by applying the given options in order
func LoadConfig(opts ...ConfigOption) (*Config, error) {
	config := &Config{}

	for _, opt := range opts {
		if err := opt(config); err != nil {
			return nil, err
		}
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	if c.Socket != 0 && c.Socket != 1 {
		return fmt.Errorf("config: socket must be 0 or 1, got %d", c.Socket)
	}
	if c.serialPort(c.Socket) == "" {
		return fmt.Errorf("config: no serial port for socket %d", c.Socket)
	}
	if c.BaudRate <= 0 {
		return fmt.Errorf("config: invalid baud rate %d", c.BaudRate)
	}
	return nil
}

func (c *Config) serialPort(socket int) string {
	if socket == 1 {
		return c.SerialPort1
	}
	return c.SerialPort0
}

// WithDefaults applies default configuration values
func WithDefaults() ConfigOption {
	return func(c *Config) error {
		c.BindAddress = "0.0.0.0:8080"
		c.SerialPort0 = "/dev/ttyS0"
		c.BaudRate = 9600
		c.LogLevel = "info"
		c.SettleDelay = 5 * time.Second
		c.PowerPin0 = -1
		c.PowerPin1 = -1
		c.MuxSelectPin = -1
		c.MuxEnablePin = -1
		return nil
	}
}

// WithFile loads configuration from a TOML file. Keys missing from the
// file keep their current value; unknown keys are an error. An empty path
// is ignored.
func WithFile(path string) ConfigOption {
	return func(c *Config) error {
		if path == "" {
			return nil
		}

		meta, err := toml.DecodeFile(path, c)
		if err != nil {
			return fmt.Errorf("config load failed (%s): %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return fmt.Errorf("config load failed (%s): unknown keys %s", path, strings.Join(keys, ", "))
		}
		return nil
	}
}

// WithEnv loads configuration from environment variables
func WithEnv() ConfigOption {
	return func(c *Config) error {
		if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
			c.BindAddress = addr
		}

		if serial := os.Getenv("SERIAL_PORT_0"); serial != "" {
			c.SerialPort0 = serial
		}

		if serial := os.Getenv("SERIAL_PORT_1"); serial != "" {
			c.SerialPort1 = serial
		}

		if socket := os.Getenv("SOCKET"); socket != "" {
			if s, err := strconv.Atoi(socket); err == nil {
				c.Socket = s
			}
		}

		if baud := os.Getenv("BAUD_RATE"); baud != "" {
			if b, err := strconv.Atoi(baud); err == nil {
				c.BaudRate = b
			}
		}

		if level := os.Getenv("LOG_LEVEL"); level != "" {
			c.LogLevel = level
		}

		if settle := os.Getenv("SETTLE_DELAY"); settle != "" {
			if d, err := time.ParseDuration(settle); err == nil {
				c.SettleDelay = d
			}
		}

		return nil
	}
}

// WithFlags loads configuration from command-line flags
func WithFlags(fSet *flag.FlagSet) ConfigOption {
	return func(c *Config) error {
		fSet.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "bind-address":
				c.BindAddress = f.Value.String()
			case "serial-port-0":
				c.SerialPort0 = f.Value.String()
			case "serial-port-1":
				c.SerialPort1 = f.Value.String()
			case "socket":
				if s, err := strconv.Atoi(f.Value.String()); err == nil {
					c.Socket = s
				}
			case "baud-rate":
				if b, err := strconv.Atoi(f.Value.String()); err == nil {
					c.BaudRate = b
				}
			case "log-level":
				c.LogLevel = f.Value.String()
			case "settle-delay":
				if d, err := time.ParseDuration(f.Value.String()); err == nil {
					c.SettleDelay = d
				}
			}
		})
		return nil
	}
}
