package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		config, err := LoadConfig(WithDefaults())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if config.BaudRate != 9600 {
			t.Errorf("expected 9600 baud, got %d", config.BaudRate)
		}
		if config.SerialPort0 != "/dev/ttyS0" {
			t.Errorf("unexpected serial port %q", config.SerialPort0)
		}
		if config.PowerPin0 != -1 || config.MuxSelectPin != -1 {
			t.Error("expected GPIO control to be disabled by default")
		}
	})

	t.Run("File overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sigfoxgw.toml")
		data := `
serial_port_1 = "/dev/ttyUSB1"
socket = 1
log_level = "debug"
settle_delay = "2s"
power_pin_1 = 23
`
		if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
			t.Fatal(err)
		}

		config, err := LoadConfig(WithDefaults(), WithFile(path))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if config.Socket != 1 || config.SerialPort1 != "/dev/ttyUSB1" {
			t.Errorf("unexpected socket config %+v", config)
		}
		if config.SettleDelay != 2*time.Second {
			t.Errorf("expected 2s settle delay, got %v", config.SettleDelay)
		}
		if config.PowerPin1 != 23 || config.PowerPin0 != -1 {
			t.Errorf("unexpected power pins %d, %d", config.PowerPin0, config.PowerPin1)
		}
		if config.BaudRate != 9600 {
			t.Errorf("expected default baud rate to survive, got %d", config.BaudRate)
		}
	})

	t.Run("Unknown key in file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sigfoxgw.toml")
		if err := os.WriteFile(path, []byte(`sim_pin = "1234"`), 0o600); err != nil {
			t.Fatal(err)
		}

		if _, err := LoadConfig(WithDefaults(), WithFile(path)); err == nil {
			t.Error("expected error for unknown key")
		}
	})

	t.Run("Env and flags", func(t *testing.T) {
		t.Setenv("BAUD_RATE", "19200")
		t.Setenv("LOG_LEVEL", "warn")

		fSet := flag.NewFlagSet("test", flag.ContinueOnError)
		fSet.String("log-level", "info", "")
		fSet.String("bind-address", "", "")
		if err := fSet.Parse([]string{"-bind-address", "127.0.0.1:9000"}); err != nil {
			t.Fatal(err)
		}

		config, err := LoadConfig(WithDefaults(), WithEnv(), WithFlags(fSet))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if config.BaudRate != 19200 {
			t.Errorf("expected 19200 baud, got %d", config.BaudRate)
		}
		if config.LogLevel != "warn" {
			t.Errorf("unset flag must not override env, got %q", config.LogLevel)
		}
		if config.BindAddress != "127.0.0.1:9000" {
			t.Errorf("unexpected bind address %q", config.BindAddress)
		}
	})

	t.Run("Rejects socket without port", func(t *testing.T) {
		_, err := LoadConfig(WithDefaults(), func(c *Config) error {
			c.Socket = 1
			return nil
		})
		if err == nil {
			t.Error("expected error for socket 1 without serial port")
		}
	})
}
