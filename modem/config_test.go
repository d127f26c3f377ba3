package modem_test

import (
	"testing"
	"time"

	"go.uber.org/mock/gomock"
	"i4.energy/across/sigfoxgw/modem"
)

func TestConfig(t *testing.T) {
	t.Run("ErrNoDialer when no dialer provided", func(t *testing.T) {
		_, err := modem.NewConfigBuilder().Build()

		if err != modem.ErrNoDialer {
			t.Errorf("expected ErrNoDialer, got: %v", err)
		}
	})

	t.Run("New rejects a config without dialer", func(t *testing.T) {
		m, err := modem.New(modem.Config{})

		if err != modem.ErrNoDialer {
			t.Errorf("expected ErrNoDialer, got: %v", err)
		}
		if m != nil {
			t.Error("New() should not return a modem on error")
		}
	})

	t.Run("Build with dialer succeeds", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		_, err := modem.NewConfigBuilder().
			WithDialer(modem.NewMockDialer(ctrl)).
			WithBaudRate(19200).
			Build()

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestDefaultTimeouts(t *testing.T) {
	d := modem.DefaultTimeouts()

	tests := []struct {
		name string
		got  time.Duration
		want time.Duration
	}{
		{"Check", d.Check, 5 * time.Second},
		{"Command", d.Command, time.Second},
		{"Send", d.Send, 15 * time.Second},
		{"SendACK", d.SendACK, 10 * time.Second},
		{"Downlink", d.Downlink, 20 * time.Second},
		{"DownlinkEnd", d.DownlinkEnd, 25 * time.Second},
		{"KeepAlive", d.KeepAlive, 10 * time.Second},
		{"ContinuousWave", d.ContinuousWave, 500 * time.Millisecond},
		{"TestTransmitUnit", d.TestTransmitUnit, 10 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, tt.got)
			}
		})
	}
}
