package modem

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"i4.energy/across/sigfoxgw/at"
)

const (
	// MinPower and MaxPower bound the transmit power in dBm.
	MinPower = 0
	MaxPower = 24

	// firmwareDigits is the length of the version that follows the marker.
	firmwareDigits = 8
)

// ID reads the 32-bit Sigfox device identifier.
func (m *Modem) ID(ctx context.Context) (uint32, error) {
	var id uint32
	err := m.run("id", func() error {
		buf, err := m.info(ctx, "10")
		if err != nil {
			return err
		}
		id = uint32(at.ParseHex(buf))
		m.state.ID = id
		return nil
	})
	return id, err
}

// PAC reads the porting authorization code used to register the device.
func (m *Modem) PAC(ctx context.Context) (uint64, error) {
	var pac uint64
	err := m.run("pac", func() error {
		buf, err := m.info(ctx, "11")
		if err != nil {
			return err
		}
		pac = at.ParseHex(buf)
		m.state.PAC = pac
		return nil
	})
	return pac, err
}

// Power reads the transmit power in dBm.
func (m *Modem) Power(ctx context.Context) (uint8, error) {
	var power uint8
	err := m.run("power", func() error {
		buf, err := m.readRegister(ctx, "S302")
		if err != nil {
			return err
		}
		power = at.ParseUint8(buf)
		m.state.Power = power
		return nil
	})
	return power, err
}

// SetPower sets the transmit power in dBm and saves it to non-volatile
// memory. Levels outside MinPower..MaxPower are rejected with
// ErrPowerOutOfRange without contacting the module.
func (m *Modem) SetPower(ctx context.Context, dBm int) error {
	return m.run("set_power", func() error {
		if dBm < MinPower || dBm > MaxPower {
			return fmt.Errorf("%w: %d dBm, allowed %d..%d", ErrPowerOutOfRange, dBm, MinPower, MaxPower)
		}

		if err := m.setAndSave(ctx, "S302", strconv.Itoa(dBm)); err != nil {
			return err
		}
		m.state.Power = uint8(dBm)
		return nil
	})
}

// Frequency reads the uplink center frequency in Hz.
func (m *Modem) Frequency(ctx context.Context) (uint32, error) {
	var freq uint32
	err := m.run("frequency", func() error {
		buf, err := m.readRegister(ctx, "$IF")
		if err != nil {
			return err
		}
		freq = at.ParseUint32(buf)
		m.state.Frequency = freq
		return nil
	})
	return freq, err
}

// SetFrequency sets the uplink center frequency in Hz and saves it to
// non-volatile memory.
func (m *Modem) SetFrequency(ctx context.Context, hz uint32) error {
	return m.run("set_frequency", func() error {
		if err := m.setAndSave(ctx, "$IF", strconv.FormatUint(uint64(hz), 10)); err != nil {
			return err
		}
		m.state.Frequency = hz
		return nil
	})
}

// Firmware reads the firmware version, e.g. "UDL01020304", and prints it to
// the console.
func (m *Modem) Firmware(ctx context.Context) (string, error) {
	var fw string
	err := m.run("firmware", func() error {
		cmd, err := m.build(at.TypeSet, "$I", "9")
		if err != nil {
			return err
		}

		outcome, err := m.exchange(ctx, cmd, at.FirmwareMarker, at.ERROR, m.config.timeouts.Command)
		if err := m.result(outcome, err, "AT$I=9"); err != nil {
			return err
		}

		outcome, err = m.waitFor(ctx, at.CRLF, "", m.config.timeouts.Command)
		if err := m.result(outcome, err, "firmware version"); err != nil {
			return err
		}

		version := strings.TrimRight(string(m.matcher.Bytes()), at.CRLF)
		if len(version) > firmwareDigits {
			version = version[:firmwareDigits]
		}
		fw = at.FirmwareMarker + version

		m.state.Firmware = fw
		m.println("Firmware Version:" + fw)
		return nil
	})
	return fw, err
}

// ShowPacket prints the bytes captured by the last wait to the console.
func (m *Modem) ShowPacket() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.matcher == nil {
		return
	}
	m.println(string(m.matcher.Bytes()))
}

// info sends an information request and returns the line that carries the
// value. The first line break ends the echo of the request, the second one
// the value itself.
func (m *Modem) info(ctx context.Context, item string) ([]byte, error) {
	cmd, err := m.build(at.TypeSet, "$I", item)
	if err != nil {
		return nil, err
	}
	return m.readValue(ctx, cmd, "")
}

// readRegister sends a read command; ERROR ends either stage.
func (m *Modem) readRegister(ctx context.Context, verb string) ([]byte, error) {
	cmd, err := m.build(at.TypeRead, verb)
	if err != nil {
		return nil, err
	}
	return m.readValue(ctx, cmd, at.ERROR)
}

func (m *Modem) readValue(ctx context.Context, cmd []byte, valueAlternate string) ([]byte, error) {
	stage := strings.TrimSpace(string(cmd))

	outcome, err := m.exchange(ctx, cmd, at.CRLF, at.ERROR, m.config.timeouts.Command)
	if err := m.result(outcome, err, stage); err != nil {
		return nil, err
	}

	outcome, err = m.waitFor(ctx, at.CRLF, valueAlternate, m.config.timeouts.Command)
	if err := m.result(outcome, err, stage+" value"); err != nil {
		return nil, err
	}
	return m.matcher.Bytes(), nil
}

// setAndSave writes a register and stores the configuration.
func (m *Modem) setAndSave(ctx context.Context, verb, value string) error {
	cmd, err := m.build(at.TypeSet, verb, value)
	if err != nil {
		return err
	}

	outcome, err := m.exchange(ctx, cmd, at.OK, at.ERROR, m.config.timeouts.Command)
	if err := m.result(outcome, err, "AT"+verb); err != nil {
		return err
	}
	return m.saveSettings(ctx)
}
