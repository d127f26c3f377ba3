package modem

import (
	"context"
	"fmt"
	"time"

	"i4.energy/across/sigfoxgw/at"
)

// On powers up the module in the given socket: it routes the UART, opens
// the transport, asserts power, waits for the module to boot and checks
// that it answers.
func (m *Modem) On(ctx context.Context, socket Socket) error {
	return m.run("on", func() error {
		m.state.Socket = socket
		m.state.BaudRate = m.config.baudRate

		if m.config.mux != nil {
			if err := m.config.mux.Select(socket); err != nil {
				return fmt.Errorf("%w: select %v: %w", ErrNoAnswer, socket, err)
			}
		}

		if m.transport != nil {
			if err := m.transport.Close(); err != nil {
				m.config.logger.Warn("failed to close previous transport", "error", err)
			}
			m.transport = nil
		}

		transport, err := m.config.dialer.Dial(ctx, socket, m.config.baudRate)
		if err != nil {
			return fmt.Errorf("%w: open transport on %v: %w", ErrNoAnswer, socket, err)
		}
		if transport == nil {
			return ErrNotInitialized
		}
		m.transport = transport
		m.matcher = at.NewMatcher(transport)
		m.matcher.PollInterval = m.config.pollInterval

		if m.config.power != nil {
			if err := m.config.power.Set(socket, true); err != nil {
				return fmt.Errorf("%w: power %v: %w", ErrNoAnswer, socket, err)
			}
		}

		m.config.logger.Info("module powered", "socket", socket, "baud_rate", m.config.baudRate)
		if err := sleep(ctx, m.config.settleDelay); err != nil {
			return err
		}

		return m.check(ctx, m.config.timeouts.Check)
	})
}

// Off closes the transport, releases the UART and cuts power. Failures of
// the hardware collaborators are logged; Off itself always succeeds.
func (m *Modem) Off() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	socket := m.state.Socket
	if m.transport != nil {
		if err := m.transport.Close(); err != nil {
			m.config.logger.Warn("failed to close transport", "socket", socket, "error", err)
		}
		m.transport = nil
		m.matcher = nil
	}

	if m.config.mux != nil {
		if err := m.config.mux.Release(socket); err != nil {
			m.config.logger.Warn("failed to release mux", "socket", socket, "error", err)
		}
	}

	if m.config.power != nil {
		if err := m.config.power.Set(socket, false); err != nil {
			m.config.logger.Warn("failed to cut power", "socket", socket, "error", err)
		}
	}

	m.config.logger.Info("module switched off", "socket", socket)
	return nil
}

// Check verifies that the module answers.
func (m *Modem) Check(ctx context.Context) error {
	return m.run("check", func() error {
		return m.check(ctx, m.config.timeouts.Check)
	})
}

func (m *Modem) check(ctx context.Context, timeout time.Duration) error {
	cmd, err := m.build(at.TypeSet, "")
	if err != nil {
		return err
	}
	outcome, err := m.exchange(ctx, cmd, at.OK, at.ERROR, timeout)
	return m.result(outcome, err, "AT")
}

// SaveSettings stores the current configuration in the module's
// non-volatile memory.
func (m *Modem) SaveSettings(ctx context.Context) error {
	return m.run("save_settings", func() error {
		return m.saveSettings(ctx)
	})
}

func (m *Modem) saveSettings(ctx context.Context) error {
	cmd, err := m.build(at.TypeSet, "$WR")
	if err != nil {
		return err
	}
	outcome, err := m.exchange(ctx, cmd, at.OK, at.ERROR, m.config.timeouts.Command)
	return m.result(outcome, err, "AT$WR")
}

// FactorySettings restores the factory configuration. The module has no
// factory reset of its own, so this confirms the module answers and saves
// the current settings.
func (m *Modem) FactorySettings(ctx context.Context) error {
	return m.run("factory_settings", func() error {
		if err := m.check(ctx, m.config.timeouts.Command); err != nil {
			return err
		}
		return m.saveSettings(ctx)
	})
}

// DefaultConfiguration reloads the configuration stored in the module's
// memory and waits until the module answers again.
func (m *Modem) DefaultConfiguration(ctx context.Context) error {
	return m.run("default_configuration", func() error {
		if err := m.check(ctx, m.config.timeouts.Command); err != nil {
			return err
		}
		if err := sleep(ctx, m.config.restartDelay); err != nil {
			return err
		}
		return m.check(ctx, m.config.timeouts.Check)
	})
}

// SetPublicKey switches the module to the public key used by Sigfox
// network emulators.
func (m *Modem) SetPublicKey(ctx context.Context) error {
	return m.run("set_public_key", func() error {
		cmd, err := m.build(at.TypeSet, "S410", "1")
		if err != nil {
			return err
		}
		outcome, err := m.exchange(ctx, cmd, at.OK, at.ERROR, m.config.timeouts.Check)
		return m.result(outcome, err, "ATS410")
	})
}
