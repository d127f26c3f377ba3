package modem

import (
	"log/slog"
	"time"

	"i4.energy/across/sigfoxgw/at"
)

// DefaultBaudRate is the UART speed of the LYNX-Bee Sigfox modules.
const DefaultBaudRate = 9600

// Observer is notified once per finished operation.
type Observer func(op string, status Status, elapsed time.Duration)

// Timeouts holds the deadline of every wait the operations perform. Zero
// fields take the defaults listed in DefaultTimeouts.
type Timeouts struct {
	// Check bounds the readiness probe and the public key exchange.
	Check time.Duration
	// Command bounds setters, queries and their echo/value stages.
	Command time.Duration
	// Send bounds an uplink without acknowledgement.
	Send time.Duration
	// SendACK bounds the first stage of an acknowledged uplink.
	SendACK time.Duration
	// Downlink bounds the wait for the downlink marker.
	Downlink time.Duration
	// DownlinkEnd bounds the wait for the end of the downlink payload.
	DownlinkEnd time.Duration
	// KeepAlive bounds the keep-alive period setter.
	KeepAlive time.Duration
	// ContinuousWave bounds the carrier test command.
	ContinuousWave time.Duration
	// TestTransmitUnit is multiplied by count and period of a test transmission.
	TestTransmitUnit time.Duration
}

// DefaultTimeouts returns the deadlines observed on real modules.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Check:            5 * time.Second,
		Command:          time.Second,
		Send:             15 * time.Second,
		SendACK:          10 * time.Second,
		Downlink:         20 * time.Second,
		DownlinkEnd:      25 * time.Second,
		KeepAlive:        10 * time.Second,
		ContinuousWave:   500 * time.Millisecond,
		TestTransmitUnit: 10 * time.Second,
	}
}

func (t *Timeouts) setDefaults() {
	d := DefaultTimeouts()
	fill := func(v *time.Duration, def time.Duration) {
		if *v == 0 {
			*v = def
		}
	}
	fill(&t.Check, d.Check)
	fill(&t.Command, d.Command)
	fill(&t.Send, d.Send)
	fill(&t.SendACK, d.SendACK)
	fill(&t.Downlink, d.Downlink)
	fill(&t.DownlinkEnd, d.DownlinkEnd)
	fill(&t.KeepAlive, d.KeepAlive)
	fill(&t.ContinuousWave, d.ContinuousWave)
	fill(&t.TestTransmitUnit, d.TestTransmitUnit)
}

// Config is the configuration of a Modem. Use NewConfigBuilder to create one.
type Config struct {
	dialer   Dialer
	power    PowerRail
	mux      Mux
	console  Console
	logger   *slog.Logger
	observer Observer

	baudRate     int
	settleDelay  time.Duration
	restartDelay time.Duration
	pollInterval time.Duration
	timeouts     Timeouts
}

func (c *Config) validate() error {
	if c.dialer == nil {
		return ErrNoDialer
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	if c.baudRate == 0 {
		c.baudRate = DefaultBaudRate
	}
	if c.settleDelay == 0 {
		c.settleDelay = 5 * time.Second
	}
	if c.restartDelay == 0 {
		c.restartDelay = 2 * time.Second
	}
	if c.pollInterval == 0 {
		c.pollInterval = at.DefaultPollInterval
	}
	c.timeouts.setDefaults()
}

// ConfigBuilder assembles a Config.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder returns a builder with every setting at its default.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{}
}

// WithDialer sets how the serial link is opened. Required.
func (b *ConfigBuilder) WithDialer(d Dialer) *ConfigBuilder {
	b.config.dialer = d
	return b
}

// WithPowerRail sets the socket supply switch. Without one, On and Off
// leave power alone.
func (b *ConfigBuilder) WithPowerRail(p PowerRail) *ConfigBuilder {
	b.config.power = p
	return b
}

// WithMux sets the UART multiplexer. Without one, no routing is done.
func (b *ConfigBuilder) WithMux(m Mux) *ConfigBuilder {
	b.config.mux = m
	return b
}

// WithConsole sets where diagnostics such as the firmware version are
// printed. Without one they are dropped.
func (b *ConfigBuilder) WithConsole(c Console) *ConfigBuilder {
	b.config.console = c
	return b
}

// WithLogger sets the structured logger. Defaults to discarding.
func (b *ConfigBuilder) WithLogger(l *slog.Logger) *ConfigBuilder {
	b.config.logger = l
	return b
}

// WithObserver sets a hook called after every operation.
func (b *ConfigBuilder) WithObserver(o Observer) *ConfigBuilder {
	b.config.observer = o
	return b
}

// WithBaudRate sets the UART speed. Defaults to DefaultBaudRate.
func (b *ConfigBuilder) WithBaudRate(baud int) *ConfigBuilder {
	b.config.baudRate = baud
	return b
}

// WithSettleDelay sets how long On waits after asserting power before
// probing the module. Defaults to 5s.
func (b *ConfigBuilder) WithSettleDelay(d time.Duration) *ConfigBuilder {
	b.config.settleDelay = d
	return b
}

// WithRestartDelay sets the pause of DefaultConfiguration. Defaults to 2s.
func (b *ConfigBuilder) WithRestartDelay(d time.Duration) *ConfigBuilder {
	b.config.restartDelay = d
	return b
}

// WithPollInterval sets the pause between reads that returned no data.
func (b *ConfigBuilder) WithPollInterval(d time.Duration) *ConfigBuilder {
	b.config.pollInterval = d
	return b
}

// WithTimeouts overrides operation deadlines. Zero fields keep their default.
func (b *ConfigBuilder) WithTimeouts(t Timeouts) *ConfigBuilder {
	b.config.timeouts = t
	return b
}

// Build validates the configuration and fills in defaults.
func (b *ConfigBuilder) Build() (Config, error) {
	c := b.config
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	c.setDefaults()
	return c, nil
}
