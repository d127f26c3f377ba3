package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"i4.energy/across/sigfoxgw/metrics"
	"i4.energy/across/sigfoxgw/modem"
)

func main() {
	configFile := flag.String("config", "", "Path to a TOML configuration file")
	flag.String("serial-port-0", "/dev/ttyS0", "Serial port wired to socket 0")
	flag.String("serial-port-1", "", "Serial port wired to socket 1")
	flag.Int("socket", 0, "Socket the Sigfox module is plugged into (0 or 1)")
	flag.Int("baud-rate", modem.DefaultBaudRate, "Baud rate for serial communication")
	flag.String("bind-address", "0.0.0.0:8080", "Bind address for the HTTP server")
	flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Duration("settle-delay", 5*time.Second, "Time the module gets to boot after power-on")
	flag.Parse()

	config, err := LoadConfig(WithDefaults(), WithFile(*configFile), WithEnv(), WithFlags(flag.CommandLine))
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	switch config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	builder := modem.NewConfigBuilder().
		WithDialer(modem.SerialDialer{
			Ports: map[modem.Socket]string{
				modem.Socket0: config.SerialPort0,
				modem.Socket1: config.SerialPort1,
			},
		}).
		WithBaudRate(config.BaudRate).
		WithSettleDelay(config.SettleDelay).
		WithConsole(modem.WriterConsole{W: os.Stdout}).
		WithLogger(logger.With("component", "modem")).
		WithObserver(metrics.Observe)

	if rail := powerRail(config); rail != nil {
		builder = builder.WithPowerRail(rail)
	}
	if config.MuxSelectPin >= 0 && config.MuxEnablePin >= 0 {
		builder = builder.WithMux(&modem.GPIOMux{
			SelectPin: config.MuxSelectPin,
			EnablePin: config.MuxEnablePin,
			ActiveLow: config.MuxActiveLow,
		})
	}

	modemConfig, err := builder.Build()
	if err != nil {
		logger.Error("Failed to create modem config", "error", err)
		os.Exit(1)
	}

	m, err := modem.New(modemConfig)
	if err != nil {
		logger.Error("Failed to create modem", "error", err)
		os.Exit(1)
	}

	metrics.Register()

	socket := modem.Socket(config.Socket)
	if err := m.On(context.Background(), socket); err != nil {
		logger.Error("Failed to power on modem", "socket", socket, "status", modem.StatusOf(err), "error", err)
		m.Off()
		os.Exit(1)
	}

	if _, err := m.Firmware(context.Background()); err != nil {
		logger.Warn("Failed to read firmware version", "error", err)
	}

	logger.Info("Starting Sigfox Gateway", "socket", socket, "baud_rate", config.BaudRate)

	httpServer := &http.Server{
		Addr: config.BindAddress,
		Handler: &Server{
			Logger: logger.With("component", "server"),
			Modem:  m,
		},
	}

	// Channel to listen for interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info("Starting HTTP server", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sig := <-sigChan
	logger.Info("Received shutdown signal", "signal", sig)

	// Acknowledged uplinks can take up to a minute.
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	logger.Info("Closing HTTP server")
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Failed to gracefully shutdown server", "error", err)
	}

	logger.Info("Powering off modem")
	m.Off()
	if err := m.Close(); err != nil {
		logger.Error("Failed to close modem", "error", err)
	}
}

// powerRail returns nil when no socket has a power pin.
func powerRail(config *Config) modem.PowerRail {
	pins := make(map[modem.Socket]int)
	if config.PowerPin0 >= 0 {
		pins[modem.Socket0] = config.PowerPin0
	}
	if config.PowerPin1 >= 0 {
		pins[modem.Socket1] = config.PowerPin1
	}
	if len(pins) == 0 {
		return nil
	}
	return &modem.GPIOPowerRail{Pins: pins, ActiveLow: config.PowerActiveLow}
}
