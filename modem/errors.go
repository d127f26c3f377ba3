package modem

import (
	"errors"
	"fmt"
)

var (
	// ErrProtocol is wrapped by every error where the module explicitly
	// answered ERROR, or where a request was rejected locally before it
	// reached the transport.
	ErrProtocol = errors.New("protocol error")

	// ErrNoAnswer is wrapped by every error where no decisive answer arrived:
	// the deadline elapsed, the transport failed, or the wait was cancelled.
	ErrNoAnswer = errors.New("no answer")
)

var (
	// ErrNoDialer is returned when a Modem is constructed without a Dialer.
	//
	// This indicates a configuration error. A Dialer is required in order to
	// open the serial link once the module is powered on.
	ErrNoDialer = errors.New("no dialer configured")

	// ErrNotInitialized is returned when an exchange is attempted before On
	// opened the transport, or after Off closed it.
	ErrNotInitialized = fmt.Errorf("%w: modem not powered on", ErrNoAnswer)

	// ErrAlreadyClosed is returned when the Modem is used after Close.
	ErrAlreadyClosed = fmt.Errorf("%w: modem already closed", ErrNoAnswer)

	// ErrPayloadTooLarge is returned when an uplink payload is longer than
	// MaxPayloadDigits hexadecimal digits. Nothing is sent.
	ErrPayloadTooLarge = fmt.Errorf("%w: payload too large", ErrProtocol)

	// ErrPowerOutOfRange is returned when a transmit power outside
	// MinPower..MaxPower is requested. Nothing is sent.
	ErrPowerOutOfRange = fmt.Errorf("%w: power level out of range", ErrProtocol)

	// ErrKeepAliveOutOfRange is returned when a keep-alive period outside
	// 0..MaxKeepAlive hours is requested. Nothing is sent.
	ErrKeepAliveOutOfRange = fmt.Errorf("%w: keep-alive period out of range", ErrProtocol)

	// ErrNotSupported is returned by operations the module firmware does not
	// implement, once the module has confirmed it is alive.
	ErrNotSupported = fmt.Errorf("%w: not supported by module", ErrProtocol)
)
