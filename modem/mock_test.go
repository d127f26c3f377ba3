package modem_test

import (
	"testing"
	"time"

	gomock "go.uber.org/mock/gomock"
	"i4.energy/across/sigfoxgw/modem"
)

type MockSequenceBuilder struct {
	transport *modem.MockTransport
	calls     []any
}

func NewMockSequence(transport *modem.MockTransport) *MockSequenceBuilder {
	return &MockSequenceBuilder{
		transport: transport,
		calls:     []any{},
	}
}

// Command expects cmd to be written and answers with one read per reply.
func (b *MockSequenceBuilder) Command(cmd string, replies ...string) *MockSequenceBuilder {
	b.calls = append(b.calls,
		b.transport.EXPECT().Write([]byte(cmd)).Return(len(cmd), nil),
	)
	return b.Replies(replies...)
}

// Replies answers one read per reply without a preceding write.
func (b *MockSequenceBuilder) Replies(replies ...string) *MockSequenceBuilder {
	for _, resp := range replies {
		b.calls = append(b.calls,
			b.transport.EXPECT().Read(gomock.Any()).DoAndReturn(func(p []byte) (int, error) {
				return copy(p, resp), nil
			}),
		)
	}
	return b
}

func (b *MockSequenceBuilder) AT() *MockSequenceBuilder {
	return b.Command("AT\r", "AT\r\nOK\r\n")
}

func (b *MockSequenceBuilder) SaveSettings() *MockSequenceBuilder {
	return b.Command("AT$WR\r", "OK\r\n")
}

// Silence makes every further read return no data.
func (b *MockSequenceBuilder) Silence() *MockSequenceBuilder {
	b.calls = append(b.calls,
		b.transport.EXPECT().Read(gomock.Any()).Return(0, nil).AnyTimes(),
	)
	return b
}

func (b *MockSequenceBuilder) Build() []any {
	return b.calls
}

// shortTimeouts keeps failing waits in tests brief.
func shortTimeouts() modem.Timeouts {
	return modem.Timeouts{
		Check:            200 * time.Millisecond,
		Command:          200 * time.Millisecond,
		Send:             200 * time.Millisecond,
		SendACK:          200 * time.Millisecond,
		Downlink:         200 * time.Millisecond,
		DownlinkEnd:      200 * time.Millisecond,
		KeepAlive:        200 * time.Millisecond,
		ContinuousWave:   200 * time.Millisecond,
		TestTransmitUnit: 200 * time.Millisecond,
	}
}

// testConfig returns a builder with fast delays and the given dialer.
func testConfig(dialer modem.Dialer) *modem.ConfigBuilder {
	return modem.NewConfigBuilder().
		WithDialer(dialer).
		WithSettleDelay(time.Millisecond).
		WithRestartDelay(time.Millisecond).
		WithPollInterval(time.Millisecond).
		WithTimeouts(shortTimeouts())
}

// newPoweredModem returns a modem that went through On with a mock
// transport. Expectations for the test itself must be registered after
// this call.
func newPoweredModem(t *testing.T, ctrl *gomock.Controller, opts ...func(*modem.ConfigBuilder)) (*modem.Modem, *modem.MockTransport) {
	t.Helper()

	mockTransport := modem.NewMockTransport(ctrl)
	mockDialer := modem.NewMockDialer(ctrl)

	gomock.InOrder(append(
		[]any{mockDialer.EXPECT().Dial(gomock.Any(), modem.Socket0, modem.DefaultBaudRate).Return(mockTransport, nil)},
		NewMockSequence(mockTransport).AT().Build()...,
	)...)

	builder := testConfig(mockDialer)
	for _, opt := range opts {
		opt(builder)
	}
	config, err := builder.Build()
	if err != nil {
		t.Fatalf("unexpected error from Build(): %v", err)
	}

	m, err := modem.New(config)
	if err != nil {
		t.Fatalf("unexpected error from New(): %v", err)
	}
	if err := m.On(t.Context(), modem.Socket0); err != nil {
		t.Fatalf("unexpected error from On(): %v", err)
	}
	return m, mockTransport
}
