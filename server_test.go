package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"i4.energy/across/sigfoxgw/modem"
)

func newTestServer(t *testing.T) (*Server, *modem.TestTransport) {
	t.Helper()

	transport := modem.NewTestTransport()
	transport.Respond("AT\r", "OK\r\n")

	config, err := modem.NewConfigBuilder().
		WithDialer(modem.TestDialer{Transport: transport}).
		WithSettleDelay(time.Millisecond).
		WithPollInterval(time.Millisecond).
		WithTimeouts(modem.Timeouts{
			Command:     100 * time.Millisecond,
			Send:        100 * time.Millisecond,
			SendACK:     100 * time.Millisecond,
			Downlink:    100 * time.Millisecond,
			DownlinkEnd: 100 * time.Millisecond,
		}).
		Build()
	if err != nil {
		t.Fatalf("unexpected error from Build(): %v", err)
	}

	m, err := modem.New(config)
	if err != nil {
		t.Fatalf("unexpected error from New(): %v", err)
	}
	if err := m.On(context.Background(), modem.Socket0); err != nil {
		t.Fatalf("unexpected error from On(): %v", err)
	}
	t.Cleanup(func() { m.Close() })

	return &Server{
		Logger: slog.New(slog.DiscardHandler),
		Modem:  m,
	}, transport
}

func do(s *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestServerMessages(t *testing.T) {
	t.Run("Send", func(t *testing.T) {
		s, transport := newTestServer(t)
		transport.Respond("AT$SF=CAFE\r", "OK\r\n")

		rec := do(s, http.MethodPost, "/messages", `{"payload":"CAFE"}`)
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d: %s", rec.Code, rec.Body)
		}
	})

	t.Run("Send with downlink", func(t *testing.T) {
		s, transport := newTestServer(t)
		transport.Respond("AT$SF=CAFE,1\r", "OK\r\n", "RX=DE AD BE EF 00 11 22 33\r\n")

		rec := do(s, http.MethodPost, "/messages", `{"payload":"CAFE","ack":true}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
		}

		var resp struct {
			Downlink string `json:"downlink"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("unexpected error decoding response: %v", err)
		}
		if resp.Downlink != "DEADBEEF00112233" {
			t.Errorf("expected DEADBEEF00112233, got %q", resp.Downlink)
		}
	})

	t.Run("Payload too large is 422", func(t *testing.T) {
		s, _ := newTestServer(t)

		rec := do(s, http.MethodPost, "/messages", `{"payload":"`+strings.Repeat("0", 25)+`"}`)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("expected 422, got %d", rec.Code)
		}
	})

	t.Run("Silent module is 504", func(t *testing.T) {
		s, _ := newTestServer(t)

		rec := do(s, http.MethodPost, "/messages", `{"payload":"01"}`)
		if rec.Code != http.StatusGatewayTimeout {
			t.Errorf("expected 504, got %d", rec.Code)
		}
	})

	t.Run("Bad JSON is 400", func(t *testing.T) {
		s, _ := newTestServer(t)

		rec := do(s, http.MethodPost, "/messages", `{"payload":`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestServerDevice(t *testing.T) {
	s, transport := newTestServer(t)
	transport.Respond("AT$I=10\r", "\r\n", "0042AB\r\nOK\r\n")
	transport.Respond("AT$I=11\r", "\r\n", "A1B2C3D4E5F60708\r\nOK\r\n")
	transport.Respond("AT$IF?\r", "\r\n", "868130000\r\nOK\r\n")
	transport.Respond("ATS302?\r", "\r\n", "14\r\nOK\r\n")

	rec := do(s, http.MethodGet, "/device", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	var state modem.State
	if err := json.NewDecoder(rec.Body).Decode(&state); err != nil {
		t.Fatalf("unexpected error decoding response: %v", err)
	}
	if state.ID != 0x42AB || state.PAC != 0xA1B2C3D4E5F60708 || state.Frequency != 868130000 || state.Power != 14 {
		t.Errorf("unexpected state %+v", state)
	}
}

func TestServerSettings(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		command  string
		wantCode int
	}{
		{"power", http.MethodPut, "/power", `{"dbm":14}`, "ATS302=14\r", http.StatusOK},
		{"power out of range", http.MethodPut, "/power", `{"dbm":30}`, "", http.StatusUnprocessableEntity},
		{"power missing", http.MethodPut, "/power", `{}`, "", http.StatusBadRequest},
		{"frequency", http.MethodPut, "/frequency", `{"hz":868130000}`, "AT$IF=868130000\r", http.StatusOK},
		{"keepalive", http.MethodPut, "/keepalive", `{"hours":0}`, "ATS300=0\r", http.StatusOK},
		{"keepalive out of range", http.MethodPut, "/keepalive", `{"hours":200}`, "", http.StatusUnprocessableEntity},
		{"cw", http.MethodPost, "/cw", `{"hz":868130000,"enable":true}`, "AT$CW=868130000,1,24\r", http.StatusOK},
		{"save", http.MethodPost, "/save", ``, "AT$WR\r", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, transport := newTestServer(t)
			transport.Respond("AT$WR\r", "OK\r\n")
			if tt.command != "" {
				transport.Respond(tt.command, "OK\r\n")
			}

			rec := do(s, tt.method, tt.path, tt.body)
			if rec.Code != tt.wantCode {
				t.Errorf("expected %d, got %d: %s", tt.wantCode, rec.Code, rec.Body)
			}
		})
	}
}

func TestServerFirmware(t *testing.T) {
	s, transport := newTestServer(t)
	transport.Respond("AT$I=9\r", "UDL01020304\r\nOK\r\n")

	rec := do(s, http.MethodGet, "/firmware", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), "UDL01020304") {
		t.Errorf("unexpected body %s", rec.Body)
	}
}

func TestServerMetrics(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(s, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
