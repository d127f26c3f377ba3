package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"i4.energy/across/sigfoxgw/modem"
)

// Server handles incoming HTTP requests for interacting with the
// configured modem instance
type Server struct {
	Logger *slog.Logger
	Modem  *modem.Modem

	once   sync.Once
	router chi.Router
}

// ServeHTTP implements the http.Handler interface for the Server struct
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.once.Do(s.routes)
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/messages", s.handleMessage)
	r.Get("/device", s.handleDevice)
	r.Get("/firmware", s.handleFirmware)
	r.Put("/power", s.handlePower)
	r.Put("/frequency", s.handleFrequency)
	r.Put("/keepalive", s.handleKeepAlive)
	r.Post("/cw", s.handleContinuousWave)
	r.Post("/save", s.handleSave)
	r.Handle("/metrics", promhttp.Handler())

	s.router = r
}

func (s *Server) sendError(w http.ResponseWriter, message string, statusCode int) {
	if message == "" {
		w.WriteHeader(statusCode)
		return
	}

	type ErrorResponse struct {
		Message string `json:"message"`
	}
	resp := ErrorResponse{Message: message}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) sendJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// sendModemError maps a modem failure to a status code: the module
// refusing is 422, the module not answering is 504.
func (s *Server) sendModemError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := http.StatusGatewayTimeout
	if modem.StatusOf(err) == modem.StatusError {
		status = http.StatusUnprocessableEntity
	}
	s.Logger.Error("Modem operation failed", "op", op, "error", err,
		"request_id", middleware.GetReqID(r.Context()))
	s.sendError(w, err.Error(), status)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// handleMessage sends an uplink, optionally waiting for a downlink
func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	type MessageRequest struct {
		Payload string `json:"payload"`
		ACK     bool   `json:"ack"`
	}
	type MessageResponse struct {
		Downlink string `json:"downlink,omitempty"`
	}

	var req MessageRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Payload == "" {
		s.sendError(w, "'payload' field is required", http.StatusBadRequest)
		return
	}

	var resp MessageResponse
	var err error
	if req.ACK {
		resp.Downlink, err = s.Modem.SendACK(r.Context(), req.Payload)
	} else {
		err = s.Modem.Send(r.Context(), req.Payload)
	}
	if err != nil {
		s.sendModemError(w, r, "send", err)
		return
	}

	s.Logger.Info("Message sent successfully", "payload_length", len(req.Payload), "ack", req.ACK)
	s.sendJSON(w, resp)
}

// handleDevice refreshes and returns the device state
func (s *Server) handleDevice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, idErr := s.Modem.ID(ctx)
	_, pacErr := s.Modem.PAC(ctx)
	_, freqErr := s.Modem.Frequency(ctx)
	_, powerErr := s.Modem.Power(ctx)

	if err := errors.Join(idErr, pacErr, freqErr, powerErr); err != nil {
		s.sendModemError(w, r, "device", err)
		return
	}
	s.sendJSON(w, s.Modem.State())
}

func (s *Server) handleFirmware(w http.ResponseWriter, r *http.Request) {
	fw, err := s.Modem.Firmware(r.Context())
	if err != nil {
		s.sendModemError(w, r, "firmware", err)
		return
	}
	s.sendJSON(w, map[string]string{"firmware": fw})
}

func (s *Server) handlePower(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DBm *int `json:"dbm"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if req.DBm == nil {
		s.sendError(w, "'dbm' field is required", http.StatusBadRequest)
		return
	}

	if err := s.Modem.SetPower(r.Context(), *req.DBm); err != nil {
		s.sendModemError(w, r, "power", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleFrequency(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Hz uint32 `json:"hz"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if req.Hz == 0 {
		s.sendError(w, "'hz' field is required", http.StatusBadRequest)
		return
	}

	if err := s.Modem.SetFrequency(r.Context(), req.Hz); err != nil {
		s.sendModemError(w, r, "frequency", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleKeepAlive(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Hours *int `json:"hours"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if req.Hours == nil {
		s.sendError(w, "'hours' field is required", http.StatusBadRequest)
		return
	}

	if err := s.Modem.SetKeepAlive(r.Context(), *req.Hours); err != nil {
		s.sendModemError(w, r, "keepalive", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleContinuousWave(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Hz     uint32 `json:"hz"`
		Enable bool   `json:"enable"`
	}
	if !s.decode(w, r, &req) {
		return
	}

	if err := s.Modem.ContinuousWave(r.Context(), req.Hz, req.Enable); err != nil {
		s.sendModemError(w, r, "cw", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if err := s.Modem.SaveSettings(r.Context()); err != nil {
		s.sendModemError(w, r, "save", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
