// Package server exposes a single gram.Grammar over HTTP: a small demo of
// embedding a runtime-synthesized parser behind a request/response API,
// not a general grammar-authoring service.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/npillmayer/gram"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace { return tracing.Select("gram.server") }

// Server wraps a single Grammar, synthesizing its parse table lazily on
// the first request exactly as the library does for in-process callers.
type Server struct {
	g *gram.Grammar
}

// New wraps g for serving.
func New(g *gram.Grammar) *Server {
	return &Server{g: g}
}

// Router builds the HTTP routes: POST /parse parses a request body's
// "input" field, GET /table dumps the synthesized parse table.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestIDLogger)
	r.Post("/parse", s.handleParse)
	r.Get("/table", s.handleTable)
	return r
}

func requestIDLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New()
		tracer().Debugf("request %s: %s %s", id, r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

type parseRequest struct {
	Input string `json:"input"`
}

type parseResponse struct {
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, parseResponse{Error: "malformed request body: " + err.Error()})
		return
	}
	result, err := s.g.Parse(req.Input)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, parseResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, parseResponse{Result: result})
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	dump, err := s.g.Dump()
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, parseResponse{Error: err.Error()})
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(dump))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
