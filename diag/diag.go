// Package diag is the dev-only introspection server spec.md 4.G and
// SPEC_FULL.md §6 describe: a side channel for inspecting a running
// Simulator without touching its hot path. It can be attached to any
// Simulator, whether or not it was built with
// rtlsim.WithDevDiagnostics — the teacher's own
// go.mod already carries gorilla/mux and shirou/gopsutil as indirect
// dependencies of its monitoring stack; this package is where this
// repository promotes them to direct, exercised use instead of dropping
// them.
package diag

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/hwsim/rtlsim/rtlsim"
)

// Server exposes a running Simulator's state over HTTP. It is never
// started automatically; a caller running in dev mode wires it up
// explicitly, the same way core's sample mains opt into waveform
// logging rather than having it forced on them.
type Server struct {
	sim    *rtlsim.Simulator
	router *mux.Router
	proc   *process.Process
}

// New builds a Server around sim. sim.IsDev() is not required to be
// true; callers that want the guard should check it before calling New.
func New(sim *rtlsim.Simulator) *Server {
	s := &Server{sim: sim, router: mux.NewRouter()}
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		s.proc = p
	}
	s.routes()
	return s
}

// Handler returns the server's http.Handler, for embedding in a caller's
// own listener (http.ListenAndServe, httptest.Server, and so on).
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() {
	s.router.HandleFunc("/signals", s.handleSignals).Methods(http.MethodGet)
	s.router.HandleFunc("/cycles", s.handleCycles).Methods(http.MethodGet)
	s.router.HandleFunc("/trace", s.handleTrace).Methods(http.MethodGet)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
}

type signalView struct {
	Name  string `json:"name"`
	Width int    `json:"width"`
	Value string `json:"value"`
}

func (s *Server) handleSignals(w http.ResponseWriter, r *http.Request) {
	named := s.sim.NamedSignals()
	views := make([]signalView, 0, len(named))
	for _, ns := range named {
		v := signalView{Name: ns.Name, Width: ns.Node.Width, Value: "<unbound>"}
		if ns.Node.Signal != nil {
			v.Value = ns.Node.Signal.Read().String()
		}
		views = append(views, v)
	}
	writeJSON(w, views)
}

type cyclesView struct {
	NCycles  uint64 `json:"ncycles"`
	QueueLen int    `json:"queue_len"`
}

func (s *Server) handleCycles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, cyclesView{NCycles: s.sim.NCycles(), QueueLen: s.sim.QueueLen()})
}

func (s *Server) handleTrace(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	s.sim.PrintLineTrace(w)
}

type healthView struct {
	NCycles    uint64  `json:"ncycles"`
	CPUPercent float64 `json:"cpu_percent,omitempty"`
	RSSBytes   uint64  `json:"rss_bytes,omitempty"`
}

// handleHealth reports process-level resource usage alongside simulator
// progress, sampled via gopsutil the way a deployment's own monitoring
// sidecar would scrape it.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	hv := healthView{NCycles: s.sim.NCycles()}
	if s.proc != nil {
		if pct, err := s.proc.CPUPercent(); err == nil {
			hv.CPUPercent = pct
		}
		if mi, err := s.proc.MemoryInfo(); err == nil && mi != nil {
			hv.RSSBytes = mi.RSS
		}
	}
	writeJSON(w, hv)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("diag: encode response", "error", err)
	}
}

// ListenAndServe starts an HTTP server bound to addr with a modest
// read/write timeout, blocking until it returns an error. Callers that
// want graceful shutdown should build their own http.Server around
// Handler() instead.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	slog.Info("diag: listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("diag: %w", err)
	}
	return nil
}
