package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/signalsfoundry/contact-scheduler/internal/instance"
	"github.com/signalsfoundry/contact-scheduler/internal/logging"
	"github.com/signalsfoundry/contact-scheduler/internal/observability"
)

const maxBodyBytes = 64 << 20

// HTTPServer serves the JSON API.
type HTTPServer struct {
	svc       *Service
	log       logging.Logger
	collector *observability.APICollector
}

// NewHTTPServer builds the HTTP surface. collector may be nil, in which case
// no /metrics route is mounted.
func NewHTTPServer(svc *Service, log logging.Logger, collector *observability.APICollector) *HTTPServer {
	if log == nil {
		log = logging.Noop()
	}
	return &HTTPServer{svc: svc, log: log, collector: collector}
}

// Router returns the chi router with all routes mounted.
func (s *HTTPServer) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	if s.collector != nil {
		r.Use(s.collector.HTTPMiddleware)
		r.Handle("/metrics", s.collector.Handler())
	}

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/solve", s.handleSolve)
		r.Get("/instances", s.handleListInstances)
		r.Post("/instances", s.handleAddInstance)
		r.Post("/instances/{id}/solve", s.handleSolveStored)
		r.Get("/instances/{id}/report", s.handleReport)
		r.Get("/instances/{id}/runs", s.handleRuns)
	})
	return r
}

// requestLogger carries chi's request id into the logging context.
func (s *HTTPServer) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if id := middleware.GetReqID(ctx); id != "" {
			ctx = logging.ContextWithRequestID(ctx, id)
		}
		ctx, reqLog := logging.WithRequestLogger(ctx, s.log.With(logging.String("route", r.URL.Path)))
		ctx = logging.ContextWithLogger(ctx, reqLog)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"instances": len(s.svc.Store().ListInstances()),
		"time":      time.Now().UTC(),
	})
}

func (s *HTTPServer) handleSolve(w http.ResponseWriter, r *http.Request) {
	raw, err := readBody(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req, err := DecodeSolveRequest(raw)
	if err != nil {
		respondError(w, HTTPStatus(err), err.Error())
		return
	}
	report, err := s.svc.Solve(r.Context(), req)
	if err != nil {
		respondError(w, HTTPStatus(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, report)
}

type instanceSummary struct {
	ID              string `json:"problem_instance_id"`
	SatellitePasses int    `json:"number_satellite_passes"`
	ServiceTargets  int    `json:"number_service_targets"`
}

func (s *HTTPServer) handleListInstances(w http.ResponseWriter, r *http.Request) {
	list := s.svc.Store().ListInstances()
	out := make([]instanceSummary, 0, len(list))
	for _, in := range list {
		out = append(out, instanceSummary{
			ID:              in.ID,
			SatellitePasses: len(in.SatellitePasses),
			ServiceTargets:  len(in.ServiceTargets),
		})
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *HTTPServer) handleAddInstance(w http.ResponseWriter, r *http.Request) {
	raw, err := readBody(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	instances, err := instance.Decode(raw)
	if err != nil {
		respondError(w, HTTPStatus(err), err.Error())
		return
	}
	ids := make([]string, 0, len(instances))
	for _, in := range instances {
		id, err := s.svc.AddInstance(in)
		if err != nil {
			respondError(w, HTTPStatus(err), err.Error())
			return
		}
		ids = append(ids, id)
	}
	respondJSON(w, http.StatusCreated, map[string]any{"ids": ids})
}

func (s *HTTPServer) handleSolveStored(w http.ResponseWriter, r *http.Request) {
	limit, err := ParseTimeLimit(r.URL.Query().Get("time_limit"))
	if err != nil {
		respondError(w, HTTPStatus(err), err.Error())
		return
	}
	all := r.URL.Query().Get("include_unselected") == "true"
	report, err := s.svc.SolveStored(r.Context(), chi.URLParam(r, "id"), limit, all)
	if err != nil {
		respondError(w, HTTPStatus(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (s *HTTPServer) handleReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.svc.Report(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, HTTPStatus(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, report)
}

type runView struct {
	ID               string    `json:"run_id"`
	InstanceID       string    `json:"problem_instance_id"`
	Hard             int       `json:"hard"`
	Soft             float64   `json:"soft"`
	Feasible         bool      `json:"feasible"`
	Quality          int       `json:"quality"`
	SelectedContacts int       `json:"selected_contacts"`
	Steps            int       `json:"steps"`
	RuntimeSeconds   float64   `json:"runtime_seconds"`
	Termination      string    `json:"termination"`
	CreatedAt        time.Time `json:"created_at"`
}

func (s *HTTPServer) handleRuns(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid limit %q", raw))
			return
		}
		limit = n
	}
	runs, err := s.svc.Runs(r.Context(), chi.URLParam(r, "id"), limit)
	if err != nil {
		respondError(w, HTTPStatus(err), err.Error())
		return
	}
	out := make([]runView, 0, len(runs))
	for _, run := range runs {
		out = append(out, runView{
			ID:               run.ID,
			InstanceID:       run.InstanceID,
			Hard:             run.Hard,
			Soft:             run.Soft,
			Feasible:         run.Feasible,
			Quality:          run.Quality,
			SelectedContacts: run.SelectedContacts,
			Steps:            run.Steps,
			RuntimeSeconds:   run.Runtime.Seconds(),
			Termination:      run.Termination,
			CreatedAt:        run.CreatedAt,
		})
	}
	respondJSON(w, http.StatusOK, out)
}

func readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(raw) > maxBodyBytes {
		return nil, fmt.Errorf("request body exceeds %d bytes", maxBodyBytes)
	}
	return raw, nil
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
