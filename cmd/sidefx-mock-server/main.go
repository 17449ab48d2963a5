// Copyright 2025 Andamio Labs
//
// sidefx-mock-server stands in for the downstream services a transaction
// definition's side effects call. It has no notion of courses, modules, or
// tasks — it accepts any METHOD /anything/{with}/{placeholders} request
// matching the shape the execution engine issues, records it, and replies
// with a configurable status code so integration tests can assert on both
// the engine's RunResult and the server's recorded call log.

package main

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andamio-labs/txcore/pkg/lintconfig"
	"github.com/andamio-labs/txcore/pkg/sidefxstore"
)

const sidefxDefHeader = "X-Sidefx-Def"

// memoryCall is the in-memory fallback record, used when no database is
// configured.
type memoryCall struct {
	ID         uuid.UUID         `json:"id"`
	Method     string            `json:"method"`
	Path       string            `json:"path"`
	Def        string            `json:"def,omitempty"`
	Headers    map[string]string `json:"headers,omitempty"`
	Body       map[string]any    `json:"body,omitempty"`
	StatusCode int               `json:"statusCode"`
	ReceivedAt time.Time         `json:"receivedAt"`
}

// recorder stores every call the mock server receives, either in a
// Postgres-backed store or an in-memory slice.
type recorder struct {
	store *sidefxstore.Client // nil when running without a database

	mu    sync.Mutex
	calls []memoryCall

	callsTotal *prometheus.CounterVec

	// replyStatus is the status code echoed back for every recorded call.
	replyStatus int
}

func newRecorder(store *sidefxstore.Client, replyStatus int, reg prometheus.Registerer) *recorder {
	r := &recorder{
		store:       store,
		replyStatus: replyStatus,
		callsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sidefx_mock_server_calls_total",
			Help: "Number of side-effect calls recorded by the mock server.",
		}, []string{"method"}),
	}
	reg.MustRegister(r.callsTotal)
	return r
}

// headersMinusAuth copies req's headers, dropping Authorization so bearer
// tokens never land in a recorded call.
func headersMinusAuth(req *http.Request) map[string]string {
	out := make(map[string]string, len(req.Header))
	for k, v := range req.Header {
		if len(v) == 0 {
			continue
		}
		if http.CanonicalHeaderKey(k) == "Authorization" {
			continue
		}
		out[k] = v[0]
	}
	return out
}

func (r *recorder) record(ctx context.Context, req *http.Request) error {
	var body map[string]any
	if req.Method != http.MethodGet {
		raw, err := io.ReadAll(req.Body)
		if err != nil {
			return err
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &body); err != nil {
				return err
			}
		}
	}

	r.callsTotal.WithLabelValues(req.Method).Inc()
	def := req.Header.Get(sidefxDefHeader)
	headers := headersMinusAuth(req)

	if r.store != nil {
		_, err := r.store.InsertSideEffectCall(ctx, sidefxstore.SideEffectCall{
			Method:     req.Method,
			Path:       req.URL.Path,
			Def:        def,
			Headers:    headers,
			Body:       body,
			StatusCode: r.replyStatus,
		})
		return err
	}

	r.mu.Lock()
	r.calls = append(r.calls, memoryCall{
		ID:         uuid.New(),
		Method:     req.Method,
		Path:       req.URL.Path,
		Def:        def,
		Headers:    headers,
		Body:       body,
		StatusCode: r.replyStatus,
		ReceivedAt: time.Now(),
	})
	r.mu.Unlock()
	return nil
}

func (r *recorder) listInMemory(def string) []memoryCall {
	r.mu.Lock()
	defer r.mu.Unlock()

	if def == "" {
		out := make([]memoryCall, len(r.calls))
		copy(out, r.calls)
		return out
	}
	var out []memoryCall
	for _, c := range r.calls {
		if c.Def == def {
			out = append(out, c)
		}
	}
	return out
}

// catchAllHandler accepts any path and records the request, replying with
// the configured reply status.
func (r *recorder) catchAllHandler(w http.ResponseWriter, req *http.Request) {
	if req.URL.Path == "/_calls" || req.URL.Path == "/healthz" {
		http.NotFound(w, req)
		return
	}
	if err := r.record(req.Context(), req); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(r.replyStatus)
	_ = json.NewEncoder(w).Encode(map[string]any{"recorded": true})
}

// callsHandler implements GET /_calls and GET /_calls?def=..., filtering by
// the X-Sidefx-Def header the caller set when issuing the original request.
func (r *recorder) callsHandler(w http.ResponseWriter, req *http.Request) {
	def := req.URL.Query().Get("def")

	if r.store != nil {
		calls, err := r.store.ListSideEffectCalls(req.Context(), def)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(calls)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(r.listInMemory(def))
}

func replyStatusFromEnv() int {
	if v := os.Getenv("SIDEFX_MOCK_REPLY_STATUS"); v != "" {
		if code, err := strconv.Atoi(v); err == nil {
			return code
		}
	}
	return http.StatusOK
}

func main() {
	cfg, err := lintconfig.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	var store *sidefxstore.Client
	if cfg.DatabaseURL != "" {
		store, err = sidefxstore.NewClient(cfg)
		if err != nil {
			log.Fatalf("connect database: %v", err)
		}
		defer store.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := store.MigrateUp(ctx); err != nil {
			cancel()
			log.Fatalf("migrate database: %v", err)
		}
		cancel()
	} else if cfg.DatabaseRequired {
		log.Fatal("DATABASE_REQUIRED=true but DATABASE_URL is unset")
	}

	reg := prometheus.NewRegistry()
	rec := newRecorder(store, replyStatusFromEnv(), reg)

	mux := http.NewServeMux()
	mux.HandleFunc("/_calls", rec.callsHandler)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/", rec.catchAllHandler)

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	server := &http.Server{Addr: cfg.ListenAddr, Handler: mux}
	metricsServer := &http.Server{Addr: cfg.MetricsAddr, Handler: metricsMux}

	go func() {
		log.Printf("sidefx-mock-server listening on %s", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("serve: %v", err)
		}
	}()
	go func() {
		log.Printf("metrics listening on %s", cfg.MetricsAddr)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("serve metrics: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = server.Shutdown(ctx)
	_ = metricsServer.Shutdown(ctx)
}
