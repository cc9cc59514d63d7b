package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/mowradar/internal/model"
	"github.com/sells-group/mowradar/internal/pipeline"
)

const maxBodyBytes = 1 << 20

var servePort int

// pitcher is the part of the pipeline the HTTP handlers use.
type pitcher interface {
	Run(ctx context.Context, req model.PitchRequest) (*model.PitchResult, error)
	Preview(ctx context.Context, req model.PitchRequest) (*model.PitchResult, error)
}

// pitchRequest is the JSON body of POST /v1/pitch and /v1/prompt. Omitted
// property flags default to true.
type pitchRequest struct {
	Query         string `json:"query"`
	Tone          string `json:"tone"`
	HasBushes     *bool  `json:"has_bushes"`
	HasFlowerbeds *bool  `json:"has_flowerbeds"`
}

func flagOrTrue(b *bool) bool {
	return b == nil || *b
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for pitch generation",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if servePort != 0 {
			cfg.Server.Port = servePort
		}

		p, err := initPipeline(cfg, "serve")
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           buildRouter(p, cfg.Server.AllowedOrigins),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// buildRouter wires the API routes. p may be nil, in which case the pitch
// endpoints answer 503.
func buildRouter(p pitcher, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/pitch", pitchHandler(p, false))
		r.Post("/prompt", pitchHandler(p, true))
	})

	return r
}

func pitchHandler(p pitcher, preview bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if p == nil {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "pipeline not configured"})
			return
		}

		var body pitchRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}
		if body.Query == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "query is required"})
			return
		}
		tone, err := model.ParseTone(body.Tone)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		req := model.PitchRequest{
			Query: body.Query,
			Attributes: model.CustomerAttributes{
				HasBushes:     flagOrTrue(body.HasBushes),
				HasFlowerbeds: flagOrTrue(body.HasFlowerbeds),
				Tone:          tone,
			},
		}

		run := p.Run
		if preview {
			run = p.Preview
		}
		res, err := run(r.Context(), req)
		if err != nil {
			kind := pipeline.Kind(err)
			writeJSON(w, statusForKind(kind), errorResponse{Error: pipeline.Describe(err), Kind: kind})
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func statusForKind(kind string) int {
	switch kind {
	case pipeline.KindLocationNotFound:
		return http.StatusUnprocessableEntity
	case pipeline.KindUpstream, pipeline.KindGeneration:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
