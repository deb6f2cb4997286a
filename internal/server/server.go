// Package server assembles the HTTP boundary around the conversion
// dispatcher: upload ingress, download serving, middleware and the retention
// sweeper.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/cors"

	omniconvert "github.com/omniconvert/omniconvert-go"
	"github.com/omniconvert/omniconvert-go/internal/config"
	"github.com/omniconvert/omniconvert-go/internal/pdfassemble"
	"github.com/omniconvert/omniconvert-go/internal/storage"
	"github.com/omniconvert/omniconvert-go/internal/transcode"
)

// Server runs the conversion service.
type Server struct {
	cfg       *config.Config
	srv       *http.Server
	uploads   *storage.Store
	converted *storage.Store
}

// New wires the storage directories, the dispatcher engine and the HTTP
// stack together.
func New(cfg *config.Config) (*Server, error) {
	uploads, err := storage.New(cfg.UploadDir)
	if err != nil {
		return nil, err
	}
	converted, err := storage.New(cfg.ConvertedDir)
	if err != nil {
		return nil, err
	}

	engine := omniconvert.New(
		omniconvert.WithTranscoder(transcode.New(cfg.FFmpegPath)),
		omniconvert.WithPDFAssembler(pdfassemble.New(cfg.PDFEnginePath)),
	)

	h := newHandler(engine, uploads, converted, cfg.MaxUploadMb)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/convert", h.convert)
	mux.HandleFunc("/converted/", h.download)
	mux.HandleFunc("/healthz", h.health)

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})

	return &Server{
		cfg: cfg,
		srv: &http.Server{
			Addr:    cfg.Addr,
			Handler: corsMiddleware.Handler(recoverPanics(logRequests(mux))),
		},
		uploads:   uploads,
		converted: converted,
	}, nil
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.sweepLoop(sweepCtx)

	errCh := make(chan error)
	go func() {
		slog.Info("starting server", slog.String("addr", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.String("error", err.Error()))
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", slog.String("error", err.Error()))
		return err
	}

	slog.Info("server gracefully stopped")
	return nil
}

// sweepLoop ages out uploaded originals and converted outputs. Retention
// used to be unbounded with a cleanup hook that did nothing; the sweep makes
// it an explicit time-based policy.
func (s *Server) sweepLoop(ctx context.Context) {
	interval := s.cfg.Retention.SweepInterval
	maxAge := s.cfg.Retention.MaxAge
	if interval <= 0 || maxAge <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removedUploads, err := s.uploads.Sweep(maxAge)
			if err != nil {
				slog.Error("sweep uploads", slog.String("error", err.Error()))
			}
			removedOutputs, err := s.converted.Sweep(maxAge)
			if err != nil {
				slog.Error("sweep converted", slog.String("error", err.Error()))
			}
			if removedUploads+removedOutputs > 0 {
				slog.Info("retention sweep",
					slog.Int("removed_uploads", removedUploads),
					slog.Int("removed_outputs", removedOutputs),
				)
			}
		}
	}
}
