package http

import (
	"context"
	"errors"
	"net"
	stdhttp "net/http"
	"time"

	"bazi/internal/platform/config"
	"bazi/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server owns the root chi mux and the listener serving it
type Server struct {
	addr  string
	grace time.Duration
	mux   *chi.Mux
	srv   *stdhttp.Server
}

// NewServer reads PORT (default :8080), READ_HEADER_TIMEOUT, IDLE_TIMEOUT and
// SHUTDOWN_GRACE from cfg; hooks receive the root mux before any route is added
func NewServer(cfg config.Conf, hooks ...func(*chi.Mux)) *Server {
	m := chi.NewRouter()
	for _, h := range hooks {
		h(m)
	}
	s := &Server{
		addr:  cfg.MayString("PORT", ":8080"),
		grace: cfg.MayDuration("SHUTDOWN_GRACE", 10*time.Second),
		mux:   m,
	}
	s.srv = &stdhttp.Server{
		Addr:              s.addr,
		Handler:           m,
		ReadHeaderTimeout: cfg.MayDuration("READ_HEADER_TIMEOUT", 10*time.Second),
		IdleTimeout:       cfg.MayDuration("IDLE_TIMEOUT", 60*time.Second),
		ErrorLog:          logger.StdLog("http"),
	}
	return s
}

// Router returns the Router facade over the root mux
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr is the configured listen address
func (s *Server) Addr() string { return s.addr }

// Run listens and serves until Shutdown is called or ctx is done.
// A cancelled ctx drains in-flight requests for up to SHUTDOWN_GRACE.
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	log.Info().Str("addr", ln.Addr().String()).Msg("http listening")

	stop := context.AfterFunc(ctx, func() {
		sctx, cancel := context.WithTimeout(context.Background(), s.grace)
		defer cancel()
		if err := s.srv.Shutdown(sctx); err != nil {
			log.Error().Err(err).Dur("grace", s.grace).Msg("http drain cut short")
		}
	})
	defer stop()

	if err := s.srv.Serve(ln); !errors.Is(err, stdhttp.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for handlers to finish
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
