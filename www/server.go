// Package www serves the produced payload files read-only, plus two
// derived JSON endpoints: the country index and the run history.
package www

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SimonHalvdansson/ENTSOE-Mirror/config"
	"github.com/SimonHalvdansson/ENTSOE-Mirror/database"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

type Server struct {
	logger *slog.Logger
	config config.AppConfigApi
	router *mux.Router
}

func StartServer(db *database.Database, cnfg *config.AppConfig) *Server {
	logger := slog.Default().With("module", "www")

	s := &Server{
		logger: logger,
		config: cnfg.Api,
		router: mux.NewRouter(),
	}

	logReqMW := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.logger.Debug("http request",
				slog.String("method", r.Method),
				slog.String("url", r.URL.String()),
				slog.String("remoteAddr", r.RemoteAddr))
			next.ServeHTTP(w, r)
		})
	}

	s.router.Handle("/api/countries", logReqMW(NewCountriesHandler(
		logger.With(slog.String("handler", "countries")),
		cnfg.Fetch.GetOutputDir()))).Methods("GET")

	s.router.Handle("/api/runs", logReqMW(NewRunsHandler(
		logger.With(slog.String("handler", "runs")),
		db))).Methods("GET")

	// Everything else serves files verbatim from the root directory.
	s.router.PathPrefix("/").Handler(logReqMW(http.FileServer(http.Dir(cnfg.Api.GetRootDir()))))

	return s
}

func (s *Server) Handler() http.Handler {
	return handlers.RecoveryHandler()(handlers.CompressHandler(s.router))
}

func (s *Server) Run(ctx context.Context) {
	s.logger.Info("starting server...",
		slog.String("address", s.config.Address),
		slog.Int("port", int(s.config.Port)))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.config.Address, s.config.Port),
		Handler: s.Handler(),
	}

	srvErrors := make(chan error, 1)
	go func() {
		srvErrors <- srv.ListenAndServe()
	}()

	for {
		select {
		case err := <-srvErrors:
			if err != nil && err != http.ErrServerClosed {
				s.logger.Error("server error", slog.Any("error", err))
			}
			return

		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				s.logger.Error("server shutdown failed", slog.Any("error", err))
			}
			return
		}
	}
}
