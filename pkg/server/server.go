package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	handlers "github.com/tally-tools/tally/pkg/handlers/quantity"
	tallymiddleware "github.com/tally-tools/tally/pkg/server/middleware"
	"github.com/tally-tools/tally/pkg/services/tracker"
)

type WebAPI struct {
	router *chi.Mux
	logger *zerolog.Logger
	server *http.Server

	shutdownTimeout time.Duration
}

type Dependencies struct {
	Tracker   tracker.Tracker
	Assistant handlers.Assistant
	Exporter  handlers.Exporter
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func ConfigureRouter(logger *zerolog.Logger, deps Dependencies) *chi.Mux {
	handler := handlers.NewHandler(deps.Tracker, deps.Assistant, deps.Exporter)

	router := chi.NewRouter()

	router.Use(tallymiddleware.Logger(logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/quantities", handler.ListQuantityTypes)
		r.Post("/quantities", handler.CreateQuantityType)
		r.Get("/quantities/{id}", handler.GetQuantityType)
		r.Put("/quantities/{id}", handler.UpdateQuantityType)
		r.Delete("/quantities/{id}", handler.DeleteQuantityType)

		r.Post("/quantities/{id}/entries", handler.LogEntry)
		r.Get("/quantities/{id}/entries", handler.ListEntries)
		r.Get("/quantities/{id}/total", handler.GetTotal)
		r.Get("/quantities/{id}/report", handler.GetReport)

		r.Put("/entries/{id}", handler.UpdateEntry)
		r.Delete("/entries/{id}", handler.DeleteEntry)

		r.Post("/assistant/log", handler.AssistantLog)
		r.Get("/export/csv", handler.ExportCSV)
	})

	return router
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	router := ConfigureRouter(&logger, config.Dependencies)

	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
