// Package api exposes the application over HTTP with chi. Handlers translate
// requests to and from the primary ports; the interactive toggle endpoint
// schedules a debounced reconcile so a burst of clicks settles into one
// prune-and-renumber pass.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/example/stagepatch/internal/config"
	"github.com/example/stagepatch/internal/core/sequence"
	"github.com/example/stagepatch/internal/ports/primary"
)

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	catalog primary.CatalogService
	events  primary.EventService
	patch   primary.PatchService
	log     *logrus.Logger

	reconciles *reconcileScheduler
	httpSrv    *http.Server
}

// NewServer creates an HTTP server for the given services.
func NewServer(
	cfg config.ServerConfig,
	catalog primary.CatalogService,
	events primary.EventService,
	patch primary.PatchService,
	log *logrus.Logger,
) *Server {
	s := &Server{
		catalog: catalog,
		events:  events,
		patch:   patch,
		log:     log,
	}
	s.reconciles = newReconcileScheduler(sequence.DefaultAutoSaveDelay, func(eventID string) {
		if err := patch.Reconcile(context.Background(), eventID); err != nil {
			log.WithError(err).WithField("event_id", eventID).Error("debounced reconcile failed")
		}
	})

	s.httpSrv = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.Router(),
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Router builds the chi router with the full route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.accessLog)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Post("/", s.createCategory)
			r.Get("/", s.listCategories)
			r.Patch("/{id}", s.updateCategory)
			r.Delete("/{id}", s.deleteCategory)
		})

		r.Route("/channels", func(r chi.Router) {
			r.Post("/", s.createChannel)
			r.Get("/", s.listChannels)
			r.Patch("/{id}", s.updateChannel)
			r.Post("/{id}/deactivate", s.deactivateChannel)
			r.Delete("/{id}", s.deleteChannel)
		})

		r.Route("/events", func(r chi.Router) {
			r.Post("/", s.createEvent)
			r.Get("/", s.listEvents)
			r.Get("/{id}", s.getEvent)
			r.Delete("/{id}", s.deleteEvent)

			r.Post("/{id}/bands", s.createBand)
			r.Get("/{id}/matrix", s.getMatrix)
			r.Get("/{id}/baseline", s.getBaseline)
			r.Post("/{id}/reconcile", s.reconcileNow)
			r.Get("/{id}/export.csv", s.exportCSV)

			r.Post("/{id}/patch/reorder", s.reorderChannel)
			r.Post("/{id}/patch/{patchChannelID}/move", s.moveChannel)

			r.Post("/{id}/bands/{bandID}/usage/{patchChannelID}/toggle", s.toggleUsage)
			r.Put("/{id}/bands/{bandID}/usage/{patchChannelID}/label", s.setLabel)
		})

		r.Route("/bands", func(r chi.Router) {
			r.Put("/{id}", s.updateBand)
			r.Delete("/{id}", s.deleteBand)
		})
	})

	return r
}

// Start runs the server until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.httpSrv.Addr).Info("http server listening")
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpSrv.Shutdown(shutdownCtx)
}

// accessLog is a structured access log middleware.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(start).String(),
			"request_id": chimiddleware.GetReqID(r.Context()),
		}).Info("request")
	})
}
