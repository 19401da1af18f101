package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bomsight/bomsight/internal/model"
	"github.com/bomsight/bomsight/internal/monitoring"
	"github.com/bomsight/bomsight/internal/risk"
	"github.com/bomsight/bomsight/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a read-only JSON view of queue, history, and BOM risk",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           newAPIRouter(st),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			zap.L().Info("http server listening", zap.Int("port", cfg.Server.Port))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		case err := <-errCh:
			if err != nil && err != http.ErrServerClosed {
				return eris.Wrap(err, "http server")
			}
			return nil
		}
	},
}

func newAPIRouter(st store.Store) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}))

	collector := monitoring.NewCollector(st)
	riskSvc := risk.NewService(st, cfg.Risk)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Get("/api/status", func(w http.ResponseWriter, req *http.Request) {
		lookback := 24
		if v := req.URL.Query().Get("lookback"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				lookback = n
			}
		}
		snap, err := collector.Collect(req.Context(), lookback)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, snap)
	})

	r.Get("/api/queue", func(w http.ResponseWriter, req *http.Request) {
		entries, err := st.ListQueueEntries(req.Context(), store.QueueFilter{
			Status: model.QueueStatus(req.URL.Query().Get("status")),
			Limit:  200,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, entries)
	})

	r.Get("/api/components/{id}/history", func(w http.ResponseWriter, req *http.Request) {
		history, err := st.ListHistory(req.Context(), store.HistoryFilter{
			ComponentID: chi.URLParam(req, "id"),
			Limit:       100,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, history)
	})

	r.Get("/api/boms/{id}/summary", func(w http.ResponseWriter, req *http.Request) {
		summary, err := st.GetLatestSummary(req.Context(), chi.URLParam(req, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		if summary == nil {
			http.Error(w, "no summary", http.StatusNotFound)
			return
		}
		writeJSON(w, summary)
	})

	r.Get("/api/boms/{id}/risk", func(w http.ResponseWriter, req *http.Request) {
		summary, err := riskSvc.SummarizeBom(req.Context(), chi.URLParam(req, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, summary)
	})

	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if eris.Is(err, model.ErrComponentNotFound) {
		status = http.StatusNotFound
	}
	http.Error(w, err.Error(), status)
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
