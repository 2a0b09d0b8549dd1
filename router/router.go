// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/topsurvey/survey-api/handlers"
	"github.com/topsurvey/survey-api/metrics"
	"github.com/topsurvey/survey-api/middleware"
	"github.com/topsurvey/survey-api/models"
	"github.com/topsurvey/survey-api/store"
)

const readyTimeout = 2 * time.Second

func NewRouter(s *store.Store, m *metrics.Metrics) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	surveyHandler := handlers.NewSurveyHandler(s, m)
	responseHandler := handlers.NewResponseHandler(s, m)

	route := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.WithMetrics(m, h))
	}

	// Liveness; does not touch the database
	mux.HandleFunc("GET /health", route(func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("health check requested")
		middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Service is healthy"})
	}))

	// Readiness
	mux.HandleFunc("GET /ready", route(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()
		if err := s.Ping(ctx); err != nil {
			slog.Warn("readiness check failed", "error", err)
			middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
		middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Service is ready"})
	}))

	mux.Handle("GET /metrics", m.Handler())

	// Surveys
	mux.HandleFunc("POST /surveys", route(surveyHandler.CreateSurvey))
	mux.HandleFunc("GET /surveys", route(surveyHandler.ListSurveys))
	mux.HandleFunc("GET /surveys/{survey_id}", route(surveyHandler.GetSurvey))

	// Responses
	mux.HandleFunc("POST /surveys/{survey_id}/responses", route(responseHandler.SubmitResponse))
	mux.HandleFunc("GET /surveys/{survey_id}/responses", route(responseHandler.ListResponses))

	// Root endpoint
	mux.HandleFunc("GET /{$}", route(func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Welcome to the Survey API"})
	}))

	return mux
}
