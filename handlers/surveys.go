// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/topsurvey/survey-api/metrics"
	"github.com/topsurvey/survey-api/middleware"
	"github.com/topsurvey/survey-api/models"
	"github.com/topsurvey/survey-api/store"
)

type SurveyHandler struct {
	store   *store.Store
	metrics *metrics.Metrics
}

func NewSurveyHandler(s *store.Store, m *metrics.Metrics) *SurveyHandler {
	return &SurveyHandler{store: s, metrics: m}
}

// CreateSurvey handles POST /surveys
func (h *SurveyHandler) CreateSurvey(w http.ResponseWriter, r *http.Request) {
	const op = "create_survey"

	var req models.CreateSurveyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		h.metrics.ObserveOperation(op, metrics.OutcomeBadRequest)
		middleware.ErrorResponse(w, http.StatusBadRequest, decodeErrorMessage(err))
		return
	}

	if req.Title == nil {
		h.metrics.ObserveOperation(op, metrics.OutcomeBadRequest)
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.Questions == nil {
		h.metrics.ObserveOperation(op, metrics.OutcomeBadRequest)
		middleware.ErrorResponse(w, http.StatusBadRequest, "questions is required")
		return
	}

	in := store.NewSurvey{
		Title:     *req.Title,
		Questions: req.Questions,
	}
	if req.Description != nil {
		in.Description = *req.Description
	}

	survey, err := h.store.CreateSurvey(r.Context(), in)
	if err != nil {
		slog.Error("failed to create survey", "title", in.Title, "questions", len(in.Questions), "error", err)
		h.metrics.ObserveOperation(op, metrics.OutcomeError)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Error creating survey: "+err.Error())
		return
	}

	slog.Info("survey created", "survey_id", survey.ID, "questions", len(survey.Questions))
	h.metrics.ObserveOperation(op, metrics.OutcomeOK)
	middleware.JSONResponse(w, http.StatusOK, survey)
}

// ListSurveys handles GET /surveys
func (h *SurveyHandler) ListSurveys(w http.ResponseWriter, r *http.Request) {
	const op = "list_surveys"

	surveys, err := h.store.ListSurveys(r.Context())
	if err != nil {
		slog.Error("failed to list surveys", "error", err)
		h.metrics.ObserveOperation(op, metrics.OutcomeError)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Error listing surveys: "+err.Error())
		return
	}

	h.metrics.ObserveOperation(op, metrics.OutcomeOK)
	middleware.JSONResponse(w, http.StatusOK, surveys)
}

// GetSurvey handles GET /surveys/{survey_id}
func (h *SurveyHandler) GetSurvey(w http.ResponseWriter, r *http.Request) {
	const op = "get_survey"
	surveyID := r.PathValue("survey_id")

	survey, err := h.store.GetSurvey(r.Context(), surveyID)
	if errors.Is(err, store.ErrNotFound) {
		h.metrics.ObserveOperation(op, metrics.OutcomeNotFound)
		middleware.ErrorResponse(w, http.StatusNotFound, "Survey not found")
		return
	}
	if err != nil {
		slog.Error("failed to get survey", "survey_id", surveyID, "error", err)
		h.metrics.ObserveOperation(op, metrics.OutcomeError)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Error retrieving survey: "+err.Error())
		return
	}

	h.metrics.ObserveOperation(op, metrics.OutcomeOK)
	middleware.JSONResponse(w, http.StatusOK, survey)
}

// decodeErrorMessage names the offending field when the body was valid JSON
// but failed a field check.
func decodeErrorMessage(err error) string {
	if errors.Is(err, models.ErrMissingField) || errors.Is(err, models.ErrInvalidAnswerValue) {
		return err.Error()
	}
	return "Invalid JSON"
}
