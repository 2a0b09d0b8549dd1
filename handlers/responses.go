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

type ResponseHandler struct {
	store   *store.Store
	metrics *metrics.Metrics
}

func NewResponseHandler(s *store.Store, m *metrics.Metrics) *ResponseHandler {
	return &ResponseHandler{store: s, metrics: m}
}

// SubmitResponse handles POST /surveys/{survey_id}/responses
func (h *ResponseHandler) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	const op = "submit_response"
	surveyID := r.PathValue("survey_id")

	var req models.SubmitResponseRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		h.metrics.ObserveOperation(op, metrics.OutcomeBadRequest)
		middleware.ErrorResponse(w, http.StatusBadRequest, decodeErrorMessage(err))
		return
	}

	if req.Answers == nil {
		h.metrics.ObserveOperation(op, metrics.OutcomeBadRequest)
		middleware.ErrorResponse(w, http.StatusBadRequest, "answers is required")
		return
	}

	if req.SurveyID != "" && req.SurveyID != surveyID {
		slog.Warn("ignoring survey_id in body", "survey_id", surveyID, "body_survey_id", req.SurveyID)
	}

	resp, err := h.store.SubmitResponse(r.Context(), surveyID, req.Answers)
	if errors.Is(err, store.ErrNotFound) {
		h.metrics.ObserveOperation(op, metrics.OutcomeNotFound)
		middleware.ErrorResponse(w, http.StatusNotFound, "Survey not found")
		return
	}
	if err != nil {
		slog.Error("failed to submit response", "survey_id", surveyID, "answers", len(req.Answers), "error", err)
		h.metrics.ObserveOperation(op, metrics.OutcomeError)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Error submitting response: "+err.Error())
		return
	}

	slog.Info("response submitted", "survey_id", surveyID, "response_id", resp.ID, "answers", len(resp.Answers))
	h.metrics.ObserveOperation(op, metrics.OutcomeOK)
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// ListResponses handles GET /surveys/{survey_id}/responses
func (h *ResponseHandler) ListResponses(w http.ResponseWriter, r *http.Request) {
	const op = "list_responses"
	surveyID := r.PathValue("survey_id")

	responses, err := h.store.ListResponses(r.Context(), surveyID)
	if errors.Is(err, store.ErrNotFound) {
		h.metrics.ObserveOperation(op, metrics.OutcomeNotFound)
		middleware.ErrorResponse(w, http.StatusNotFound, "Survey not found")
		return
	}
	if err != nil {
		slog.Error("failed to list responses", "survey_id", surveyID, "error", err)
		h.metrics.ObserveOperation(op, metrics.OutcomeError)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Error retrieving responses: "+err.Error())
		return
	}

	h.metrics.ObserveOperation(op, metrics.OutcomeOK)
	middleware.JSONResponse(w, http.StatusOK, responses)
}
