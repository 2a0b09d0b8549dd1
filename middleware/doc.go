// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /surveys", middleware.WithLogging(handler))

Each request gets an X-Request-ID (the caller's, or a fresh UUID). Start
and completion are logged with method, path, status, response size and
duration_ms. Requests that end in a 5xx are logged at error level.

# Metrics

WithMetrics counts requests and observes latency under the route pattern
the mux matched, so /surveys/{survey_id} is one series no matter the id:

	mux.HandleFunc("GET /surveys/{survey_id}", middleware.WithMetrics(m, handler))

# CORS Middleware

Only origins in the allow-list get CORS headers:

	server := http.Server{
		Handler: middleware.CORS(cfg.AllowedOrigins)(mux),
	}

Preflight requests from other origins are answered with 400 and the
body "Disallowed CORS origin".

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.CreateSurveyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Checks X-Forwarded-For, then X-Real-IP, then RemoteAddr.
*/
package middleware
