// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the survey API.

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(s, m)

# Endpoints

	GET  /                              - Welcome message
	GET  /health                        - Liveness
	GET  /ready                         - Database reachable
	GET  /metrics                       - Prometheus metrics

	POST /surveys                       - Create survey
	GET  /surveys                       - List surveys
	GET  /surveys/{survey_id}           - Get survey

	POST /surveys/{survey_id}/responses - Submit response
	GET  /surveys/{survey_id}/responses - List responses

Every route except /metrics is wrapped with request logging and request
metrics. CORS is applied around the whole mux by the caller.
*/
package router
