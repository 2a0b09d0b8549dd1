// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the survey API.

# Handler Types

Each handler is a struct holding the store and the metrics collectors:

  - SurveyHandler: create, list and fetch surveys
  - ResponseHandler: submit and list responses

Handlers are created via constructor functions:

	surveyHandler := handlers.NewSurveyHandler(s, m)

# Routes

	POST /surveys                          → CreateSurvey
	GET  /surveys                          → ListSurveys
	GET  /surveys/{survey_id}              → GetSurvey
	POST /surveys/{survey_id}/responses    → SubmitResponse
	GET  /surveys/{survey_id}/responses    → ListResponses

Create and submit answer 200 with the stored object.

# Errors

Errors use middleware.ErrorResponse:

	400 Bad Request            malformed JSON, missing title, bad answer value
	404 Not Found              "Survey not found"
	500 Internal Server Error  "Error creating survey: <cause>" and similar

An answer must be a string or a list of strings. question_id is not checked
against the survey's questions.
*/
package handlers
