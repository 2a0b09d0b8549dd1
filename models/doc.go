// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateSurveyRequest: title, description, questions
  - QuestionInput: id, text, type, required, options
  - SubmitResponseRequest: answers (survey_id accepted, path wins)
  - AnswerInput: question_id, answer

# Response Types

Types for JSON responses:

  - Survey: id, title, description, questions, created_at, response_count
  - Question: id, text, type, required, options
  - Response: id, survey_id, answers, created_at
  - Answer: question_id, answer
  - MessageResponse: message
  - ErrorResponse: error, message

# Answer Values

An answer is either a single string or an ordered list of strings.
AnswerValue carries the variant explicitly:

	v := models.NewTextValue("cat")
	v := models.NewListValue([]string{"red", "blue"})

	if items, ok := v.List(); ok {
		...
	}

It marshals to the bare JSON string or array and rejects any other JSON type
when decoding. The same encoding is used for storage, so the variant survives
a round trip through the database.
*/
package models
