// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/topsurvey/survey-api/models"
)

// SubmitResponse records a response and its answers and bumps the survey's
// response_count, all in one transaction. ErrNotFound is returned before
// anything is written. question_id is stored as given.
func (s *Store) SubmitResponse(ctx context.Context, surveyID string, answers []models.AnswerInput) (models.Response, error) {
	var resp models.Response

	err := s.WithTx(ctx, func(tx *sql.Tx) error {
		if err := surveyExists(ctx, tx, surveyID); err != nil {
			return err
		}

		resp = models.Response{
			ID:        s.newID(),
			SurveyID:  surveyID,
			Answers:   make([]models.Answer, 0, len(answers)),
			CreatedAt: s.timestamp(),
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO responses (id, survey_id, created_at)
			VALUES ($1, $2, $3)
		`, resp.ID, resp.SurveyID, resp.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert response: %w", err)
		}

		for i, a := range answers {
			value, err := json.Marshal(a.Answer)
			if err != nil {
				return fmt.Errorf("encode answer for question %s: %w", a.QuestionID, err)
			}

			_, err = tx.ExecContext(ctx, `
				INSERT INTO answers (id, response_id, question_id, position, value)
				VALUES ($1, $2, $3, $4, $5)
			`, s.newID(), resp.ID, a.QuestionID, i, string(value))
			if err != nil {
				return fmt.Errorf("insert answer for question %s: %w", a.QuestionID, err)
			}

			resp.Answers = append(resp.Answers, models.Answer{
				QuestionID: a.QuestionID,
				Answer:     a.Answer,
			})
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE surveys SET response_count = response_count + 1 WHERE id = $1
		`, surveyID)
		if err != nil {
			return fmt.Errorf("increment response count: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("increment response count: %w", err)
		}
		if n != 1 {
			return fmt.Errorf("increment response count: %d rows affected", n)
		}
		return nil
	})
	if err != nil {
		return models.Response{}, err
	}

	return resp, nil
}

// ListResponses returns every response to a survey, oldest first, with
// answers in submitted order. Answer ids are not exposed.
func (s *Store) ListResponses(ctx context.Context, surveyID string) ([]models.Response, error) {
	responses := []models.Response{}

	// a read transaction keeps the existence check and both queries consistent
	err := s.WithTx(ctx, func(tx *sql.Tx) error {
		if err := surveyExists(ctx, tx, surveyID); err != nil {
			return err
		}

		rows, err := tx.QueryContext(ctx, `
			SELECT id, survey_id, created_at
			FROM responses
			WHERE survey_id = $1
			ORDER BY created_at, id
		`, surveyID)
		if err != nil {
			return fmt.Errorf("query responses: %w", err)
		}

		index := map[string]int{}
		for rows.Next() {
			var r models.Response
			if err := rows.Scan(&r.ID, &r.SurveyID, &r.CreatedAt); err != nil {
				rows.Close()
				return fmt.Errorf("scan response: %w", err)
			}
			r.CreatedAt = r.CreatedAt.UTC()
			r.Answers = []models.Answer{}
			index[r.ID] = len(responses)
			responses = append(responses, r)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return fmt.Errorf("iterate responses: %w", err)
		}
		rows.Close()

		if len(responses) == 0 {
			return nil
		}

		arows, err := tx.QueryContext(ctx, `
			SELECT a.response_id, a.question_id, a.value
			FROM answers a
			JOIN responses r ON r.id = a.response_id
			WHERE r.survey_id = $1
			ORDER BY a.response_id, a.position
		`, surveyID)
		if err != nil {
			return fmt.Errorf("query answers: %w", err)
		}
		defer arows.Close()

		for arows.Next() {
			var responseID, value string
			var a models.Answer
			if err := arows.Scan(&responseID, &a.QuestionID, &value); err != nil {
				return fmt.Errorf("scan answer: %w", err)
			}
			if err := json.Unmarshal([]byte(value), &a.Answer); err != nil {
				return fmt.Errorf("decode answer for question %s: %w", a.QuestionID, err)
			}
			if i, ok := index[responseID]; ok {
				responses[i].Answers = append(responses[i].Answers, a)
			}
		}
		if err := arows.Err(); err != nil {
			return fmt.Errorf("iterate answers: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return responses, nil
}
