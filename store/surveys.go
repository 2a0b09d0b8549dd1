// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/topsurvey/survey-api/models"
)

// NewSurvey is the validated input for CreateSurvey.
type NewSurvey struct {
	Title       string
	Description string
	Questions   []models.QuestionInput
}

// CreateSurvey stores a survey and its questions in one transaction.
// Question order is kept; nothing is visible unless every row is written.
func (s *Store) CreateSurvey(ctx context.Context, in NewSurvey) (models.Survey, error) {
	survey := models.Survey{
		ID:            s.newID(),
		Title:         in.Title,
		Description:   in.Description,
		Questions:     make([]models.Question, 0, len(in.Questions)),
		CreatedAt:     s.timestamp(),
		ResponseCount: 0,
	}

	err := s.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO surveys (id, title, description, created_at, response_count)
			VALUES ($1, $2, $3, $4, 0)
		`, survey.ID, survey.Title, survey.Description, survey.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert survey: %w", err)
		}

		for i, q := range in.Questions {
			options, err := encodeOptions(q.Options)
			if err != nil {
				return fmt.Errorf("encode options for question %s: %w", q.ID, err)
			}

			_, err = tx.ExecContext(ctx, `
				INSERT INTO questions (survey_id, id, position, text, type, required, options)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			`, survey.ID, q.ID, i, q.Text, q.Type, q.Required, options)
			if err != nil {
				return fmt.Errorf("insert question %s: %w", q.ID, err)
			}

			survey.Questions = append(survey.Questions, models.Question{
				ID:       q.ID,
				Text:     q.Text,
				Type:     q.Type,
				Required: q.Required,
				Options:  q.Options,
			})
		}
		return nil
	})
	if err != nil {
		return models.Survey{}, err
	}

	return survey, nil
}

// ListSurveys returns every survey with its questions, oldest first.
func (s *Store) ListSurveys(ctx context.Context) ([]models.Survey, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, created_at, response_count
		FROM surveys
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query surveys: %w", err)
	}

	surveys := []models.Survey{}
	index := map[string]int{}
	for rows.Next() {
		var sv models.Survey
		if err := rows.Scan(&sv.ID, &sv.Title, &sv.Description, &sv.CreatedAt, &sv.ResponseCount); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan survey: %w", err)
		}
		sv.CreatedAt = sv.CreatedAt.UTC()
		sv.Questions = []models.Question{}
		index[sv.ID] = len(surveys)
		surveys = append(surveys, sv)
	}
	// rows must be released before the next query; sqlite runs on one connection
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate surveys: %w", err)
	}
	rows.Close()

	if len(surveys) == 0 {
		return surveys, nil
	}

	qrows, err := s.db.QueryContext(ctx, `
		SELECT survey_id, id, text, type, required, options
		FROM questions
		ORDER BY survey_id, position
	`)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer qrows.Close()

	for qrows.Next() {
		var surveyID string
		q, err := scanQuestion(qrows, &surveyID)
		if err != nil {
			return nil, err
		}
		if i, ok := index[surveyID]; ok {
			surveys[i].Questions = append(surveys[i].Questions, q)
		}
	}
	if err := qrows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}

	return surveys, nil
}

// GetSurvey returns one survey with its questions, or ErrNotFound.
func (s *Store) GetSurvey(ctx context.Context, id string) (models.Survey, error) {
	return getSurvey(ctx, s.db, id)
}

// DeleteSurvey removes a survey. Questions, responses and answers go with
// it through the foreign key cascades.
func (s *Store) DeleteSurvey(ctx context.Context, id string) error {
	return s.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM surveys WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete survey: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete survey: %w", err)
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func getSurvey(ctx context.Context, q querier, id string) (models.Survey, error) {
	var sv models.Survey
	err := q.QueryRowContext(ctx, `
		SELECT id, title, description, created_at, response_count
		FROM surveys
		WHERE id = $1
	`, id).Scan(&sv.ID, &sv.Title, &sv.Description, &sv.CreatedAt, &sv.ResponseCount)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Survey{}, ErrNotFound
	}
	if err != nil {
		return models.Survey{}, fmt.Errorf("query survey: %w", err)
	}
	sv.CreatedAt = sv.CreatedAt.UTC()

	rows, err := q.QueryContext(ctx, `
		SELECT survey_id, id, text, type, required, options
		FROM questions
		WHERE survey_id = $1
		ORDER BY position
	`, id)
	if err != nil {
		return models.Survey{}, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	sv.Questions = []models.Question{}
	for rows.Next() {
		var surveyID string
		question, err := scanQuestion(rows, &surveyID)
		if err != nil {
			return models.Survey{}, err
		}
		sv.Questions = append(sv.Questions, question)
	}
	if err := rows.Err(); err != nil {
		return models.Survey{}, fmt.Errorf("iterate questions: %w", err)
	}

	return sv, nil
}

// surveyExists is the not-found check every survey-scoped operation makes
// before touching anything else.
func surveyExists(ctx context.Context, q querier, id string) error {
	var one int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM surveys WHERE id = $1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("query survey: %w", err)
	}
	return nil
}

func scanQuestion(rows *sql.Rows, surveyID *string) (models.Question, error) {
	var q models.Question
	var options sql.NullString
	if err := rows.Scan(surveyID, &q.ID, &q.Text, &q.Type, &q.Required, &options); err != nil {
		return models.Question{}, fmt.Errorf("scan question: %w", err)
	}

	if options.Valid {
		if err := json.Unmarshal([]byte(options.String), &q.Options); err != nil {
			return models.Question{}, fmt.Errorf("decode options for question %s: %w", q.ID, err)
		}
	}
	return q, nil
}

// encodeOptions maps absent options to NULL and keeps an empty list as [].
func encodeOptions(options []string) (any, error) {
	if options == nil {
		return nil, nil
	}
	b, err := json.Marshal(options)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
