// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/topsurvey/survey-api/cliparse"
	"github.com/topsurvey/survey-api/db"
	"github.com/topsurvey/survey-api/models"
	"github.com/topsurvey/survey-api/store"
)

// TestDBURLEnv points tests at a PostgreSQL database instead of SQLite.
// The database is wiped before each test.
const TestDBURLEnv = "TEST_DATABASE_URL"

// SetupTestDB creates a fresh test database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	cfg := GetTestConfig(t)

	conn, err := db.Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if cfg.DatabaseType == cliparse.DatabasePostgres {
		// Clean up tables before each test
		_, err = conn.Exec(`
			DROP TABLE IF EXISTS answers CASCADE;
			DROP TABLE IF EXISTS responses CASCADE;
			DROP TABLE IF EXISTS questions CASCADE;
			DROP TABLE IF EXISTS surveys CASCADE;
			DROP TABLE IF EXISTS schema_migrations CASCADE;
		`)
		if err != nil {
			t.Fatalf("Failed to clean database: %v", err)
		}
	}

	if err := db.Migrate(conn, cfg.DatabaseType); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig(t *testing.T) cliparse.Config {
	t.Helper()

	cfg := cliparse.Config{
		Port:           8080,
		DatabaseType:   cliparse.DatabaseSQLite,
		DatabaseURL:    filepath.Join(t.TempDir(), "surveys_test.db"),
		AllowedOrigins: []string{"http://localhost:3000"},
		LogFormat:      "text",
	}
	if url := os.Getenv(TestDBURLEnv); url != "" {
		cfg.DatabaseType = cliparse.DatabasePostgres
		cfg.DatabaseURL = url
	}
	return cfg
}

// CreateTestSurvey stores a survey with the given question ids and returns it
func CreateTestSurvey(t *testing.T, s *store.Store, title string, questionIDs ...string) models.Survey {
	t.Helper()

	questions := make([]models.QuestionInput, 0, len(questionIDs))
	for _, id := range questionIDs {
		questions = append(questions, models.QuestionInput{
			ID:   id,
			Text: "Question " + id,
			Type: "text",
		})
	}

	survey, err := s.CreateSurvey(context.Background(), store.NewSurvey{
		Title:     title,
		Questions: questions,
	})
	if err != nil {
		t.Fatalf("Failed to create test survey: %v", err)
	}

	return survey
}

// SubmitTestResponse answers every given question with its own id as text
func SubmitTestResponse(t *testing.T, s *store.Store, surveyID string, questionIDs ...string) models.Response {
	t.Helper()

	answers := make([]models.AnswerInput, 0, len(questionIDs))
	for _, id := range questionIDs {
		answers = append(answers, models.AnswerInput{
			QuestionID: id,
			Answer:     models.NewTextValue("answer " + id),
		})
	}

	resp, err := s.SubmitResponse(context.Background(), surveyID, answers)
	if err != nil {
		t.Fatalf("Failed to submit test response: %v", err)
	}

	return resp
}

// CountRows returns the number of rows in a table
func CountRows(t *testing.T, conn *sql.DB, table string) int {
	t.Helper()

	var n int
	if err := conn.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		var jsonBody []byte
		if raw, ok := body.(string); ok {
			jsonBody = []byte(raw)
		} else {
			jsonBody, _ = json.Marshal(body)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
