// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topsurvey/survey-api/models"
	"github.com/topsurvey/survey-api/store"
	"github.com/topsurvey/survey-api/testutil"
)

func newStore(t *testing.T, opts ...store.Option) (*store.Store, *sql.DB) {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	t.Cleanup(func() { conn.Close() })
	return store.New(conn, opts...), conn
}

// steppingClock advances a millisecond per call so ordering by created_at is
// deterministic
func steppingClock() store.Option {
	var mu sync.Mutex
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	return store.WithClock(func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Millisecond)
		return now
	})
}

func TestCreateSurvey_RoundTrip(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	in := store.NewSurvey{
		Title:       "Lunch",
		Description: "Where do we eat?",
		Questions: []models.QuestionInput{
			{ID: "q3", Text: "Name", Type: "text", Required: true},
			{ID: "q1", Text: "Cuisine", Type: "multiple-choice", Options: []string{"thai", "pizza", "sushi"}},
			{ID: "q2", Text: "Toppings", Type: "checkbox", Options: []string{}},
		},
	}

	created, err := s.CreateSurvey(ctx, in)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 0, created.ResponseCount)
	assert.False(t, created.CreatedAt.IsZero())
	require.Len(t, created.Questions, 3)

	got, err := s.GetSurvey(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Lunch", got.Title)
	assert.Equal(t, "Where do we eat?", got.Description)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt), "created_at %v != %v", created.CreatedAt, got.CreatedAt)
	assert.Equal(t, created.Questions, got.Questions)

	// input order, not id order
	assert.Equal(t, []string{"q3", "q1", "q2"}, []string{got.Questions[0].ID, got.Questions[1].ID, got.Questions[2].ID})
	assert.Nil(t, got.Questions[0].Options, "absent options stay absent")
	assert.Equal(t, []string{"thai", "pizza", "sushi"}, got.Questions[1].Options)
	assert.NotNil(t, got.Questions[2].Options, "empty options stay an empty list")
	assert.Empty(t, got.Questions[2].Options)
}

func TestCreateSurvey_NoQuestions(t *testing.T) {
	s, _ := newStore(t)

	created, err := s.CreateSurvey(context.Background(), store.NewSurvey{Title: "Empty"})
	require.NoError(t, err)

	got, err := s.GetSurvey(context.Background(), created.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.Questions)
	assert.Empty(t, got.Questions)
	assert.Equal(t, "", got.Description)
}

func TestCreateSurvey_DuplicateQuestionRollsBack(t *testing.T) {
	s, conn := newStore(t)

	_, err := s.CreateSurvey(context.Background(), store.NewSurvey{
		Title: "Dupes",
		Questions: []models.QuestionInput{
			{ID: "q1", Text: "One", Type: "text"},
			{ID: "q1", Text: "Again", Type: "text"},
		},
	})
	require.Error(t, err)
	assert.False(t, errors.Is(err, store.ErrNotFound))

	assert.Equal(t, 0, testutil.CountRows(t, conn, "surveys"), "no partial survey")
	assert.Equal(t, 0, testutil.CountRows(t, conn, "questions"))
}

func TestCreateSurvey_SameQuestionIDAcrossSurveys(t *testing.T) {
	s, _ := newStore(t)

	a := testutil.CreateTestSurvey(t, s, "A", "q1")
	b := testutil.CreateTestSurvey(t, s, "B", "q1")

	assert.NotEqual(t, a.ID, b.ID)
}

func TestGetSurvey_NotFound(t *testing.T) {
	s, _ := newStore(t)

	_, err := s.GetSurvey(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListSurveys(t *testing.T) {
	s, _ := newStore(t, steppingClock())
	ctx := context.Background()

	surveys, err := s.ListSurveys(ctx)
	require.NoError(t, err)
	assert.NotNil(t, surveys)
	assert.Empty(t, surveys)

	first := testutil.CreateTestSurvey(t, s, "First", "a", "b")
	second := testutil.CreateTestSurvey(t, s, "Second")
	third := testutil.CreateTestSurvey(t, s, "Third", "z")

	surveys, err = s.ListSurveys(ctx)
	require.NoError(t, err)
	require.Len(t, surveys, 3)

	assert.Equal(t, first.ID, surveys[0].ID)
	assert.Equal(t, second.ID, surveys[1].ID)
	assert.Equal(t, third.ID, surveys[2].ID)
	assert.Equal(t, first.Questions, surveys[0].Questions)
	assert.Empty(t, surveys[1].Questions)
	assert.Equal(t, third.Questions, surveys[2].Questions)
}

func TestSubmitResponse_CountsAndLists(t *testing.T) {
	s, _ := newStore(t, steppingClock())
	ctx := context.Background()

	survey := testutil.CreateTestSurvey(t, s, "Pets", "q1", "q2")

	const k = 4
	var submitted []models.Response
	for i := 0; i < k; i++ {
		submitted = append(submitted, testutil.SubmitTestResponse(t, s, survey.ID, "q1", "q2"))
	}

	got, err := s.GetSurvey(ctx, survey.ID)
	require.NoError(t, err)
	assert.Equal(t, k, got.ResponseCount)

	responses, err := s.ListResponses(ctx, survey.ID)
	require.NoError(t, err)
	require.Len(t, responses, k)

	for i, r := range responses {
		assert.Equal(t, submitted[i].ID, r.ID)
		assert.Equal(t, survey.ID, r.SurveyID)
		assert.True(t, submitted[i].CreatedAt.Equal(r.CreatedAt))
		assert.Equal(t, submitted[i].Answers, r.Answers)
	}
}

func TestSubmitResponse_PreservesValueShape(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	survey := testutil.CreateTestSurvey(t, s, "Shapes", "single", "multi", "empty")

	answers := []models.AnswerInput{
		{QuestionID: "multi", Answer: models.NewListValue([]string{"b", "a", "c"})},
		{QuestionID: "single", Answer: models.NewTextValue(`["looks like a list"]`)},
		{QuestionID: "empty", Answer: models.NewListValue([]string{})},
		{QuestionID: "not-in-survey", Answer: models.NewTextValue("kept anyway")},
	}
	created, err := s.SubmitResponse(ctx, survey.ID, answers)
	require.NoError(t, err)
	require.Len(t, created.Answers, 4)

	responses, err := s.ListResponses(ctx, survey.ID)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	got := responses[0].Answers
	require.Len(t, got, 4)

	list, ok := got[0].Answer.List()
	require.True(t, ok, "list answer must come back as a list")
	assert.Equal(t, []string{"b", "a", "c"}, list)

	text, ok := got[1].Answer.Text()
	require.True(t, ok, "string answer must not be coerced to a list")
	assert.Equal(t, `["looks like a list"]`, text)

	empty, ok := got[2].Answer.List()
	require.True(t, ok)
	assert.Empty(t, empty)

	assert.Equal(t, "not-in-survey", got[3].QuestionID)
}

func TestSubmitResponse_UnknownSurvey(t *testing.T) {
	s, conn := newStore(t)

	_, err := s.SubmitResponse(context.Background(), "nope", []models.AnswerInput{
		{QuestionID: "q1", Answer: models.NewTextValue("cat")},
	})
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.Equal(t, 0, testutil.CountRows(t, conn, "responses"))
	assert.Equal(t, 0, testutil.CountRows(t, conn, "answers"))
}

func TestSubmitResponse_FailureRollsBackEverything(t *testing.T) {
	// every generated id collides, so the second answer insert fails
	var mu sync.Mutex
	ids := []string{"survey-1", "response-1", "answer-1", "answer-1"}
	next := func() string {
		mu.Lock()
		defer mu.Unlock()
		id := ids[0]
		if len(ids) > 1 {
			ids = ids[1:]
		}
		return id
	}

	s, conn := newStore(t, store.WithIDGenerator(next))
	ctx := context.Background()

	survey, err := s.CreateSurvey(ctx, store.NewSurvey{Title: "Rollback"})
	require.NoError(t, err)
	require.Equal(t, "survey-1", survey.ID)

	_, err = s.SubmitResponse(ctx, survey.ID, []models.AnswerInput{
		{QuestionID: "q1", Answer: models.NewTextValue("one")},
		{QuestionID: "q2", Answer: models.NewTextValue("two")},
	})
	require.Error(t, err)
	assert.False(t, errors.Is(err, store.ErrNotFound))

	assert.Equal(t, 0, testutil.CountRows(t, conn, "responses"), "response must be rolled back")
	assert.Equal(t, 0, testutil.CountRows(t, conn, "answers"), "answers must be rolled back")

	got, err := s.GetSurvey(ctx, survey.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.ResponseCount, "counter must not drift")
}

func TestListResponses_UnknownSurvey(t *testing.T) {
	s, _ := newStore(t)

	_, err := s.ListResponses(context.Background(), "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListResponses_Empty(t *testing.T) {
	s, _ := newStore(t)
	survey := testutil.CreateTestSurvey(t, s, "Quiet", "q1")

	responses, err := s.ListResponses(context.Background(), survey.ID)
	require.NoError(t, err)
	assert.NotNil(t, responses)
	assert.Empty(t, responses)
}

func TestListResponses_ScopedToSurvey(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	a := testutil.CreateTestSurvey(t, s, "A", "q1")
	b := testutil.CreateTestSurvey(t, s, "B", "q1")
	testutil.SubmitTestResponse(t, s, a.ID, "q1")
	testutil.SubmitTestResponse(t, s, a.ID, "q1")
	testutil.SubmitTestResponse(t, s, b.ID, "q1")

	ra, err := s.ListResponses(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, ra, 2)

	rb, err := s.ListResponses(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, rb, 1)
}

func TestDeleteSurvey_Cascades(t *testing.T) {
	s, conn := newStore(t)
	ctx := context.Background()

	keep := testutil.CreateTestSurvey(t, s, "Keep", "q1")
	testutil.SubmitTestResponse(t, s, keep.ID, "q1")

	gone := testutil.CreateTestSurvey(t, s, "Gone", "q1", "q2")
	testutil.SubmitTestResponse(t, s, gone.ID, "q1", "q2")
	testutil.SubmitTestResponse(t, s, gone.ID, "q2")

	require.NoError(t, s.DeleteSurvey(ctx, gone.ID))

	_, err := s.GetSurvey(ctx, gone.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.Equal(t, 1, testutil.CountRows(t, conn, "surveys"))
	assert.Equal(t, 1, testutil.CountRows(t, conn, "questions"))
	assert.Equal(t, 1, testutil.CountRows(t, conn, "responses"))
	assert.Equal(t, 1, testutil.CountRows(t, conn, "answers"))

	assert.ErrorIs(t, s.DeleteSurvey(ctx, gone.ID), store.ErrNotFound)
}

func TestWithTx(t *testing.T) {
	s, conn := newStore(t)
	ctx := context.Background()

	insert := func(tx *sql.Tx, id string) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO surveys (id, title, description, created_at) VALUES ($1, 'tx', '', $2)`, id, time.Now().UTC())
		return err
	}

	t.Run("commits on success", func(t *testing.T) {
		err := s.WithTx(ctx, func(tx *sql.Tx) error { return insert(tx, "committed") })
		require.NoError(t, err)
		_, err = s.GetSurvey(ctx, "committed")
		assert.NoError(t, err)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := s.WithTx(ctx, func(tx *sql.Tx) error {
			if err := insert(tx, "rolled-back"); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)
		_, err = s.GetSurvey(ctx, "rolled-back")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("rolls back on panic", func(t *testing.T) {
		assert.Panics(t, func() {
			_ = s.WithTx(ctx, func(tx *sql.Tx) error {
				if err := insert(tx, "panicked"); err != nil {
					return err
				}
				panic("boom")
			})
		})
		_, err := s.GetSurvey(ctx, "panicked")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	assert.Equal(t, 1, testutil.CountRows(t, conn, "surveys"))
}

func TestSubmitResponse_Concurrent(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	survey := testutil.CreateTestSurvey(t, s, "Busy", "q1")

	const n = 10
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.SubmitResponse(ctx, survey.ID, []models.AnswerInput{
				{QuestionID: "q1", Answer: models.NewTextValue(fmt.Sprintf("voter %d", i))},
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	got, err := s.GetSurvey(ctx, survey.ID)
	require.NoError(t, err)
	assert.Equal(t, n, got.ResponseCount)

	responses, err := s.ListResponses(ctx, survey.ID)
	require.NoError(t, err)
	assert.Len(t, responses, n)
}

func TestClock(t *testing.T) {
	fixed := time.Date(2025, 3, 14, 15, 9, 26, 535897932, time.FixedZone("X", 3600))
	s, _ := newStore(t, store.WithClock(func() time.Time { return fixed }))

	survey, err := s.CreateSurvey(context.Background(), store.NewSurvey{Title: "Clock"})
	require.NoError(t, err)

	want := fixed.UTC().Truncate(time.Microsecond)
	assert.True(t, want.Equal(survey.CreatedAt))
	assert.Equal(t, time.UTC, survey.CreatedAt.Location())

	got, err := s.GetSurvey(context.Background(), survey.ID)
	require.NoError(t, err)
	assert.True(t, want.Equal(got.CreatedAt), "stored %v, want %v", got.CreatedAt, want)
}
