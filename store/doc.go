// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists surveys and responses.

A Store wraps a *sql.DB and is built once at startup and handed to the
handlers:

	s := store.New(conn)

# Transactions

Writes that touch more than one table go through WithTx, which commits when
the callback returns nil and rolls back otherwise:

	err := s.WithTx(ctx, func(tx *sql.Tx) error {
		...
	})

CreateSurvey writes the survey and all of its questions in one
transaction. SubmitResponse checks the survey exists, writes the response
and its answers and increments surveys.response_count in one transaction,
so a failed submission leaves no rows behind and the counter unchanged.

# Errors

ErrNotFound means the survey does not exist. It is always decided before
any write. Every other error is wrapped with the failing step:

	insert answer for question q1: UNIQUE constraint failed: answers.id

# Ordering

Surveys and responses come back oldest first. Questions and answers keep
the order they were submitted in.
*/
package store
