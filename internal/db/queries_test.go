package db

//
// queries_test.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/do/v2"
	"gitlab.com/kabes/go-quizmaster/internal/aerr"
	"gitlab.com/kabes/go-quizmaster/internal/assert"
	"gitlab.com/kabes/go-quizmaster/internal/config"
	"gitlab.com/kabes/go-quizmaster/internal/model"
	"gitlab.com/kabes/go-quizmaster/internal/testkit"
)

const testSchema = `
CREATE TABLE quizzes (
	id BIGSERIAL PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	published BOOLEAN NOT NULL DEFAULT false,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE questions (
	id BIGSERIAL PRIMARY KEY,
	quiz_id BIGINT NOT NULL REFERENCES quizzes(id),
	position INTEGER NOT NULL,
	body TEXT NOT NULL,
	points INTEGER NOT NULL DEFAULT 1
);
CREATE TABLE choices (
	id BIGSERIAL PRIMARY KEY,
	question_id BIGINT NOT NULL REFERENCES questions(id),
	body TEXT NOT NULL,
	correct BOOLEAN NOT NULL DEFAULT false
);
CREATE TABLE attempts (
	id BIGSERIAL PRIMARY KEY,
	quiz_id BIGINT NOT NULL REFERENCES quizzes(id),
	player TEXT NOT NULL,
	score INTEGER NOT NULL,
	max_score INTEGER NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);`

func prepareIntegration(t *testing.T) (context.Context, *Database) {
	t.Helper()

	testkit.RequireIntegration(t)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout}).With().Caller().Logger()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	ctx := log.Logger.WithContext(context.Background())
	settings := testkit.StartPostgres(ctx, t)

	i := do.New(Package)
	do.ProvideValue[config.Settings](i, settings)

	t.Cleanup(func() { i.Shutdown() })

	database := do.MustInvoke[*Database](i)
	if err := database.Ping(ctx); err != nil {
		t.Fatalf("ping database failed: %#+v", err)
	}

	if _, err := database.DB().ExecContext(ctx, testSchema); err != nil {
		t.Fatalf("create schema failed: %#+v", err)
	}

	return ctx, database
}

func TestQueriesQuizzes(t *testing.T) {
	ctx, database := prepareIntegration(t)
	q := database.Queries()

	id1, err := q.SaveQuiz(ctx, &model.Quiz{Title: "Go basics", Published: true})
	assert.NoErr(t, err)

	id2, err := q.SaveQuiz(ctx, &model.Quiz{Title: "Draft quiz"})
	assert.NoErr(t, err)
	assert.True(t, id1 != id2)

	quizzes, err := q.ListQuizzes(ctx, false)
	assert.NoErr(t, err)
	assert.Equal(t, len(quizzes), 2)
	assert.Equal(t, quizzes[0].Title, "Draft quiz")

	quizzes, err = q.ListQuizzes(ctx, true)
	assert.NoErr(t, err)
	assert.Equal(t, len(quizzes), 1)
	assert.Equal(t, quizzes[0].ID, id1)

	quiz, err := q.GetQuiz(ctx, id2)
	assert.NoErr(t, err)
	quiz.Description = "updated"
	quiz.Published = true

	_, err = q.SaveQuiz(ctx, quiz)
	assert.NoErr(t, err)

	quiz, err = q.GetQuiz(ctx, id2)
	assert.NoErr(t, err)
	assert.Equal(t, quiz.Description, "updated")
	assert.True(t, quiz.Published)

	_, err = q.GetQuiz(ctx, 999999)
	assert.ErrSpec(t, err, aerr.ErrNotFound)

	_, err = q.SaveQuiz(ctx, &model.Quiz{ID: 999999, Title: "missing"})
	assert.ErrSpec(t, err, aerr.ErrNotFound)
}

func TestQueriesQuestionsInTransaction(t *testing.T) {
	ctx, database := prepareIntegration(t)

	quizid, err := InTransactionR(ctx, database, func(q *Queries) (int64, error) {
		quizid, err := q.SaveQuiz(ctx, &model.Quiz{Title: "SQL"})
		if err != nil {
			return 0, err
		}

		for pos, body := range []string{"What is JOIN?", "What is index?"} {
			qid, err := q.SaveQuestion(ctx, &model.Question{QuizID: quizid, Position: pos, Body: body, Points: 2})
			if err != nil {
				return 0, err
			}

			if _, err := q.SaveChoice(ctx, &model.Choice{QuestionID: qid, Body: "answer", Correct: true}); err != nil {
				return 0, err
			}
		}

		return quizid, nil
	})
	assert.NoErr(t, err)

	questions, err := database.Queries().ListQuestions(ctx, quizid)
	assert.NoErr(t, err)
	assert.Equal(t, len(questions), 2)
	assert.Equal(t, questions[0].Body, "What is JOIN?")
	assert.Equal(t, questions[1].Position, 1)

	choices, err := database.Queries().ListChoices(ctx, questions[0].ID)
	assert.NoErr(t, err)
	assert.Equal(t, len(choices), 1)
	assert.True(t, choices[0].Correct)

	// rollback on error
	errAbort := errors.New("abort")
	err = InTransaction(ctx, database, func(q *Queries) error {
		if _, err := q.SaveQuiz(ctx, &model.Quiz{Title: "rolled back"}); err != nil {
			return err
		}

		return errAbort
	})
	assert.ErrSpec(t, err, errAbort)

	quizzes, err := InConnectionR(ctx, database, func(q *Queries) ([]model.Quiz, error) {
		return q.ListQuizzes(ctx, false)
	})
	assert.NoErr(t, err)
	assert.Equal(t, len(quizzes), 1)

	// delete with dependencies
	assert.NoErr(t, database.Queries().DeleteQuiz(ctx, quizid))
	assert.ErrSpec(t, database.Queries().DeleteQuiz(ctx, quizid), aerr.ErrNotFound)
}

func TestQueriesAttempts(t *testing.T) {
	ctx, database := prepareIntegration(t)
	q := database.Queries()

	quizid, err := q.SaveQuiz(ctx, &model.Quiz{Title: "Attempts"})
	assert.NoErr(t, err)

	for _, a := range []model.Attempt{
		{QuizID: quizid, Player: "ann", Score: 3, MaxScore: 10},
		{QuizID: quizid, Player: "bob", Score: 9, MaxScore: 10},
		{QuizID: quizid, Player: "cid", Score: 5, MaxScore: 10},
	} {
		_, err := q.SaveAttempt(ctx, &a)
		assert.NoErr(t, err)
	}

	attempts, err := q.ListAttempts(ctx, quizid, 2)
	assert.NoErr(t, err)
	assert.Equal(t, len(attempts), 2)
	assert.Equal(t, attempts[0].Player, "bob")
	assert.Equal(t, attempts[1].Player, "cid")

	attempts, err = q.ListAttempts(ctx, quizid, 0)
	assert.NoErr(t, err)
	assert.Equal(t, len(attempts), 3)
}
