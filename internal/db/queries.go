package db

//
// queries.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gitlab.com/kabes/go-quizmaster/internal/aerr"
	"gitlab.com/kabes/go-quizmaster/internal/model"
)

// Queries is typed access to quiz_master tables.
type Queries struct {
	dbi Interface
}

func NewQueries(dbi Interface) *Queries {
	return &Queries{dbi: dbi}
}

//------------------------------------------------------------------------------

func (q *Queries) ListQuizzes(ctx context.Context, publishedOnly bool) ([]model.Quiz, error) {
	logger := log.Ctx(ctx)
	logger.Debug().Bool("published_only", publishedOnly).Msg("list quizzes")

	var quizzes []model.Quiz

	err := q.dbi.SelectContext(ctx, &quizzes, `
		SELECT id, title, description, published, created_at, updated_at
		FROM quizzes
		WHERE published OR NOT $1
		ORDER BY title, id`,
		publishedOnly)
	if err != nil {
		return nil, aerr.ApplyFor(aerr.ErrDatabase, err, "select quizzes failed")
	}

	return quizzes, nil
}

func (q *Queries) GetQuiz(ctx context.Context, quizid int64) (*model.Quiz, error) {
	logger := log.Ctx(ctx)
	logger.Debug().Int64("quiz_id", quizid).Msg("get quiz")

	quiz := model.Quiz{}

	err := q.dbi.GetContext(ctx, &quiz, `
		SELECT id, title, description, published, created_at, updated_at
		FROM quizzes
		WHERE id=$1`,
		quizid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, aerr.ApplyFor(aerr.ErrNotFound, err, "", "quiz not found").WithMeta("quiz_id", quizid)
	} else if err != nil {
		return nil, aerr.ApplyFor(aerr.ErrDatabase, err, "select quiz failed").WithMeta("quiz_id", quizid)
	}

	return &quiz, nil
}

// SaveQuiz insert new (ID=0) or update existing quiz. Return quiz id.
func (q *Queries) SaveQuiz(ctx context.Context, quiz *model.Quiz) (int64, error) {
	logger := log.Ctx(ctx)
	logger.Debug().Object("quiz", quiz).Msg("save quiz")

	now := time.Now().UTC()

	if quiz.ID == 0 {
		var id int64

		err := q.dbi.GetContext(ctx, &id, `
			INSERT INTO quizzes (title, description, published, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			quiz.Title, quiz.Description, quiz.Published, now, now)
		if err != nil {
			return 0, aerr.ApplyFor(aerr.ErrDatabase, err, "insert quiz failed")
		}

		return id, nil
	}

	res, err := q.dbi.ExecContext(ctx, `
		UPDATE quizzes SET title=$1, description=$2, published=$3, updated_at=$4
		WHERE id=$5`,
		quiz.Title, quiz.Description, quiz.Published, now, quiz.ID)
	if err != nil {
		return 0, aerr.ApplyFor(aerr.ErrDatabase, err, "update quiz failed").WithMeta("quiz_id", quiz.ID)
	}

	if err := checkAffected(res, quiz.ID); err != nil {
		return 0, err
	}

	return quiz.ID, nil
}

// DeleteQuiz remove quiz with its questions, choices and attempts.
func (q *Queries) DeleteQuiz(ctx context.Context, quizid int64) error {
	logger := log.Ctx(ctx)
	logger.Debug().Int64("quiz_id", quizid).Msg("delete quiz")

	sqls := []string{
		"DELETE FROM choices WHERE question_id IN (SELECT id FROM questions WHERE quiz_id=$1)",
		"DELETE FROM questions WHERE quiz_id=$1",
		"DELETE FROM attempts WHERE quiz_id=$1",
	}

	for _, query := range sqls {
		if _, err := q.dbi.ExecContext(ctx, query, quizid); err != nil {
			return aerr.ApplyFor(aerr.ErrDatabase, err, "delete quiz failed").WithMeta("sql", query, "quiz_id", quizid)
		}
	}

	res, err := q.dbi.ExecContext(ctx, "DELETE FROM quizzes WHERE id=$1", quizid)
	if err != nil {
		return aerr.ApplyFor(aerr.ErrDatabase, err, "delete quiz failed").WithMeta("quiz_id", quizid)
	}

	return checkAffected(res, quizid)
}

//------------------------------------------------------------------------------

func (q *Queries) ListQuestions(ctx context.Context, quizid int64) ([]model.Question, error) {
	logger := log.Ctx(ctx)
	logger.Debug().Int64("quiz_id", quizid).Msg("list questions")

	var questions []model.Question

	err := q.dbi.SelectContext(ctx, &questions, `
		SELECT id, quiz_id, position, body, points
		FROM questions
		WHERE quiz_id=$1
		ORDER BY position, id`,
		quizid)
	if err != nil {
		return nil, aerr.ApplyFor(aerr.ErrDatabase, err, "select questions failed").WithMeta("quiz_id", quizid)
	}

	return questions, nil
}

// SaveQuestion insert new (ID=0) or update existing question. Return question id.
func (q *Queries) SaveQuestion(ctx context.Context, question *model.Question) (int64, error) {
	logger := log.Ctx(ctx)
	logger.Debug().Object("question", question).Msg("save question")

	if question.ID == 0 {
		var id int64

		err := q.dbi.GetContext(ctx, &id, `
			INSERT INTO questions (quiz_id, position, body, points)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			question.QuizID, question.Position, question.Body, question.Points)
		if err != nil {
			return 0, aerr.ApplyFor(aerr.ErrDatabase, err, "insert question failed").
				WithMeta("quiz_id", question.QuizID)
		}

		return id, nil
	}

	res, err := q.dbi.ExecContext(ctx, `
		UPDATE questions SET position=$1, body=$2, points=$3
		WHERE id=$4`,
		question.Position, question.Body, question.Points, question.ID)
	if err != nil {
		return 0, aerr.ApplyFor(aerr.ErrDatabase, err, "update question failed").
			WithMeta("question_id", question.ID)
	}

	if err := checkAffected(res, question.ID); err != nil {
		return 0, err
	}

	return question.ID, nil
}

//------------------------------------------------------------------------------

func (q *Queries) ListChoices(ctx context.Context, questionid int64) ([]model.Choice, error) {
	var choices []model.Choice

	err := q.dbi.SelectContext(ctx, &choices, `
		SELECT id, question_id, body, correct
		FROM choices
		WHERE question_id=$1
		ORDER BY id`,
		questionid)
	if err != nil {
		return nil, aerr.ApplyFor(aerr.ErrDatabase, err, "select choices failed").
			WithMeta("question_id", questionid)
	}

	return choices, nil
}

func (q *Queries) SaveChoice(ctx context.Context, choice *model.Choice) (int64, error) {
	if choice.ID == 0 {
		var id int64

		err := q.dbi.GetContext(ctx, &id, `
			INSERT INTO choices (question_id, body, correct)
			VALUES ($1, $2, $3)
			RETURNING id`,
			choice.QuestionID, choice.Body, choice.Correct)
		if err != nil {
			return 0, aerr.ApplyFor(aerr.ErrDatabase, err, "insert choice failed").
				WithMeta("question_id", choice.QuestionID)
		}

		return id, nil
	}

	res, err := q.dbi.ExecContext(ctx,
		"UPDATE choices SET body=$1, correct=$2 WHERE id=$3",
		choice.Body, choice.Correct, choice.ID)
	if err != nil {
		return 0, aerr.ApplyFor(aerr.ErrDatabase, err, "update choice failed").WithMeta("choice_id", choice.ID)
	}

	if err := checkAffected(res, choice.ID); err != nil {
		return 0, err
	}

	return choice.ID, nil
}

//------------------------------------------------------------------------------

func (q *Queries) SaveAttempt(ctx context.Context, attempt *model.Attempt) (int64, error) {
	logger := log.Ctx(ctx)
	logger.Debug().Object("attempt", attempt).Msg("save attempt")

	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = time.Now().UTC()
	}

	var id int64

	err := q.dbi.GetContext(ctx, &id, `
		INSERT INTO attempts (quiz_id, player, score, max_score, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		attempt.QuizID, attempt.Player, attempt.Score, attempt.MaxScore, attempt.CreatedAt)
	if err != nil {
		return 0, aerr.ApplyFor(aerr.ErrDatabase, err, "insert attempt failed").WithMeta("quiz_id", attempt.QuizID)
	}

	return id, nil
}

// ListAttempts return best `limit` attempts for quiz (all when limit=0).
func (q *Queries) ListAttempts(ctx context.Context, quizid int64, limit uint) ([]model.Attempt, error) {
	var attempts []model.Attempt

	err := q.dbi.SelectContext(ctx, &attempts, `
		SELECT id, quiz_id, player, score, max_score, created_at
		FROM attempts
		WHERE quiz_id=$1
		ORDER BY score DESC, created_at, id
		LIMIT NULLIF($2, 0)`,
		quizid, int64(limit))
	if err != nil {
		return nil, aerr.ApplyFor(aerr.ErrDatabase, err, "select attempts failed").WithMeta("quiz_id", quizid)
	}

	return attempts, nil
}

//------------------------------------------------------------------------------

func checkAffected(res sql.Result, id int64) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return aerr.ApplyFor(aerr.ErrDatabase, err, "get rows affected failed")
	}

	if affected == 0 {
		return aerr.ErrNotFound.WithMeta("id", id)
	}

	return nil
}
