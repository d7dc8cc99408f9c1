// Package model define records stored in quiz_master database.
package model

//
// quiz.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"time"

	"github.com/rs/zerolog"
)

type Quiz struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Published   bool      `db:"published"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (q *Quiz) MarshalZerologObject(event *zerolog.Event) {
	event.Int64("id", q.ID).
		Str("title", q.Title).
		Bool("published", q.Published).
		Time("updated_at", q.UpdatedAt)
}

// Question belong to quiz; questions are ordered by Position.
type Question struct {
	ID       int64  `db:"id"`
	QuizID   int64  `db:"quiz_id"`
	Position int    `db:"position"`
	Body     string `db:"body"`
	Points   int    `db:"points"`
}

func (q *Question) MarshalZerologObject(event *zerolog.Event) {
	event.Int64("id", q.ID).
		Int64("quiz_id", q.QuizID).
		Int("position", q.Position).
		Int("points", q.Points)
}

// Choice is one possible answer for question.
type Choice struct {
	ID         int64  `db:"id"`
	QuestionID int64  `db:"question_id"`
	Body       string `db:"body"`
	Correct    bool   `db:"correct"`
}

// Attempt is result of one quiz play.
type Attempt struct {
	ID        int64     `db:"id"`
	QuizID    int64     `db:"quiz_id"`
	Player    string    `db:"player"`
	Score     int       `db:"score"`
	MaxScore  int       `db:"max_score"`
	CreatedAt time.Time `db:"created_at"`
}

func (a *Attempt) MarshalZerologObject(event *zerolog.Event) {
	event.Int64("id", a.ID).
		Int64("quiz_id", a.QuizID).
		Str("player", a.Player).
		Int("score", a.Score).
		Int("max_score", a.MaxScore)
}
