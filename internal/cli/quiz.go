package cli

//
// quiz.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/do/v2"
	"github.com/urfave/cli/v3"
	"gitlab.com/kabes/go-quizmaster/internal/aerr"
	"gitlab.com/kabes/go-quizmaster/internal/db"
	"gitlab.com/kabes/go-quizmaster/internal/model"
)

func newListQuizzesCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "list quizzes",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "published", Usage: "show only published quizzes", Aliases: []string{"p"}},
		},
		Action: wrap(listQuizzesCmd),
	}
}

//nolint:forbidigo
func listQuizzesCmd(ctx context.Context, clicmd *cli.Command, injector do.Injector) error {
	database, err := do.Invoke[*db.Database](injector)
	if err != nil {
		return aerr.Wrapf(err, "get database failed")
	}

	quizzes, err := database.Queries().ListQuizzes(ctx, clicmd.Bool("published"))
	if err != nil {
		return aerr.Wrapf(err, "list quizzes failed")
	}

	fmt.Printf("%-8s | %-40s | %-9s | %s\n", "ID", "Title", "Published", "Updated")
	fmt.Println(strings.Repeat("-", 90)) //nolint:mnd

	for _, q := range quizzes {
		fmt.Printf("%-8d | %-40s | %-9t | %s\n", q.ID, q.Title, q.Published, q.UpdatedAt.Format("2006-01-02 15:04"))
	}

	return nil
}

//------------------------------------------------------------------------------

func newShowQuizCmd() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "show quiz with questions and best attempts",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "id", Required: true},
			&cli.UintFlag{Name: "top", Value: 5, Usage: "number of best attempts to show"}, //nolint:mnd
		},
		Action: wrap(showQuizCmd),
	}
}

//nolint:forbidigo
func showQuizCmd(ctx context.Context, clicmd *cli.Command, injector do.Injector) error {
	database, err := do.Invoke[*db.Database](injector)
	if err != nil {
		return aerr.Wrapf(err, "get database failed")
	}

	quizid := clicmd.Int64("id")

	type quizDetails struct {
		quiz      *model.Quiz
		questions []model.Question
		attempts  []model.Attempt
	}

	details, err := db.InConnectionR(ctx, database, func(q *db.Queries) (quizDetails, error) {
		var (
			res quizDetails
			err error
		)

		if res.quiz, err = q.GetQuiz(ctx, quizid); err != nil {
			return res, err
		}

		if res.questions, err = q.ListQuestions(ctx, quizid); err != nil {
			return res, err
		}

		res.attempts, err = q.ListAttempts(ctx, quizid, clicmd.Uint("top"))

		return res, err
	})
	if err != nil {
		return aerr.Wrapf(err, "load quiz failed")
	}

	fmt.Printf("Quiz %d: %s\n", details.quiz.ID, details.quiz.Title)

	if details.quiz.Description != "" {
		fmt.Printf("  %s\n", details.quiz.Description)
	}

	fmt.Printf("\nQuestions (%d):\n", len(details.questions))

	for _, qs := range details.questions {
		fmt.Printf("  %2d. %s [%d pt]\n", qs.Position+1, qs.Body, qs.Points)
	}

	fmt.Printf("\nBest attempts:\n")

	for _, a := range details.attempts {
		fmt.Printf("  %-20s %d/%d  %s\n", a.Player, a.Score, a.MaxScore, a.CreatedAt.Format("2006-01-02 15:04"))
	}

	return nil
}

//------------------------------------------------------------------------------

func newAddQuizCmd() *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "add new quiz with questions",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Required: true, Aliases: []string{"t"}},
			&cli.StringFlag{Name: "description", Aliases: []string{"d"}},
			&cli.BoolFlag{Name: "published"},
			&cli.StringSliceFlag{Name: "question", Usage: "question body; may be repeated", Aliases: []string{"q"}},
		},
		Action: wrap(addQuizCmd),
	}
}

//nolint:forbidigo
func addQuizCmd(ctx context.Context, clicmd *cli.Command, injector do.Injector) error {
	title := strings.TrimSpace(clicmd.String("title"))
	if title == "" {
		return aerr.ErrValidation.WithUserMsg("quiz title can't be empty")
	}

	database, err := do.Invoke[*db.Database](injector)
	if err != nil {
		return aerr.Wrapf(err, "get database failed")
	}

	quizid, err := db.InTransactionR(ctx, database, func(q *db.Queries) (int64, error) {
		quizid, err := q.SaveQuiz(ctx, &model.Quiz{
			Title:       title,
			Description: clicmd.String("description"),
			Published:   clicmd.Bool("published"),
		})
		if err != nil {
			return 0, err
		}

		for pos, body := range clicmd.StringSlice("question") {
			question := model.Question{QuizID: quizid, Position: pos, Body: body, Points: 1}
			if _, err := q.SaveQuestion(ctx, &question); err != nil {
				return 0, err
			}
		}

		return quizid, nil
	})
	if err != nil {
		return aerr.Wrapf(err, "add quiz failed")
	}

	fmt.Printf("Quiz %q added; id=%d\n", title, quizid)

	return nil
}

//------------------------------------------------------------------------------

func newDeleteQuizCmd() *cli.Command {
	return &cli.Command{
		Name:   "delete",
		Usage:  "delete quiz with questions and attempts",
		Flags:  []cli.Flag{&cli.Int64Flag{Name: "id", Required: true}},
		Action: wrap(deleteQuizCmd),
	}
}

//nolint:forbidigo
func deleteQuizCmd(ctx context.Context, clicmd *cli.Command, injector do.Injector) error {
	database, err := do.Invoke[*db.Database](injector)
	if err != nil {
		return aerr.Wrapf(err, "get database failed")
	}

	quizid := clicmd.Int64("id")

	err = db.InTransaction(ctx, database, func(q *db.Queries) error {
		return q.DeleteQuiz(ctx, quizid)
	})
	if err != nil {
		return aerr.Wrapf(err, "delete quiz failed")
	}

	fmt.Printf("Quiz %d deleted\n", quizid)

	return nil
}
