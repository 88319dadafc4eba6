package main

import (
	"github.com/swhawkins/LAPOK/internal/errors"
	"github.com/swhawkins/LAPOK/internal/models"
	"github.com/swhawkins/LAPOK/internal/questionnaire"
	"log/slog"
	"net/http"
	"strconv"
)

// answerQuestion records the answer to a single question and persists all answers.
func (app *application) answerQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		app.notFound(w, r)
		return
	}
	if err = r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	answer, ok := models.ParseAnswer(r.PostForm.Get("answer"))
	if !ok {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	var questions []models.Question
	if questions, err = app.assessments.LoadQuestions(ctx, app.questionnaire.Defaults()); err != nil {
		app.serverError(w, r, errors.Wrap(err, "load questions"))
		return
	}
	if !questionnaire.SetAnswer(questions, id, answer) {
		app.notFound(w, r)
		return
	}
	if err = app.assessments.SaveQuestions(ctx, questions); err != nil {
		app.serverError(w, r, errors.Wrap(err, "save questions", slog.Int("id", id)))
		return
	}

	app.logger.LogAttrs(ctx, slog.LevelDebug, "answer recorded",
		slog.Int("id", id), slog.String("answer", answer.String()))
	redirectHome(w, r, "q"+strconv.Itoa(id))
}
