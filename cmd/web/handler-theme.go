package main

import (
	"github.com/swhawkins/LAPOK/internal/errors"
	"log/slog"
	"net/http"
)

func (app *application) toggleTheme(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	theme, err := app.assessments.LoadTheme(ctx, app.defaultTheme)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "load theme"))
		return
	}
	theme = theme.Toggle()
	if err = app.assessments.SaveTheme(ctx, theme); err != nil {
		app.serverError(w, r, errors.Wrap(err, "save theme", slog.String("theme", string(theme))))
		return
	}
	redirectHome(w, r, "")
}
