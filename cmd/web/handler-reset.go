package main

import (
	"github.com/swhawkins/LAPOK/internal/errors"
	"net/http"
)

// reset clears all answers. Case information and theme are kept.
func (app *application) reset(w http.ResponseWriter, r *http.Request) {
	if err := app.assessments.Reset(r.Context()); err != nil {
		app.serverError(w, r, errors.Wrap(err, "reset answers"))
		return
	}
	redirectHome(w, r, "")
}
