package main

import (
	"fmt"
	"github.com/swhawkins/LAPOK/internal/errors"
	"github.com/swhawkins/LAPOK/internal/models"
	"github.com/swhawkins/LAPOK/internal/questionnaire"
	"net/http"
)

// generateReport responds with the plain text report as a file download. The additional safety assessment posted
// with the request is saved first so that the report shows what is on the page.
func (app *application) generateReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	questions, err := app.assessments.LoadQuestions(ctx, app.questionnaire.Defaults())
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "load questions"))
		return
	}

	record := models.NewCaseRecord()
	if app.infoSubmitted(ctx) {
		record = app.caseRecord(ctx)
	}
	if protocol, ok := protocolFromForm(r); ok && app.questionnaire.Layout == questionnaire.LayoutFull {
		record.Protocol = protocol
		app.putCaseRecord(ctx, record)
	}

	doc := app.reports.Generate(ctx, record, questions)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(doc.Body))
}
