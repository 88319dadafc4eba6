package main

import (
	"github.com/swhawkins/LAPOK/internal/errors"
	"github.com/swhawkins/LAPOK/internal/models"
	"net/http"
	"slices"
	"strings"
)

const requiredMessage = "This field is required."

// caseFields are the form fields of the case information. All of them are required.
var caseFields = []string{ //nolint:gochecknoglobals // read-only list
	"officer-name", "badge-number", "case-number",
	"victim-name", "victim-dob", "victim-address", "victim-phone", "victim-relationship", "agency",
	"suspect-name", "suspect-dob", "suspect-address", "suspect-phone", "suspect-relationship",
}

// submitCase validates the case information and moves on to the assessment.
func (app *application) submitCase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	value := func(name string) string {
		return strings.TrimSpace(r.PostForm.Get(name))
	}

	record := app.caseRecord(ctx)
	record.Officer = models.OfficerInfo{
		FullName:    value("officer-name"),
		BadgeNumber: value("badge-number"),
		CaseNumber:  value("case-number"),
	}
	record.Victim = models.PersonInfo{
		Name:         value("victim-name"),
		DateOfBirth:  value("victim-dob"),
		Address:      value("victim-address"),
		Phone:        value("victim-phone"),
		Relationship: value("victim-relationship"),
		Agency:       value("agency"),
	}
	record.Suspect = models.PersonInfo{
		Name:         value("suspect-name"),
		DateOfBirth:  value("suspect-dob"),
		Address:      value("suspect-address"),
		Phone:        value("suspect-phone"),
		Relationship: value("suspect-relationship"),
		Agency:       "",
	}

	formErrors := make(map[string]string)
	for _, name := range caseFields {
		if value(name) == "" {
			formErrors[name] = requiredMessage
		}
	}
	if agency := record.Victim.Agency; agency != "" && !slices.Contains(models.Agencies, agency) {
		formErrors["agency"] = "Select one of the listed agencies."
	}

	if len(formErrors) > 0 {
		theme, err := app.assessments.LoadTheme(ctx, app.defaultTheme)
		if err != nil {
			app.serverError(w, r, errors.Wrap(err, "load theme"))
			return
		}
		app.renderCaseForm(w, r, http.StatusUnprocessableEntity, theme, record, formErrors)
		return
	}

	if err := app.sessionManager.RenewToken(ctx); err != nil {
		app.serverError(w, r, errors.Wrap(err, "renew session token"))
		return
	}
	app.putCaseRecord(ctx, record)
	app.sessionManager.Put(ctx, string(infoSubmittedSessionKey), true)
	redirectHome(w, r, "")
}

// editCase returns to the case information form keeping the entered values.
func (app *application) editCase(w http.ResponseWriter, r *http.Request) {
	app.sessionManager.Put(r.Context(), string(infoSubmittedSessionKey), false)
	redirectHome(w, r, "")
}
