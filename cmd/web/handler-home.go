package main

import (
	"github.com/swhawkins/LAPOK/internal/errors"
	"github.com/swhawkins/LAPOK/internal/models"
	"github.com/swhawkins/LAPOK/internal/questionnaire"
	"github.com/swhawkins/LAPOK/internal/report"
	"github.com/swhawkins/LAPOK/internal/risk"
	"net/http"
)

type casePageData struct {
	baseTemplateData
	Record   models.CaseRecord
	Agencies []string
	Errors   map[string]string
}

type screeningOption struct {
	Value models.ScreeningResult
	Label string
}

var screeningOptions = []screeningOption{ //nolint:gochecknoglobals // read-only list
	{Value: models.ScreeningProtocol, Label: report.ScreeningSentence(models.ScreeningProtocol)},
	{Value: models.ScreeningOfficer, Label: report.ScreeningSentence(models.ScreeningOfficer)},
	{Value: models.ScreeningNone, Label: report.ScreeningSentence(models.ScreeningNone)},
}

type assessmentPageData struct {
	baseTemplateData
	Record           models.CaseRecord
	ShowCase         bool
	ShowProtocol     bool
	Questions        []models.Question
	Level            models.DangerLevel
	Tally            risk.Tally
	ScreeningOptions []screeningOption
}

// home shows the case information form until it has been submitted and the assessment after that.
func (app *application) home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	theme, err := app.assessments.LoadTheme(ctx, app.defaultTheme)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "load theme"))
		return
	}

	record := app.caseRecord(ctx)
	if !app.infoSubmitted(ctx) {
		app.renderCaseForm(w, r, http.StatusOK, theme, record, nil)
		return
	}

	var questions []models.Question
	if questions, err = app.assessments.LoadQuestions(ctx, app.questionnaire.Defaults()); err != nil {
		app.serverError(w, r, errors.Wrap(err, "load questions"))
		return
	}

	full := app.questionnaire.Layout == questionnaire.LayoutFull
	tally := risk.Count(app.questionnaire.Policy, questions)
	data := assessmentPageData{
		baseTemplateData: app.newBaseTemplateData(r, theme),
		Record:           record,
		ShowCase:         full,
		ShowProtocol:     full,
		Questions:        questions,
		Level:            risk.Classify(app.questionnaire.Policy, tally),
		Tally:            tally,
		ScreeningOptions: screeningOptions,
	}
	app.render(w, r, http.StatusOK, "assessment", data)
}

func (app *application) renderCaseForm(
	w http.ResponseWriter, r *http.Request, status int, theme models.Theme, record models.CaseRecord,
	formErrors map[string]string) {
	data := casePageData{
		baseTemplateData: app.newBaseTemplateData(r, theme),
		Record:           record,
		Agencies:         models.Agencies,
		Errors:           formErrors,
	}
	app.render(w, r, status, "case", data)
}
