package main

import (
	"github.com/swhawkins/LAPOK/internal/contexthelpers"
	"github.com/swhawkins/LAPOK/internal/models"
	"net/http"
)

type baseTemplateData struct {
	Theme       models.Theme
	Title       string
	Subtitle    string
	CurrentPath string
}

func (app *application) newBaseTemplateData(r *http.Request, theme models.Theme) baseTemplateData {
	return baseTemplateData{
		Theme:       theme,
		Title:       app.questionnaire.Title,
		Subtitle:    app.questionnaire.Subtitle,
		CurrentPath: contexthelpers.CurrentPath(r.Context()),
	}
}
