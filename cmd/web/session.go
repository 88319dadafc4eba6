package main

import (
	"context"
	"encoding/gob"
	"github.com/swhawkins/LAPOK/internal/models"
	"github.com/swhawkins/LAPOK/internal/questionnaire"
)

func init() {
	gob.Register(models.CaseRecord{}) //nolint:exhaustruct // type registration only
}

type sessionKey string

const (
	caseRecordSessionKey    = sessionKey("caseRecord")
	infoSubmittedSessionKey = sessionKey("infoSubmitted")
)

// caseRecord returns the case record kept in the session or an empty record.
func (app *application) caseRecord(ctx context.Context) models.CaseRecord {
	record, ok := app.sessionManager.Get(ctx, string(caseRecordSessionKey)).(models.CaseRecord)
	if !ok {
		return models.NewCaseRecord()
	}
	return record
}

func (app *application) putCaseRecord(ctx context.Context, record models.CaseRecord) {
	app.sessionManager.Put(ctx, string(caseRecordSessionKey), record)
}

// infoSubmitted reports whether the case information form has been completed. The brief layout has no case form.
func (app *application) infoSubmitted(ctx context.Context) bool {
	if app.questionnaire.Layout == questionnaire.LayoutBrief {
		return true
	}
	return app.sessionManager.GetBool(ctx, string(infoSubmittedSessionKey))
}
