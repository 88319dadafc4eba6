package main

import (
	"github.com/swhawkins/LAPOK/internal/models"
	"net/http"
	"strings"
)

var protocolFields = []string{ //nolint:gochecknoglobals // read-only list
	"additional-concerns", "screening-result", "contacted-program", "contact-reason", "spoke-with-advocate",
}

// protocolFromForm reads the additional safety assessment from a parsed form. ok is false when the form does not
// carry any of its fields.
func protocolFromForm(r *http.Request) (models.ProtocolInfo, bool) {
	var ok bool
	for _, name := range protocolFields {
		ok = ok || r.PostForm.Has(name)
	}
	return models.ProtocolInfo{
		AdditionalConcerns: strings.TrimSpace(r.PostForm.Get("additional-concerns")),
		ScreeningResult:    models.ParseScreeningResult(r.PostForm.Get("screening-result")),
		ContactedProgram:   r.PostForm.Get("contacted-program") == "yes",
		ContactReason:      strings.TrimSpace(r.PostForm.Get("contact-reason")),
		SpokeWithAdvocate:  r.PostForm.Get("spoke-with-advocate") == "yes",
	}, ok
}

// saveProtocol stores the additional safety assessment in the session.
func (app *application) saveProtocol(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	record := app.caseRecord(ctx)
	record.Protocol, _ = protocolFromForm(r)
	app.putCaseRecord(ctx, record)
	redirectHome(w, r, "")
}
