package main

import (
	"encoding/json"
	"net/http"
)

type healthStatus struct {
	Status        string `json:"status"`
	Questionnaire string `json:"questionnaire"`
}

// healthy reports that the server is up together with the questionnaire it serves.
func (app *application) healthy(w http.ResponseWriter, _ *http.Request) {
	body, _ := json.Marshal(healthStatus{Status: "ok", Questionnaire: app.questionnaire.Name}) //nolint:errchkjson // plain strings
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}
