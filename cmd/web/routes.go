package main

import (
	"github.com/justinas/alice"
	"github.com/swhawkins/LAPOK/internal/pprofserver"
	"github.com/swhawkins/LAPOK/ui"
	"io/fs"
	"net/http"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	static, err := fs.Sub(ui.Files, "static")
	if err != nil {
		panic(err) // the directory is embedded at build time
	}
	mux.Handle("GET /static/", cacheHeaders(http.StripPrefix("/static", http.FileServerFS(static))))
	mux.HandleFunc("GET /api/healthy", app.healthy)
	mux.HandleFunc("GET /manifest.webmanifest", app.manifest)

	session := alice.New(app.sessionManager.LoadAndSave, noSurf, commonContext)

	mux.Handle("GET /{$}", session.ThenFunc(app.home))
	mux.Handle("POST /case", session.ThenFunc(app.submitCase))
	mux.Handle("POST /case/edit", session.ThenFunc(app.editCase))
	mux.Handle("POST /questions/{id}", session.ThenFunc(app.answerQuestion))
	mux.Handle("POST /protocol", session.ThenFunc(app.saveProtocol))
	mux.Handle("POST /report", session.ThenFunc(app.generateReport))
	mux.Handle("POST /reset", session.ThenFunc(app.reset))
	mux.Handle("POST /theme", session.ThenFunc(app.toggleTheme))

	if app.pprof {
		pprofserver.Handle(mux)
	}

	common := alice.New(app.recoverPanic, app.logRequest, secureHeaders)
	return common.Then(timeoutHandler(mux, app.timeout))
}
