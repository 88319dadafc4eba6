package main

import (
	"bytes"
	"fmt"
	"github.com/swhawkins/LAPOK/internal/contexthelpers"
	"github.com/swhawkins/LAPOK/internal/errors"
	"github.com/swhawkins/LAPOK/ui"
	"html/template"
	"log/slog"
	"net/http"
)

// formField is the data of the "field" template.
type formField struct {
	Name  string
	Label string
	Value string
	Error string
}

// pageTemplate returns a template for the given page name.
//
// pageName corresponds to a directory inside ui/templates/pages. It has to include a template named "page".
func pageTemplate(pageName string) (*template.Template, error) {
	patterns := []string{
		"templates/base.gohtml",
		fmt.Sprintf("templates/pages/%s/*.gohtml", pageName),
	}

	// The FuncMap has to exist before parsing. nonce and csrf are overridden in render.
	t, err := template.New(pageName).Funcs(template.FuncMap{
		"nonce": func() template.HTMLAttr {
			panic("not implemented")
		},
		"csrf": func() template.HTML {
			panic("not implemented")
		},
		"field": func(name, label, value string, errs map[string]string) formField {
			return formField{Name: name, Label: label, Value: value, Error: errs[name]}
		},
	}).ParseFS(ui.Files, patterns...)
	if err != nil {
		return nil, errors.Wrap(err, "parse templates", slog.String("page", pageName))
	}
	return t, nil
}

func (app *application) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	var (
		err error
		t   *template.Template
	)

	if t, err = pageTemplate(page); err != nil {
		app.serverError(w, r, errors.Wrap(err, "parse template", slog.String("template", page)))
		return
	}

	buf := new(bytes.Buffer)
	ctx := r.Context()
	nonce := fmt.Sprintf("nonce=\"%s\"", contexthelpers.CSPNonce(ctx))
	csrf := fmt.Sprintf("<input type=\"hidden\" name=\"csrf_token\" value=\"%s\"/>", contexthelpers.CSRFToken(ctx))
	t.Funcs(template.FuncMap{
		"nonce": func() template.HTMLAttr {
			return template.HTMLAttr(nonce) //nolint:gosec // the nonce is generated by the server.
		},
		"csrf": func() template.HTML {
			return template.HTML(csrf) //nolint:gosec // the token is generated by the server.
		},
	})
	if err = t.ExecuteTemplate(buf, "base", data); err != nil {
		app.serverError(w, r, errors.Wrap(err, "execute template", slog.String("template", page)))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	_, _ = buf.WriteTo(w)
}
