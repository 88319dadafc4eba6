package main

import (
	"encoding/json"
	"fmt"
	"github.com/swhawkins/LAPOK/internal/errors"
	"github.com/swhawkins/LAPOK/internal/imagegen"
	"image/color"
	"net/http"
)

type manifestIcon struct {
	Src     string `json:"src"`
	Sizes   string `json:"sizes"`
	Type    string `json:"type"`
	Purpose string `json:"purpose,omitempty"`
}

type webManifest struct {
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	StartURL        string         `json:"start_url"`
	Display         string         `json:"display"`
	BackgroundColor string         `json:"background_color"`
	ThemeColor      string         `json:"theme_color"`
	Icons           []manifestIcon `json:"icons"`
}

// manifest serves the web app manifest listing the generated app icons.
func (app *application) manifest(w http.ResponseWriter, r *http.Request) {
	targets := imagegen.AppIcons()
	icons := make([]manifestIcon, 0, len(targets))
	for _, t := range targets {
		icon := manifestIcon{
			Src:     "/static/icons/" + t.Name + ".png",
			Sizes:   fmt.Sprintf("%dx%d", t.Width, t.Height),
			Type:    "image/png",
			Purpose: "",
		}
		if t.Width >= 192 { //nolint:mnd // maskable sizes
			icon.Purpose = "any maskable"
		}
		icons = append(icons, icon)
	}

	m := webManifest{
		Name:            app.questionnaire.Title,
		ShortName:       "LAP",
		StartURL:        "/",
		Display:         "standalone",
		BackgroundColor: "#ffffff",
		ThemeColor:      hexColor(imagegen.Blue),
		Icons:           icons,
	}
	body, err := json.Marshal(m)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "marshal manifest"))
		return
	}
	w.Header().Set("Content-Type", "application/manifest+json")
	_, _ = w.Write(body)
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
