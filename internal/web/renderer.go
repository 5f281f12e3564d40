package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"path"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/maxaizer/career-dashboard/internal/domain/models"
	"github.com/samber/lo"
)

//go:embed templates/*.html
var templatesFS embed.FS

const layoutTemplate = "templates/layout.html"

// renderer keeps one template set per page, each combined with the layout.
type renderer struct {
	pages map[string]*template.Template
}

var templateFuncs = template.FuncMap{
	"percent": models.ScoreToPercent,
	"join":    strings.Join,
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Local().Format("2006-01-02 15:04")
	},
	"salary": func(low, high *float64) string {
		switch {
		case low != nil && high != nil:
			return fmt.Sprintf("%.0f - %.0f", *low, *high)
		case low != nil:
			return fmt.Sprintf("from %.0f", *low)
		case high != nil:
			return fmt.Sprintf("up to %.0f", *high)
		default:
			return ""
		}
	},
	"skillNames": func(skills []models.SkillShare) []string {
		return lo.Map(skills, func(s models.SkillShare, _ int) string { return s.Skill })
	},
}

func newRenderer() (*renderer, error) {
	entries, err := templatesFS.ReadDir("templates")
	if err != nil {
		return nil, err
	}

	r := &renderer{pages: make(map[string]*template.Template)}
	for _, entry := range entries {
		file := path.Join("templates", entry.Name())
		if file == layoutTemplate {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".html")
		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(templatesFS, layoutTemplate, file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}

	return r, nil
}

func (r *renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %s", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}
