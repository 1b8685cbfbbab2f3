package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/aretw0/notebook/pkg/core"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/styles.css
var stylesheet []byte

const dateLayout = "Jan 2, 2006, 03:04 PM"

type views struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"date": func(n core.Note) string {
		t, err := n.CreatedAt()
		if err != nil {
			return n.ID
		}
		return t.Local().Format(dateLayout)
	},
	"relative": func(n core.Note) string {
		t, err := n.CreatedAt()
		if err != nil {
			return ""
		}
		return humanize.Time(t)
	},
}

func loadViews() (*views, error) {
	v := &views{pages: map[string]*template.Template{}}
	for _, page := range []string{"home", "notes", "note", "error"} {
		tmpl, err := template.New(page).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, errors.Wrapf(err, "could not parse %s template", page)
		}
		v.pages[page] = tmpl
	}
	return v, nil
}

// render executes page into a buffer first so a template failure can still become a 500.
func (v *views) render(w http.ResponseWriter, status int, page string, data any) error {
	tmpl, ok := v.pages[page]
	if !ok {
		return errors.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return errors.WithStack(err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

type formVModel struct {
	Error   string
	Title   string
	Content string
}

type notesPageVModel struct {
	Form  formVModel
	Notes []core.Note
	Info  string
}

type notePageVModel struct {
	Note core.Note
}

type errorPageVModel struct {
	Title   string
	Message string
}

// startedAt is the Last-Modified time of embedded assets.
var startedAt = time.Now()
