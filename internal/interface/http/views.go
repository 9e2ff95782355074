package http

import (
	"embed"
	"html/template"
	"io"

	"github.com/yanqian/outfit-assistant/internal/domain/view"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// quickTags are the preset weather descriptions offered next to the form.
var quickTags = []string{"晴", "多云", "小雨", "雷阵雨", "小雪", "大风"}

type pageData struct {
	Snapshot  view.Snapshot
	QuickTags []string
}

func renderPage(w io.Writer, data pageData) error {
	return pageTmpl.ExecuteTemplate(w, "index.html", data)
}
