package report

import (
	"bytes"
	"html/template"
	"os"
	"path/filepath"

	"github.com/huddle-lab/standup/pkg/domain/interfaces"
	"github.com/huddle-lab/standup/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// TemplateFileName is the fixed name of the report template within the
// configured template directory.
const TemplateFileName = "meeting_report.html"

// Renderer renders a meeting into an HTML report via html/template. The
// template is parsed per render so edits take effect without a restart, and
// all user-supplied fields are escaped by the template engine.
type Renderer struct {
	templateDir string
}

var _ interfaces.ReportRenderer = &Renderer{}

func New(templateDir string) *Renderer {
	return &Renderer{templateDir: templateDir}
}

func (r *Renderer) templatePath() string {
	return filepath.Join(r.templateDir, TemplateFileName)
}

// Available reports whether the report template file exists
func (r *Renderer) Available() bool {
	info, err := os.Stat(r.templatePath())
	return err == nil && !info.IsDir()
}

// Render returns the HTML report for the meeting. An error means "no report";
// callers continue without one.
func (r *Renderer) Render(meeting *model.Meeting) ([]byte, error) {
	tmpl, err := template.ParseFiles(r.templatePath())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load report template", goerr.V("path", r.templatePath()))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, meeting); err != nil {
		return nil, goerr.Wrap(err, "failed to render report", goerr.V(model.MeetingIDKey, meeting.ID))
	}

	return buf.Bytes(), nil
}
