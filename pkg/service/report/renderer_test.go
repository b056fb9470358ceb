package report_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/huddle-lab/standup/pkg/domain/model"
	"github.com/huddle-lab/standup/pkg/service/report"
	"github.com/m-mizutani/gt"
)

const testTemplate = `<html><body>
<h1>{{ .ID }}</h1>
{{ range .Updates }}<div>{{ .User }}: {{ .Progress }}</div>{{ end }}
</body></html>`

func writeTemplate(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	gt.NoError(t, os.WriteFile(filepath.Join(dir, report.TemplateFileName), []byte(content), 0o644)).Required()
	return dir
}

func TestRenderer(t *testing.T) {
	dir := writeTemplate(t, testTemplate)
	r := report.New(dir)

	gt.Bool(t, r.Available()).True()

	m := model.NewMeeting("alice", "", "")
	_, err := m.AddUpdate("bob", "shipped X", "none", "ship Y")
	gt.NoError(t, err).Required()

	html, err := r.Render(m)
	gt.NoError(t, err).Required()
	gt.String(t, string(html)).Contains(m.ID.String())
	gt.String(t, string(html)).Contains("bob: shipped X")
}

func TestRenderer_EscapesUserInput(t *testing.T) {
	dir := writeTemplate(t, testTemplate)
	r := report.New(dir)

	m := model.NewMeeting("alice", "", "")
	_, err := m.AddUpdate("bob", `<script>alert("x")</script>`, "none", "ship Y")
	gt.NoError(t, err).Required()

	html, err := r.Render(m)
	gt.NoError(t, err).Required()
	gt.String(t, string(html)).NotContains("<script>")
}

func TestRenderer_MissingTemplate(t *testing.T) {
	r := report.New(t.TempDir())

	gt.Bool(t, r.Available()).False()

	m := model.NewMeeting("alice", "", "")
	_, err := r.Render(m)
	gt.Error(t, err)
}

func TestRenderer_TemplateError(t *testing.T) {
	dir := writeTemplate(t, `{{ .NoSuchField }}`)
	r := report.New(dir)

	m := model.NewMeeting("alice", "", "")
	_, err := r.Render(m)
	gt.Error(t, err)
}

func TestBundledTemplate(t *testing.T) {
	// Render the template shipped in templates/ against a closed meeting
	r := report.New(filepath.Join("..", "..", "..", "templates"))
	gt.Bool(t, r.Available()).True()

	m := model.NewMeeting("alice", "weekly sync", "https://example.com/room")
	_, err := m.AddUpdate("bob", "shipped X", "none", "ship Y")
	gt.NoError(t, err).Required()
	gt.NoError(t, m.Close())

	html, err := r.Render(m)
	gt.NoError(t, err).Required()
	gt.String(t, string(html)).Contains("weekly sync")
	gt.String(t, string(html)).Contains("shipped X")
}
