// internal/console/page.go
package console

import (
	"html/template"
	"strings"

	"churn-console/internal/submission"
)

const submitLabel = "Predict Churn Risk"

// page holds the state of the rendered form page. It implements the element handles the
// submission handler drives, and is rendered by the index template afterwards.
type page struct {
	Sections []Section
	Values   map[string]string

	Button  buttonState
	Result  resultState
	Alerts  []string
	Version string
}

type buttonState struct {
	Label    string
	Disabled bool
	Opacity  string
}

type resultState struct {
	Visible    bool
	Text       string
	MeterWidth string
	View       submission.RiskView
	Classes    []string
	Scroll     bool
}

func newPage(values map[string]string, version string) *page {
	return &page{
		Sections: Catalog,
		Values:   values,
		Button:   buttonState{Label: submitLabel, Opacity: submission.IdleOpacity},
		Version:  version,
	}
}

func (p *page) elements() submission.Elements {
	return submission.Elements{
		Submit: (*pageButton)(p),
		Result: (*pageResult)(p),
		Alerts: (*pageAlerts)(p),
	}
}

// AlertText joins pending alerts for the dialog script.
func (p *page) AlertText() string {
	return strings.Join(p.Alerts, "\n\n")
}

// CardClass is the class list of the result card.
func (p *page) CardClass() string {
	return strings.Join(append([]string{"result-card"}, p.Result.Classes...), " ")
}

// MeterStyle is the inline style of the meter fill. Both values come from the renderer's fixed
// tables and number formatting.
func (p *page) MeterStyle() template.CSS {
	if !p.Result.Visible {
		return ""
	}
	return template.CSS("width: " + p.Result.MeterWidth + "; background-color: " + p.Result.View.MeterColor)
}

type pageButton page

func (b *pageButton) Label() string             { return b.Button.Label }
func (b *pageButton) SetLabel(label string)     { b.Button.Label = label }
func (b *pageButton) SetDisabled(disabled bool) { b.Button.Disabled = disabled }
func (b *pageButton) SetOpacity(opacity string) { b.Button.Opacity = opacity }

type pageResult page

func (r *pageResult) Reveal() { r.Result.Visible = true }

func (r *pageResult) SetProbability(text, meterWidth string) {
	r.Result.Text = text
	r.Result.MeterWidth = meterWidth
}

func (r *pageResult) ResetTier() {
	r.Result.Classes = nil
	r.Result.View = submission.RiskView{}
}

func (r *pageResult) ApplyTier(view submission.RiskView) {
	r.Result.Classes = []string{view.CardClass}
	r.Result.View = view
}

func (r *pageResult) ScrollIntoView(_, _ string) { r.Result.Scroll = true }

type pageAlerts page

func (a *pageAlerts) Alert(message string) { a.Alerts = append(a.Alerts, message) }
