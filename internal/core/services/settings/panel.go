package settings

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"

	"github.com/lcalzada-xor/duskboard/internal/core/domain"
)

var panelTmpl = template.Must(template.New("panel").Parse(`<form class="settings-panel" data-panel="{{.Kind}}">
<h3 class="modal-title">{{.Title}}</h3>
{{- range .Fields}}
<div class="modal-form-group">
  <label class="modal-label" for="{{.Name}}">{{.Label}}</label>
  {{- if eq .Kind "toggle"}}
  <label class="toggle"><input type="checkbox" id="{{.Name}}" name="{{.Name}}"{{if .Checked}} checked{{end}}><span class="toggle-slider"></span></label>
  {{- else if or (eq .Kind "intRange") (eq .Kind "floatRange")}}
  <div class="modal-input-group">
    <input type="number" class="modal-input" name="{{.MinName}}" value="{{.MinValue}}" placeholder="Min"{{if eq .Kind "floatRange"}} step="any"{{end}}>
    <input type="number" class="modal-input" name="{{.MaxName}}" value="{{.MaxValue}}" placeholder="Max"{{if eq .Kind "floatRange"}} step="any"{{end}}>
  </div>
  {{- else if eq .Kind "select"}}
  <select class="modal-input" id="{{.Name}}" name="{{.Name}}">
    {{- range .Options}}
    <option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>
    {{- end}}
  </select>
  {{- else if or (eq .Kind "intList") (eq .Kind "stringList")}}
  <textarea class="modal-input" id="{{.Name}}" name="{{.Name}}" rows="3">{{.Value}}</textarea>
  {{- else if eq .Kind "color"}}
  <input type="color" class="modal-color-input" id="{{.Name}}" name="{{.Name}}" value="{{.Value}}">
  {{- else if eq .Kind "password"}}
  <input type="password" class="modal-input" id="{{.Name}}" name="{{.Name}}" value="{{.Value}}">
  {{- else if or (eq .Kind "int") (eq .Kind "float")}}
  <input type="number" class="modal-input" id="{{.Name}}" name="{{.Name}}" value="{{.Value}}"{{if eq .Kind "float"}} step="any"{{end}}>
  {{- else}}
  <input type="text" class="modal-input" id="{{.Name}}" name="{{.Name}}" value="{{.Value}}">
  {{- end}}
  {{- with .Hint}}
  <div class="setting-description">{{.}}</div>
  {{- end}}
</div>
{{- end}}
</form>`))

// Panel is one settings sub-form. Render and Parse are pure.
type Panel struct {
	Kind   domain.PanelKind
	Title  string
	Fields []Field
}

// Render produces the form markup for the current document. Missing keys
// render as empty inputs.
func (p Panel) Render(s domain.Settings) (string, error) {
	if s == nil {
		s = domain.Settings{}
	}
	data := struct {
		Kind   domain.PanelKind
		Title  string
		Fields []fieldView
	}{Kind: p.Kind, Title: p.Title}
	for _, f := range p.Fields {
		data.Fields = append(data.Fields, f.view(s))
	}

	var buf bytes.Buffer
	if err := panelTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s panel: %w", p.Kind, err)
	}
	return buf.String(), nil
}

// Parse converts a submitted form into a patch. Fields absent from the form
// are left out, except toggles, which read as off.
func (p Panel) Parse(form url.Values) (domain.Patch, error) {
	var patch domain.Patch
	for _, f := range p.Fields {
		op, ok, err := f.parse(form)
		if err != nil {
			return nil, err
		}
		if ok {
			patch = append(patch, op)
		}
	}
	return patch, nil
}

// Registry maps panel kinds to their forms.
type Registry struct {
	panels map[domain.PanelKind]Panel
}

// NewRegistry returns a registry holding every built-in panel.
func NewRegistry() *Registry {
	r := &Registry{panels: make(map[domain.PanelKind]Panel)}
	for _, p := range builtinPanels() {
		r.panels[p.Kind] = p
	}
	return r
}

func (r *Registry) Get(kind domain.PanelKind) (Panel, error) {
	p, ok := r.panels[kind]
	if !ok {
		return Panel{}, fmt.Errorf("%w: %q", domain.ErrUnknownPanel, kind)
	}
	return p, nil
}

// Panels returns the registered panels in display order.
func (r *Registry) Panels() []Panel {
	out := make([]Panel, 0, len(r.panels))
	for _, k := range domain.PanelKinds() {
		if p, ok := r.panels[k]; ok {
			out = append(out, p)
		}
	}
	return out
}
