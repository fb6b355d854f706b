package tplengine

import (
	"bytes"
	"fmt"
	"maps"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// TemplateEngine renders named text templates with sprig functions.
// Templates never HTML-escape their output.
type TemplateEngine struct {
	templates    map[string]*template.Template
	globalValues map[string]any
}

// NewEngine creates an empty template engine
func NewEngine() *TemplateEngine {
	return &TemplateEngine{
		templates:    make(map[string]*template.Template),
		globalValues: make(map[string]any),
	}
}

// AddGlobalValue exposes a value to every render under the given key.
// Values passed at render time take precedence.
func (e *TemplateEngine) AddGlobalValue(name string, value any) {
	e.globalValues[name] = value
}

// AddTemplate adds a template to the engine
func (e *TemplateEngine) AddTemplate(name, templateStr string) error {
	tmpl, err := parse(name, templateStr)
	if err != nil {
		return err
	}
	e.templates[name] = tmpl
	return nil
}

// MustAddTemplate is AddTemplate for templates known at compile time.
func (e *TemplateEngine) MustAddTemplate(name, templateStr string) *TemplateEngine {
	if err := e.AddTemplate(name, templateStr); err != nil {
		panic(err)
	}
	return e
}

// Render renders a template by name
func (e *TemplateEngine) Render(name string, data map[string]any) (string, error) {
	tmpl, ok := e.templates[name]
	if !ok {
		return "", fmt.Errorf("template not found: %s", name)
	}
	return e.renderTemplate(tmpl, data)
}

func (e *TemplateEngine) renderTemplate(tmpl *template.Template, data map[string]any) (string, error) {
	ctx := make(map[string]any, len(e.globalValues)+len(data))
	maps.Copy(ctx, e.globalValues)
	maps.Copy(ctx, data)
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return "", fmt.Errorf("template execution error: %w", err)
	}
	return buf.String(), nil
}

func parse(name, templateStr string) (*template.Template, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Funcs(sprig.TxtFuncMap()).Parse(templateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return tmpl, nil
}
