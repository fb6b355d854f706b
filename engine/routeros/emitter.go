// Package routeros renders validated host records as a RouterOS script
// that registers every host with /tool netwatch.
package routeros

import (
	"fmt"

	"github.com/compozy/netwatchgen/engine/host"
	"github.com/compozy/netwatchgen/pkg/tplengine"
)

// ListVariable is the global array the script declares unless the
// emitter is configured with another name.
const ListVariable = "roscsv"

const scriptTemplateName = "netwatch"

// The layout reproduces the historical generator output byte for byte,
// including the blank line after every statement. Values are embedded
// without escaping; inputs must not contain double quotes.
const scriptTemplate = `{{- $list := .list | trim | default "` + ListVariable + `" -}}
:global {{ $list }} [:toarray ""];

{{ range .records }}:set {{ $list }} (${{ $list }}, { {"Hostname"="{{ .Hostname }}";"MAC"="{{ .MAC }}";"IP"="{{ .IP }}";} })

{{ end }}` + trailer

const trailer = `
# Print list content for verification
:put "Initial content of {{ $list }} list:"
:foreach i in=${{ $list }} do={
    :put ("IP: " . $i->"IP" . " Hostname: " . $i->"Hostname" . " MAC: " . $i->"MAC")
}

# Add devices to Netwatch
:foreach i in=${{ $list }} do={
    :local ipValue ($i->"IP");
    :local hostnameValue ($i->"Hostname");
    :local macValue ($i->"MAC");
    :local commentValue ($hostnameValue . " " . $macValue);

    # Print values to be added
    :put ("Adding host: " . $ipValue . " with comment: " . $commentValue);

    # Add to Netwatch
    /tool netwatch add host=$ipValue comment=$commentValue disabled=no
}`

// Emitter renders record sets into netwatch scripts.
type Emitter struct {
	engine *tplengine.TemplateEngine
}

// Option configures an Emitter.
type Option func(*tplengine.TemplateEngine)

// WithListVariable names the global array of the script. A blank name
// keeps ListVariable.
func WithListVariable(name string) Option {
	return func(engine *tplengine.TemplateEngine) {
		engine.AddGlobalValue("list", name)
	}
}

// NewEmitter creates an emitter with the netwatch template loaded.
func NewEmitter(opts ...Option) *Emitter {
	engine := tplengine.NewEngine().MustAddTemplate(scriptTemplateName, scriptTemplate)
	engine.AddGlobalValue("list", "")
	for _, opt := range opts {
		opt(engine)
	}
	return &Emitter{engine: engine}
}

// Emit renders the script for records. The output depends only on the
// records and their order.
func (e *Emitter) Emit(records host.RecordSet) string {
	if records == nil {
		records = host.RecordSet{}
	}
	out, err := e.engine.Render(scriptTemplateName, map[string]any{"records": records})
	if err != nil {
		// the template is fixed and every field is a string
		panic(fmt.Sprintf("routeros: render netwatch script: %v", err))
	}
	return out
}

var defaultEmitter = NewEmitter()

// Emit renders records with the package emitter.
func Emit(records host.RecordSet) string {
	return defaultEmitter.Emit(records)
}
