package tplengine

import (
	"strings"
	"testing"
)

func TestAddTemplateAndRender_Basic(t *testing.T) {
	e := NewEngine()
	if err := e.AddTemplate("hello", "Hello {{ .name }}"); err != nil {
		t.Fatalf("AddTemplate error: %v", err)
	}
	got, err := e.Render("hello", map[string]any{"name": "World"})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if got != "Hello World" {
		t.Fatalf("Render unexpected: %q", got)
	}
}

func TestRender_NoEscaping(t *testing.T) {
	e := NewEngine().MustAddTemplate("quoted", `"{{ .v }}"`)
	got, err := e.Render("quoted", map[string]any{"v": `a"b<c>&`})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if got != `"a"b<c>&"` {
		t.Fatalf("Render escaped output: %q", got)
	}
}

func TestRender_Errors(t *testing.T) {
	e := NewEngine()
	if _, err := e.Render("missing", nil); err == nil || !strings.Contains(err.Error(), "template not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
	if err := e.AddTemplate("broken", "{{ .x "); err == nil {
		t.Fatal("expected parse error")
	}
	e.MustAddTemplate("strict", "{{ .missing }}")
	if _, err := e.Render("strict", map[string]any{}); err == nil {
		t.Fatal("expected missingkey error")
	}
}

func TestRender_GlobalValuesAndSprig(t *testing.T) {
	e := NewEngine()
	e.AddGlobalValue("list", "roscsv")
	e.MustAddTemplate("g", `{{ .list | upper }}-{{ .name | default "none" }}`)
	got, err := e.Render("g", map[string]any{"name": ""})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if got != "ROSCSV-none" {
		t.Fatalf("Render unexpected: %q", got)
	}
	got, err = e.Render("g", map[string]any{"list": "hosts", "name": "x"})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if got != "HOSTS-x" {
		t.Fatalf("Render-time value should win: %q", got)
	}
}
