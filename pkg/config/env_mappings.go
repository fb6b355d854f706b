package config

import (
	"reflect"
	"sync"
)

// envKeyPaths maps each variable named by an env tag on Config to its
// dotted koanf path, e.g. INGEST_MODE to ingest.mode.
var envKeyPaths = sync.OnceValue(func() map[string]string {
	paths := make(map[string]string)
	walkEnvTags(reflect.TypeFor[Config](), "", paths)
	return paths
})

func walkEnvTags(t reflect.Type, parent string, paths map[string]string) {
	for field := range fieldsOf(t) {
		name := field.Tag.Get("koanf")
		if name == "" || name == "-" {
			continue
		}
		if parent != "" {
			name = parent + "." + name
		}
		if field.Type.Kind() == reflect.Struct {
			walkEnvTags(field.Type, name, paths)
			continue
		}
		if env := field.Tag.Get("env"); env != "" && env != "-" {
			paths[env] = name
		}
	}
}

func fieldsOf(t reflect.Type) func(func(reflect.StructField) bool) {
	return func(yield func(reflect.StructField) bool) {
		for i := range t.NumField() {
			if f := t.Field(i); f.IsExported() && !yield(f) {
				return
			}
		}
	}
}
