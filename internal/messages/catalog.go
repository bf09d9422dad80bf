package messages

import (
	"bytes"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"gopkg.in/yaml.v3"
)

//go:embed messages.yaml
var defaultMessages []byte

// templateFuncs provides utility functions for templates.
var templateFuncs = sprig.TxtFuncMap()

// Catalog holds the compiled message templates keyed by message id.
type Catalog struct {
	templates map[string]*template.Template
}

// Default returns the built in catalog.
func Default() (*Catalog, error) {
	return Load("")
}

// Load builds the catalog from the built in messages, replaced key by key
// by the YAML file at overridePath when one is given.
func Load(overridePath string) (*Catalog, error) {
	raw, err := parse(defaultMessages)
	if err != nil {
		return nil, fmt.Errorf("parsing default messages: %w", err)
	}

	if overridePath != "" {
		data, err := os.ReadFile(overridePath)
		if err != nil {
			return nil, fmt.Errorf("reading messages: %w", err)
		}
		overrides, err := parse(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", overridePath, err)
		}
		for k, v := range overrides {
			if _, ok := raw[k]; !ok {
				slog.Warn("unknown message key in override", "key", k, "path", overridePath)
			}
			raw[k] = v
		}
	}

	c := &Catalog{templates: make(map[string]*template.Template, len(raw))}
	for k, v := range raw {
		tmpl, err := template.New(k).Funcs(templateFuncs).Option("missingkey=error").Parse(v)
		if err != nil {
			return nil, fmt.Errorf("parsing message %q: %w", k, err)
		}
		c.templates[k] = tmpl
	}

	return c, nil
}

func parse(data []byte) (map[string]string, error) {
	out := map[string]string{}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Render expands message key with data. An unknown key or a failing
// template yields the key itself so the player still sees something.
func (c *Catalog) Render(key string, data any) string {
	tmpl, ok := c.templates[key]
	if !ok {
		slog.Warn("unknown message", "key", key)
		return key
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		slog.Warn("rendering message", "key", key, "error", err)
		return key
	}
	return buf.String()
}

// Has reports whether the catalog knows key.
func (c *Catalog) Has(key string) bool {
	_, ok := c.templates[key]
	return ok
}
