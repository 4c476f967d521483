package notify

import (
	"strings"

	"github.com/flosch/pongo2/v6"
)

const (
	DefaultSuccessTitle   = "Saved!"
	DefaultSuccessMessage = "Record saved successfully!"
	DefaultFailureTitle   = "Submission failed!"
)

// RenderCopy renders a notification text template with the submitted values
// in context, e.g. "{{ name }} registered". Plain strings pass through
// unchanged; a template that fails to parse or execute is returned as is.
func RenderCopy(tpl string, values map[string]string) string {
	if !strings.Contains(tpl, "{{") && !strings.Contains(tpl, "{%") {
		return tpl
	}
	compiled, err := pongo2.FromString("{% autoescape off %}" + tpl + "{% endautoescape %}")
	if err != nil {
		return tpl
	}
	ctx := make(pongo2.Context, len(values))
	for key, value := range values {
		ctx[key] = value
	}
	out, err := compiled.Execute(ctx)
	if err != nil {
		return tpl
	}
	return strings.TrimSpace(out)
}

// Or returns value unless it is blank, in which case fallback is returned.
func Or(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
