// Package formspec loads form declarations from JSON or YAML files. A file
// declares named mask presets and one or more forms keyed by id; fields may
// reference a preset with "@name" instead of repeating the pattern. The
// bundled hospital registration form is available through EmbeddedFS.
package formspec
