// Package model defines the declarative form description consumed by the
// validation and form engines. A FormModel is a plain data table: fields are
// listed in display order, each carrying its label, required flag, optional
// input mask and validation rules. Rules use canonical identifiers
// (pattern, minLength, maxLength, length) with string parameters so form
// declarations stay serialisable as YAML or JSON. Models are immutable once
// built; callers build forms by iterating Fields rather than branching per
// field.
package model
