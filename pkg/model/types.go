package model

const (
	ValidationRulePattern   = "pattern"
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRuleLength    = "length"
)

// ValidationRule represents a single constraint applied to a field's raw
// value. Length limits encode their threshold in Params["value"] while pattern
// rules keep the expression in Params["pattern"]. Any rule may override its
// error text through Params["message"].
type ValidationRule struct {
	Kind   string            `json:"kind" yaml:"kind"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

// Message returns the rule's custom error text, if any.
func (r ValidationRule) Message() string {
	if r.Params == nil {
		return ""
	}
	return r.Params["message"]
}

// Field models an individual input of a form.
type Field struct {
	Key         string           `json:"key" yaml:"key"`
	Label       string           `json:"label,omitempty" yaml:"label,omitempty"`
	Required    bool             `json:"required" yaml:"required"`
	Mask        string           `json:"mask,omitempty" yaml:"mask,omitempty"`
	RawValue    bool             `json:"rawValue,omitempty" yaml:"rawValue,omitempty"`
	Placeholder string           `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
	Validations []ValidationRule `json:"validations,omitempty" yaml:"validations,omitempty"`
}

// Masked reports whether the field routes input through a mask pattern.
func (f Field) Masked() bool {
	return f.Mask != ""
}

// DisplayLabel falls back to the key when no label is configured.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Key
}

// Copy holds the notification texts shown after a submission attempt. Values
// are pongo2 templates rendered with the submitted values in context.
type Copy struct {
	SuccessTitle   string `json:"successTitle,omitempty" yaml:"successTitle,omitempty"`
	SuccessMessage string `json:"successMessage,omitempty" yaml:"successMessage,omitempty"`
	FailureTitle   string `json:"failureTitle,omitempty" yaml:"failureTitle,omitempty"`
}

// FormModel is the top-level declaration consumed by the form engine.
type FormModel struct {
	ID          string  `json:"id" yaml:"id"`
	Title       string  `json:"title,omitempty" yaml:"title,omitempty"`
	OperationID string  `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Fields      []Field `json:"fields" yaml:"fields"`
	Copy        Copy    `json:"copy,omitempty" yaml:"copy,omitempty"`
}

// Keys lists the field keys in display order.
func (f FormModel) Keys() []string {
	keys := make([]string, 0, len(f.Fields))
	for _, field := range f.Fields {
		keys = append(keys, field.Key)
	}
	return keys
}

// Field looks up a field by key.
func (f FormModel) Field(key string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Key == key {
			return field, true
		}
	}
	return Field{}, false
}
