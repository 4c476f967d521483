// Package validation derives per-field error messages from a form
// declaration. Evaluation is pure and total: every field yields either a
// message or nothing for any input string.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/goliatone/go-formstate/pkg/mask"
	"github.com/goliatone/go-formstate/pkg/model"
)

const (
	MessageRequired  = "this field is required"
	MessagePattern   = "invalid format"
	MessageMinLength = "must have at least %d characters"
	MessageMaxLength = "must have at most %d characters"
	MessageLength    = "must have exactly %d characters"
)

var patternCache sync.Map // expression -> *regexp.Regexp (nil when invalid)

// Validate evaluates every field of form against values and returns the
// failing fields keyed by field key. Passing fields are absent. Missing
// values are treated as empty strings.
func Validate(form model.FormModel, values map[string]string) map[string]string {
	errs := make(map[string]string)
	for _, field := range form.Fields {
		if msg, failed := ValidateField(field, values[field.Key]); failed {
			errs[field.Key] = msg
		}
	}
	return errs
}

// ValidateField evaluates a single field. Required is checked against the
// trimmed value; the remaining rules run against the raw (unmasked) value and
// only when the field holds something.
func ValidateField(field model.Field, value string) (string, bool) {
	if strings.TrimSpace(value) == "" {
		if field.Required {
			return MessageRequired, true
		}
		return "", false
	}

	raw := value
	if field.Masked() && !field.RawValue {
		raw = mask.Parse(field.Mask).Extract(value)
	}

	for _, rule := range field.Validations {
		if msg, failed := checkRule(rule, raw); failed {
			return msg, true
		}
	}
	return "", false
}

func checkRule(rule model.ValidationRule, raw string) (string, bool) {
	switch rule.Kind {
	case model.ValidationRulePattern:
		re := compilePattern(rule.Params["pattern"])
		if re == nil || !re.MatchString(raw) {
			return withDefault(rule.Message(), MessagePattern), true
		}
	case model.ValidationRuleMinLength:
		if n, ok := parseInt(rule.Params["value"]); ok && utf8.RuneCountInString(raw) < n {
			return withDefault(rule.Message(), fmt.Sprintf(MessageMinLength, n)), true
		}
	case model.ValidationRuleMaxLength:
		if n, ok := parseInt(rule.Params["value"]); ok && utf8.RuneCountInString(raw) > n {
			return withDefault(rule.Message(), fmt.Sprintf(MessageMaxLength, n)), true
		}
	case model.ValidationRuleLength:
		if n, ok := parseInt(rule.Params["value"]); ok && utf8.RuneCountInString(raw) != n {
			return withDefault(rule.Message(), fmt.Sprintf(MessageLength, n)), true
		}
	}
	return "", false
}

// compilePattern returns nil for invalid expressions so a broken rule fails
// closed instead of panicking.
func compilePattern(expr string) *regexp.Regexp {
	if cached, ok := patternCache.Load(expr); ok {
		re, _ := cached.(*regexp.Regexp)
		return re
	}
	re, err := regexp.Compile(expr)
	if err != nil || expr == "" {
		re = nil
	}
	patternCache.Store(expr, re)
	return re
}

func withDefault(custom, fallback string) string {
	if strings.TrimSpace(custom) != "" {
		return custom
	}
	return fallback
}

func parseInt(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	val, err := strconv.Atoi(raw)
	return val, err == nil
}
