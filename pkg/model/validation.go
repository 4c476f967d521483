package model

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-formstate/pkg/mask"
)

var (
	errFormIDMissing = errors.New("model: form id is required")
	errFormNoFields  = errors.New("model: form declares no fields")
)

// Validate checks the declaration itself: keys must be present and unique,
// masks must expose at least one placeholder and rule parameters must parse.
func (f FormModel) Validate() error {
	if strings.TrimSpace(f.ID) == "" {
		return errFormIDMissing
	}
	if len(f.Fields) == 0 {
		return errFormNoFields
	}
	seen := make(map[string]struct{}, len(f.Fields))
	for idx, field := range f.Fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			return fmt.Errorf("model: field %d has an empty key", idx)
		}
		if key != field.Key {
			return fmt.Errorf("model: field key %q has surrounding whitespace", field.Key)
		}
		if _, exists := seen[key]; exists {
			return fmt.Errorf("model: duplicate field key %q", key)
		}
		seen[key] = struct{}{}

		if err := validateField(field); err != nil {
			return fmt.Errorf("model: field %q: %w", key, err)
		}
	}
	return nil
}

func validateField(field Field) error {
	if field.Masked() && mask.Parse(field.Mask).Capacity() == 0 {
		return fmt.Errorf("mask %q has no placeholders", field.Mask)
	}
	if field.RawValue && !field.Masked() {
		return errors.New("rawValue requires a mask")
	}
	for _, rule := range field.Validations {
		switch rule.Kind {
		case ValidationRulePattern:
			expr := rule.Params["pattern"]
			if expr == "" {
				return errors.New("pattern rule requires a pattern")
			}
			if _, err := regexp.Compile(expr); err != nil {
				return fmt.Errorf("pattern rule: %w", err)
			}
		case ValidationRuleMinLength, ValidationRuleMaxLength, ValidationRuleLength:
			n, err := strconv.Atoi(rule.Params["value"])
			if err != nil || n < 0 {
				return fmt.Errorf("%s rule requires a non-negative value", rule.Kind)
			}
		default:
			return fmt.Errorf("unknown validation rule %q", rule.Kind)
		}
	}
	return nil
}
