package contract

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formstate/pkg/model"
)

//go:embed api/*
var embeddedAPI embed.FS

const jsonMediaType = "application/json"

// Contract indexes the operations of an OpenAPI document by operationId.
type Contract struct {
	operations map[string]Operation
}

// Operation is a single create endpoint.
type Operation struct {
	ID     string
	Method string
	Path   string

	schema *openapi3.Schema
}

// Embedded loads the bundled hospitals API description.
func Embedded(ctx context.Context) (*Contract, error) {
	return LoadFS(ctx, embeddedAPI, "api/hospitals.yaml")
}

// LoadFS reads name from fsys and parses it.
func LoadFS(ctx context.Context, fsys fs.FS, name string) (*Contract, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("contract: read %s: %w", name, err)
	}
	return Load(ctx, data)
}

// Load parses and validates an OpenAPI 3 document.
func Load(ctx context.Context, data []byte) (*Contract, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("contract: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("contract: load document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("contract: invalid document: %w", err)
	}

	c := &Contract{operations: make(map[string]Operation)}
	if doc.Paths == nil {
		return c, nil
	}
	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil || strings.TrimSpace(op.OperationID) == "" {
				continue
			}
			c.operations[op.OperationID] = Operation{
				ID:     op.OperationID,
				Method: strings.ToUpper(method),
				Path:   path,
				schema: requestSchema(op),
			}
		}
	}
	return c, nil
}

// Operation returns the operation with the given id.
func (c *Contract) Operation(id string) (Operation, bool) {
	if c == nil {
		return Operation{}, false
	}
	op, ok := c.operations[id]
	return op, ok
}

// Properties lists the request body properties in sorted order.
func (o Operation) Properties() []string {
	if o.schema == nil {
		return nil
	}
	names := make([]string, 0, len(o.schema.Properties))
	for name := range o.schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidatePayload checks body against the JSON request schema. Operations
// without a JSON body accept anything.
func (o Operation) ValidatePayload(ctx context.Context, body any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if o.schema == nil {
		return nil
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("contract: encode body: %w", err)
	}
	var value any
	if err := json.Unmarshal(encoded, &value); err != nil {
		return fmt.Errorf("contract: decode body: %w", err)
	}
	if err := o.schema.VisitJSON(value, openapi3.MultiErrors()); err != nil {
		return describe(err)
	}
	return nil
}

// CheckForm verifies that every field of form is a request property and that
// required flags agree with the schema.
func (o Operation) CheckForm(form model.FormModel) error {
	if o.schema == nil {
		return fmt.Errorf("contract: operation %q has no JSON request body", o.ID)
	}
	required := make(map[string]bool, len(o.schema.Required))
	for _, name := range o.schema.Required {
		required[name] = true
	}

	var problems []string
	declared := make(map[string]bool, len(form.Fields))
	for _, field := range form.Fields {
		declared[field.Key] = true
		if _, ok := o.schema.Properties[field.Key]; !ok {
			problems = append(problems, fmt.Sprintf("field %q is not a request property", field.Key))
			continue
		}
		if required[field.Key] && !field.Required {
			problems = append(problems, fmt.Sprintf("field %q must be required", field.Key))
		}
	}
	for _, name := range o.schema.Required {
		if !declared[name] {
			problems = append(problems, fmt.Sprintf("required property %q has no field", name))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("contract: form %q does not match operation %q: %s", form.ID, o.ID, strings.Join(problems, "; "))
	}
	return nil
}

func requestSchema(op *openapi3.Operation) *openapi3.Schema {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	media := op.RequestBody.Value.Content.Get(jsonMediaType)
	if media == nil || media.Schema == nil {
		return nil
	}
	return media.Schema.Value
}

func describe(err error) error {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		msgs := make([]string, 0, len(multi))
		for _, item := range multi {
			msgs = append(msgs, describeOne(item))
		}
		return errors.New(strings.Join(msgs, "; "))
	}
	return errors.New(describeOne(err))
}

func describeOne(err error) string {
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		if path := strings.Join(schemaErr.JSONPointer(), "."); path != "" {
			return path + ": " + schemaErr.Reason
		}
		return schemaErr.Reason
	}
	return err.Error()
}
