// Package hospital wires the hospital registration form: its declaration,
// the typed record sent to the remote service and the createHospital call.
package hospital

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formstate/pkg/formspec"
	"github.com/goliatone/go-formstate/pkg/model"
)

// FormID identifies the bundled registration form.
const FormID = "createHospital"

// Record is the createHospital request body.
type Record struct {
	Name        string `json:"name"`
	CNES        string `json:"CNES"`
	CTIPhone    string `json:"ctiPhone"`
	OnDutyPhone string `json:"onDutyPhone"`
	CityName    string `json:"cityname"`
	StateName   string `json:"statename"`
}

// RecordFromValues picks the record fields out of form values. Keys not part
// of the record are dropped.
func RecordFromValues(values map[string]string) Record {
	return Record{
		Name:        values["name"],
		CNES:        values["CNES"],
		CTIPhone:    values["ctiPhone"],
		OnDutyPhone: values["onDutyPhone"],
		CityName:    values["cityname"],
		StateName:   values["statename"],
	}
}

// Form returns the bundled registration form declaration.
func Form() (model.FormModel, error) {
	store, err := formspec.LoadFS(formspec.EmbeddedFS())
	if err != nil {
		return model.FormModel{}, err
	}
	form, ok := store.Form(FormID)
	if !ok {
		return model.FormModel{}, fmt.Errorf("hospital: form %q is not bundled", FormID)
	}
	return form, nil
}

// Sender posts a JSON body.
type Sender interface {
	Send(ctx context.Context, body any) error
}

// Client performs createHospital over a Sender.
type Client struct {
	sender Sender
}

// NewClient wraps sender, usually a *submission.HTTPTransport.
func NewClient(sender Sender) *Client {
	return &Client{sender: sender}
}

// CreateHospital sends record to the remote service.
func (c *Client) CreateHospital(ctx context.Context, record Record) error {
	return c.sender.Send(ctx, record)
}

// Create satisfies submission.Transport.
func (c *Client) Create(ctx context.Context, payload map[string]string) error {
	return c.CreateHospital(ctx, RecordFromValues(payload))
}
