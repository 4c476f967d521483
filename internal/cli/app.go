package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/goliatone/go-formstate/internal/config"
	"github.com/goliatone/go-formstate/pkg/contract"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/formspec"
	"github.com/goliatone/go-formstate/pkg/hospital"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/submission"
)

// loadForm returns the configured declaration, bundled or from FormDir.
func loadForm(cfg config.Config) (model.FormModel, error) {
	fsys := formspec.EmbeddedFS()
	if cfg.FormDir != "" {
		fsys = os.DirFS(cfg.FormDir)
	}
	store, err := formspec.LoadFS(fsys)
	if err != nil {
		return model.FormModel{}, err
	}
	f, ok := store.Form(cfg.FormID)
	if !ok {
		return model.FormModel{}, fmt.Errorf("form %q not found (available: %v)", cfg.FormID, store.IDs())
	}
	return f, nil
}

// newEngine wires declaration, contract, transport and controller into an
// engine ready to be driven by a command.
func newEngine(ctx context.Context, cfg config.Config, logger *slog.Logger, options ...form.Option) (*form.Engine, error) {
	f, err := loadForm(cfg)
	if err != nil {
		return nil, err
	}

	api, err := contract.Embedded(ctx)
	if err != nil {
		return nil, err
	}
	opID := f.OperationID
	if opID == "" {
		opID = f.ID
	}
	op, ok := api.Operation(opID)
	if !ok {
		return nil, fmt.Errorf("operation %q is not part of the API contract", opID)
	}
	if err := op.CheckForm(f); err != nil {
		return nil, err
	}

	httpTransport, err := submission.NewHTTPTransport(cfg.APIURL,
		submission.WithEndpoint(op.Method, op.Path),
		submission.WithPayloadValidator(op),
		submission.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		submission.WithHTTPLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	var transport submission.Transport = httpTransport
	if f.ID == hospital.FormID {
		transport = hospital.NewClient(httpTransport)
	}

	controller := submission.NewController(transport, submission.WithControllerLogger(logger))
	options = append([]form.Option{form.WithLogger(logger)}, options...)
	return form.New(f, controller, options...)
}
