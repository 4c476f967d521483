package formspec_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/formspec"
)

func TestLoadFS_Embedded(t *testing.T) {
	store, err := formspec.LoadFS(formspec.EmbeddedFS())
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}
	form, ok := store.Form("createHospital")
	if !ok {
		t.Fatalf("createHospital not found in %v", store.IDs())
	}

	wantKeys := []string{"name", "cityname", "statename", "CNES", "ctiPhone", "onDutyPhone"}
	if diff := cmp.Diff(wantKeys, form.Keys()); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	phone, _ := form.Field("ctiPhone")
	if phone.Mask != "(99) 99999-9999" || !phone.RawValue || !phone.Required {
		t.Fatalf("phone preset not resolved: %#v", phone)
	}
	cnes, _ := form.Field("CNES")
	if cnes.Mask != "9999999" {
		t.Fatalf("cnes mask = %q", cnes.Mask)
	}
	if form.OperationID != "createHospital" || form.Copy.FailureTitle == "" {
		t.Fatalf("form metadata not parsed: %#v", form)
	}
}

func TestLoadFS_JSON(t *testing.T) {
	fsys := fstest.MapFS{
		"contact.json": {Data: []byte(`{
			"forms": {
				"contact": {
					"fields": [
						{"key": "email", "label": "E-mail", "required": true},
						{"key": "zip", "mask": "99999-999", "rawValue": true}
					]
				}
			}
		}`)},
		"notes.txt": {Data: []byte("ignored")},
	}
	store, err := formspec.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"contact"}, store.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	form, _ := store.Form("contact")
	if form.ID != "contact" || len(form.Fields) != 2 {
		t.Fatalf("unexpected form: %#v", form)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	cases := []struct {
		name    string
		files   fstest.MapFS
		wantErr string
	}{
		{
			name:    "empty file",
			files:   fstest.MapFS{"a.yaml": {Data: []byte("  ")}},
			wantErr: "is empty",
		},
		{
			name: "unknown preset",
			files: fstest.MapFS{"a.yaml": {Data: []byte(`
forms:
  f:
    fields:
      - key: phone
        mask: "@missing"
`)}},
			wantErr: `unknown mask preset "missing"`,
		},
		{
			name: "duplicate form across files",
			files: fstest.MapFS{
				"a.yaml": {Data: []byte("forms:\n  f:\n    fields:\n      - key: a\n")},
				"b.yaml": {Data: []byte("forms:\n  f:\n    fields:\n      - key: b\n")},
			},
			wantErr: `duplicate form "f"`,
		},
		{
			name:    "duplicate field",
			files:   fstest.MapFS{"a.yaml": {Data: []byte("forms:\n  f:\n    fields:\n      - key: a\n      - key: a\n")}},
			wantErr: `duplicate field key "a"`,
		},
		{
			name:    "invalid yaml",
			files:   fstest.MapFS{"a.yaml": {Data: []byte("forms: [")}},
			wantErr: "formspec: parse a.yaml",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := formspec.LoadFS(tc.files)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoadFS_Nil(t *testing.T) {
	store, err := formspec.LoadFS(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !store.Empty() {
		t.Fatalf("expected empty store")
	}
}
