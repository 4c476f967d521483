package formspec

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstate/pkg/model"
)

// Store holds the forms loaded from one or more files.
type Store struct {
	forms map[string]model.FormModel
}

type documentFile struct {
	Masks map[string]string          `json:"masks" yaml:"masks"`
	Forms map[string]model.FormModel `json:"forms" yaml:"forms"`
}

// LoadFS walks fsys and parses every JSON/YAML declaration file. When fsys is
// nil or holds no declarations, the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{forms: make(map[string]model.FormModel)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSpecFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("formspec: read %s: %w", path, err)
		}
		forms, err := Parse(data, path)
		if err != nil {
			return err
		}
		for _, form := range forms {
			if _, exists := store.forms[form.ID]; exists {
				return fmt.Errorf("formspec: duplicate form %q (file %s)", form.ID, path)
			}
			store.forms[form.ID] = form
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Parse decodes a single declaration file. source is only used in errors.
func Parse(data []byte, source string) ([]model.FormModel, error) {
	doc, err := parseDocument(data, source)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(doc.Forms))
	for id := range doc.Forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]model.FormModel, 0, len(ids))
	for _, rawID := range ids {
		id := strings.TrimSpace(rawID)
		if id == "" {
			return nil, fmt.Errorf("formspec: file %s defines an empty form id", source)
		}
		form, err := normaliseForm(doc.Forms[rawID], id, doc.Masks, source)
		if err != nil {
			return nil, err
		}
		out = append(out, form)
	}
	return out, nil
}

// Form returns the declaration with the given id.
func (s *Store) Form(id string) (model.FormModel, bool) {
	if s == nil {
		return model.FormModel{}, false
	}
	form, ok := s.forms[id]
	return form, ok
}

// IDs lists the loaded form ids in sorted order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any forms.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("formspec: file %s is empty", source)
	}
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("formspec: parse %s: %w", source, err)
	}
	return doc, nil
}

func normaliseForm(raw model.FormModel, id string, masks map[string]string, source string) (model.FormModel, error) {
	form := raw
	form.ID = id
	form.Fields = make([]model.Field, len(raw.Fields))
	for idx, field := range raw.Fields {
		field.Key = strings.TrimSpace(field.Key)
		resolved, err := resolveMask(field.Mask, masks)
		if err != nil {
			return model.FormModel{}, fmt.Errorf("formspec: form %q (file %s) field %q: %w", id, source, field.Key, err)
		}
		field.Mask = resolved
		form.Fields[idx] = field
	}
	if err := form.Validate(); err != nil {
		return model.FormModel{}, fmt.Errorf("formspec: form %q (file %s): %w", id, source, err)
	}
	return form, nil
}

func resolveMask(value string, masks map[string]string) (string, error) {
	name, isRef := strings.CutPrefix(value, "@")
	if !isRef {
		return value, nil
	}
	pattern, ok := masks[strings.TrimSpace(name)]
	if !ok || pattern == "" {
		return "", fmt.Errorf("unknown mask preset %q", name)
	}
	return pattern, nil
}

func isSpecFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
