package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/piwi3910/isoforge/internal/model"
)

// MaxImportSize bounds the bytes read from a single import file.
const MaxImportSize = 32 << 20

// ErrInvalidProject is returned for project files that fail validation.
// The wrapped *ValidationError names the first offending field.
var ErrInvalidProject = errors.New("invalid project file")

// ValidationError describes why a project document was rejected.
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Reason
	}
	return e.Path + ": " + e.Reason
}

func invalid(path, reason string) error {
	return fmt.Errorf("%w: %w", ErrInvalidProject, &ValidationError{Path: path, Reason: reason})
}

// ReadFileAsText returns the contents of path as a string.
func ReadFileAsText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxImportSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) > MaxImportSize {
		return "", fmt.Errorf("file exceeds %d bytes", MaxImportSize)
	}
	return string(data), nil
}

// LoadProjectFile reads and validates a project JSON file.
func LoadProjectFile(path string) (model.Project, error) {
	text, err := ReadFileAsText(path)
	if err != nil {
		return model.Project{}, err
	}
	return ParseProjectJSON([]byte(text))
}

// ParseProjectJSON validates a project document and decodes it. The whole
// document is checked before anything is returned, so callers either get a
// complete project or an error wrapping ErrInvalidProject.
func ParseProjectJSON(data []byte) (model.Project, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.Project{}, invalid("", fmt.Sprintf("malformed JSON: %v", err))
	}
	if err := validateProject(raw); err != nil {
		return model.Project{}, err
	}

	var p model.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, invalid("", err.Error())
	}
	if p.Objects == nil {
		p.Objects = []model.SceneObject{}
	}
	return p, nil
}

// ─── Validation ────────────────────────────────────────────

func validateProject(raw interface{}) error {
	doc, ok := raw.(map[string]interface{})
	if !ok {
		return invalid("", "expected a JSON object")
	}
	if !nonEmptyString(doc["id"]) {
		return invalid("id", "must be a non-empty string")
	}
	if !nonEmptyString(doc["name"]) {
		return invalid("name", "must be a non-empty string")
	}
	for _, key := range []string{"createdAt", "updatedAt"} {
		if !isNumber(doc[key]) {
			return invalid(key, "must be a number")
		}
	}
	objs, ok := doc["objects"].([]interface{})
	if !ok {
		return invalid("objects", "must be an array")
	}
	for i, o := range objs {
		if err := validateObject(fmt.Sprintf("objects[%d]", i), o); err != nil {
			return err
		}
	}
	return nil
}

func validateObject(path string, raw interface{}) error {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return invalid(path, "expected an object")
	}
	if !nonEmptyString(obj["id"]) {
		return invalid(path+".id", "must be a non-empty string")
	}
	kind, _ := obj["type"].(string)
	if !model.ShapeKind(kind).Valid() {
		return invalid(path+".type", fmt.Sprintf("unsupported shape %q", kind))
	}
	if !nonEmptyString(obj["color"]) {
		return invalid(path+".color", "must be a non-empty string")
	}

	pos, ok := obj["position"].(map[string]interface{})
	if !ok {
		return invalid(path+".position", "must be an object")
	}
	for _, axis := range []string{"x", "y", "z"} {
		if !isNumber(pos[axis]) {
			return invalid(path+".position."+axis, "must be a number")
		}
	}

	size, ok := obj["size"].(map[string]interface{})
	if !ok {
		return invalid(path+".size", "must be an object")
	}
	for _, dim := range []string{"width", "height", "depth"} {
		v, ok := size[dim].(float64)
		if !ok || v <= 0 {
			return invalid(path+".size."+dim, "must be a positive number")
		}
	}
	return nil
}

func nonEmptyString(v interface{}) bool {
	s, ok := v.(string)
	return ok && s != ""
}

func isNumber(v interface{}) bool {
	_, ok := v.(float64)
	return ok
}
