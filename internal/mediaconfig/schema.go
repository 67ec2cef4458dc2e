package mediaconfig

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/ryo-go/internal/utils"
)

//go:embed schemas/audio.schema.json
var audioSchemaJSON []byte

//go:embed schemas/movie.schema.json
var movieSchemaJSON []byte

var (
	audioSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
		return compileSchema("audio.schema.json", audioSchemaJSON)
	})
	movieSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
		return compileSchema("movie.schema.json", movieSchemaJSON)
	})
)

// ValidationError describes the first schema violation found in a config document.
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func compileSchema(name string, data []byte) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("add schema %s: %w", name, err)
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	return schema, nil
}

// validateDocument checks a decoded YAML/TOML document against schema.
// The document is normalised through JSON first so the validator only sees
// JSON value types.
func validateDocument(schema *jsonschema.Schema, doc interface{}) error {
	if doc == nil {
		return nil
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return &ValidationError{Message: fmt.Sprintf("config is not a plain mapping: %v", err)}
	}
	var obj interface{}
	if err := json.Unmarshal(data, &obj); err != nil {
		return &ValidationError{Message: err.Error()}
	}
	if err := schema.Validate(obj); err != nil {
		return toValidationError(err)
	}
	return nil
}

func toValidationError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &ValidationError{Message: err.Error()}
	}
	var result *ValidationError
	firstLeaf(ve, &result)
	if result != nil {
		return result
	}
	return &ValidationError{Message: ve.Message}
}

func firstLeaf(err *jsonschema.ValidationError, result **ValidationError) {
	if err == nil || *result != nil {
		return
	}
	if len(err.Causes) == 0 {
		*result = &ValidationError{
			Path:    utils.JSONPointerToPath(err.InstanceLocation),
			Message: err.Message,
		}
		return
	}
	for _, cause := range err.Causes {
		firstLeaf(cause, result)
	}
}
