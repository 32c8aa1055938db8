package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/minedash/backend/internal/models"
)

// ErrValidation can be used with errors.Is to detect payload validation failures.
var ErrValidation = errors.New("validation failed")

// Validator checks add-record payloads against per-collection JSON schemas.
// Validation is a hard reject: an invalid payload never reaches the store.
type Validator struct {
	schemas map[models.RecordKind]*jsonschema.Schema
}

// NewValidator loads all *.v1.json schema files from schemaDir, one per record
// kind (mining_logs, investors, withdrawals). schemaDir is typically "schemas".
func NewValidator(ctx context.Context, schemaDir string) (*Validator, error) {
	_ = ctx
	entries, err := os.ReadDir(schemaDir)
	if err != nil {
		return nil, fmt.Errorf("read schema dir %q: %w", schemaDir, err)
	}
	schemas := make(map[models.RecordKind]*jsonschema.Schema)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		kind := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		kind = strings.TrimSuffix(kind, ".v1")
		path := filepath.Join(schemaDir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %q: %w", path, err)
		}
		id := "https://minedash.dev/schemas/" + kind
		schemas[models.RecordKind(kind)], err = jsonschema.CompileString(id, string(data))
		if err != nil {
			return nil, fmt.Errorf("compile schema %q: %w", kind, err)
		}
	}
	for _, kind := range []models.RecordKind{models.KindMiningLog, models.KindInvestor, models.KindWithdrawal} {
		if _, ok := schemas[kind]; !ok {
			return nil, fmt.Errorf("missing schema for %q in %q", kind, schemaDir)
		}
	}
	return &Validator{schemas: schemas}, nil
}

// ValidateRecord rejects payloads that don't match the kind's schema: wrong
// types, non-positive amounts, missing names. Unknown kinds are an error.
func (v *Validator) ValidateRecord(ctx context.Context, kind models.RecordKind, payload json.RawMessage) error {
	schema, ok := v.schemas[kind]
	if !ok {
		return fmt.Errorf("unknown record kind %q", kind)
	}
	var doc interface{}
	if err := json.Unmarshal(payload, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}
