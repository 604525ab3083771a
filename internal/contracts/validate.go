package contracts

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/contract.json
var contractSchema []byte

const contractSchemaURL = "contract.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft7
		compiler.AssertFormat = true
		if err := compiler.AddResource(contractSchemaURL, bytes.NewReader(contractSchema)); err != nil {
			schemaErr = fmt.Errorf("add contract schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile(contractSchemaURL)
	})
	return schema, schemaErr
}

// Validate checks c before a write. The tenant's first name and national id
// are required; the remaining fields are checked against the contract schema.
func Validate(c Contract) error {
	var fields []FieldError
	if strings.TrimSpace(c.Tenant.FirstName) == "" {
		fields = append(fields, FieldError{Field: FieldTenantFirstName, Message: "tenant first name is required"})
	}
	if c.Tenant.NationalID <= 0 {
		fields = append(fields, FieldError{Field: FieldTenantNationalID, Message: "tenant national id is required"})
	}
	if math.IsNaN(c.MonthlyAmount) || math.IsInf(c.MonthlyAmount, 0) {
		fields = append(fields, FieldError{Field: FieldMonthlyAmount, Message: "monthly amount must be a finite number"})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	return ValidateRecord(ToRecord(c))
}

// ValidateRecord checks a wire record against the contract schema.
func ValidateRecord(r RawRecord) error {
	s, err := compiledSchema()
	if err != nil {
		return err
	}

	// the validator only understands the types produced by encoding/json
	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode contract: %w", err)
	}
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return fmt.Errorf("decode contract: %w", err)
	}

	err = s.Validate(doc)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("validate contract: %w", err)
	}
	return &ValidationError{Fields: leafErrors(ve, nil)}
}

func leafErrors(ve *jsonschema.ValidationError, out []FieldError) []FieldError {
	if len(ve.Causes) == 0 {
		return append(out, FieldError{
			Field:   strings.TrimPrefix(ve.InstanceLocation, "/"),
			Message: ve.Message,
		})
	}
	for _, c := range ve.Causes {
		out = leafErrors(c, out)
	}
	return out
}
