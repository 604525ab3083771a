package branding

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrInvalid wraps every validation failure returned by Validate.
var ErrInvalid = errors.New("invalid branding")

//go:embed schema/branding.json
var brandingSchema []byte

var schema = mustCompile()

func mustCompile() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft7
	if err := c.AddResource("branding.json", bytes.NewReader(brandingSchema)); err != nil {
		panic(fmt.Sprintf("branding schema: %v", err))
	}
	return c.MustCompile("branding.json")
}

// Validate checks colors are #rgb or #rrggbb and the agency name is not
// absurdly long.
func Validate(b Branding) error {
	body, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("encode branding: %w", err)
	}
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return fmt.Errorf("decode branding: %w", err)
	}

	err = schema.Validate(doc)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("validate branding: %w", err)
	}

	msgs := leafMessages(ve, nil)
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func leafMessages(ve *jsonschema.ValidationError, out []string) []string {
	if len(ve.Causes) == 0 {
		return append(out, strings.TrimPrefix(ve.InstanceLocation, "/")+": "+ve.Message)
	}
	for _, c := range ve.Causes {
		out = leafMessages(c, out)
	}
	return out
}
