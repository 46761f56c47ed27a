package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const isoDateOrEmpty = `^(\d{4}-\d{2}-\d{2})?$`

// BuildContractJSONSchema returns the JSON Schema every assembled contract
// must satisfy.
func BuildContractJSONSchema() map[string]any {
	room := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"room_type": map[string]any{"type": "string", "minLength": 1},
			"rate":      map[string]any{"type": "number", "minimum": 0},
			"quantity":  map[string]any{"type": "integer", "minimum": 0},
		},
		"required": []string{"room_type", "rate", "quantity"},
	}
	rule := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"release_date":    map[string]any{"type": "string", "pattern": isoDateOrEmpty},
			"release_percent": map[string]any{"type": "number", "exclusiveMinimum": 0, "maximum": 100},
			"description":     map[string]any{"type": "string"},
		},
		"required": []string{"release_date", "release_percent"},
	}
	props := map[string]any{
		"venue":           map[string]any{"type": "string", "minLength": 1},
		"check_in":        map[string]any{"type": "string", "pattern": isoDateOrEmpty},
		"check_out":       map[string]any{"type": "string", "pattern": isoDateOrEmpty},
		"nights":          map[string]any{"type": "integer", "minimum": 0},
		"rooms":           map[string]any{"type": "array", "minItems": 1, "items": room},
		"attrition_rules": map[string]any{"type": "array", "items": rule},
		"total_amount":    map[string]any{"type": "number", "minimum": 0},
		"currency":        map[string]any{"type": "string", "minLength": 3, "maxLength": 3},
		"tax_rate":        map[string]any{"type": "number", "minimum": 0, "maximum": 100},
		"deposit_percent": map[string]any{"type": "number", "minimum": 0, "maximum": 100},
		"contract_date":   map[string]any{"type": "string", "pattern": isoDateOrEmpty},
		"cutoff_date":     map[string]any{"type": "string", "pattern": isoDateOrEmpty},
		"confidence_score": scoreProp(),
		"warnings":         warningsProp(),
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   []string{"venue", "check_in", "check_out", "rooms", "confidence_score", "warnings"},
	}
}

// BuildInviteJSONSchema returns the JSON Schema for assembled invitations.
func BuildInviteJSONSchema() map[string]any {
	hex := map[string]any{"type": "string", "pattern": `^#[0-9A-F]{6}$`}
	props := map[string]any{
		"event_name":    map[string]any{"type": "string"},
		"event_type":    map[string]any{"type": "string", "minLength": 1},
		"hosts":         map[string]any{"type": "array", "items": map[string]any{"type": "string", "minLength": 1}},
		"event_date":    map[string]any{"type": "string", "pattern": isoDateOrEmpty},
		"end_date":      map[string]any{"type": "string", "pattern": isoDateOrEmpty},
		"event_time":    map[string]any{"type": "string", "pattern": `^([01]\d|2[0-3]):[0-5]\d$`},
		"rsvp_deadline": map[string]any{"type": "string", "pattern": isoDateOrEmpty},
		"theme_colors": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"primary":   hex,
				"secondary": hex,
				"accent":    hex,
				"source":    map[string]any{"type": "string", "minLength": 1},
			},
			"required": []string{"primary", "secondary", "accent", "source"},
		},
		"confidence_score": scoreProp(),
		"warnings":         warningsProp(),
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   []string{"event_name", "event_type", "confidence_score", "warnings"},
	}
}

func scoreProp() map[string]any {
	return map[string]any{"type": "integer", "minimum": 0, "maximum": 100}
}

func warningsProp() map[string]any {
	return map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
}

// compiled once per process; the schemas are immutable
var (
	contractSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
		return compileSchema("contract.json", BuildContractJSONSchema())
	})
	inviteSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
		return compileSchema("invite.json", BuildInviteJSONSchema())
	})
)

func compileSchema(name string, schemaMap map[string]any) (*jsonschema.Schema, error) {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

// selfCheck validates a result's JSON form against its schema.
func selfCheck(schemaFn func() (*jsonschema.Schema, error), result any) error {
	schema, err := schemaFn()
	if err != nil {
		return err
	}
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal result: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("result does not match schema: %w", err)
	}
	return nil
}
