package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/qri-io/jsonschema"
)

// employeeListSchema describes the /api/Admin/employees payload. The backend
// is an external service, so when ValidateResponses is enabled the client
// rejects malformed payloads before they reach any view state.
const employeeListSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["employeeID", "name", "username", "status"],
		"properties": {
			"employeeID": {"type": "string", "minLength": 1},
			"name": {"type": "string", "minLength": 1},
			"username": {"type": "string", "minLength": 1},
			"designation": {"type": "string"},
			"department": {"type": "string"},
			"address": {"type": "string"},
			"joiningDate": {"type": "string"},
			"skillset": {"type": "string"},
			"status": {"type": "string", "enum": ["Active", "Inactive"]},
			"role": {"type": "string"}
		}
	}
}`

var (
	schemaOnce sync.Once
	listSchema *jsonschema.Schema
	schemaErr  error
)

func compiledListSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		rs := &jsonschema.Schema{}
		if err := json.Unmarshal([]byte(employeeListSchema), rs); err != nil {
			schemaErr = fmt.Errorf("compile employee list schema: %w", err)
			return
		}
		listSchema = rs
	})
	return listSchema, schemaErr
}

func validateEmployeeList(ctx context.Context, body []byte) error {
	rs, err := compiledListSchema()
	if err != nil {
		return err
	}

	keyErrs, err := rs.ValidateBytes(ctx, body)
	if err != nil {
		return fmt.Errorf("validate employee list: %w", err)
	}
	if len(keyErrs) > 0 {
		return fmt.Errorf("employee list payload invalid: %s", keyErrs[0].Message)
	}
	return nil
}
