package output

import (
	"bytes"
	"encoding/json"

	"ado-policy-report/internal/model"
)

// JSON renders the bundle as indented JSON.
func JSON(b *model.Bundle) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return "", err
	}
	return buf.String(), nil
}
