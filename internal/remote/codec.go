package remote

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// toFields converts v into a document field map, dropping the "id" key.
// Numbers are kept as json.Number so integers survive the round trip.
func toFields(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	delete(fields, "id")
	return fields, nil
}

// fromDocument decodes doc into v. When withID is set the document id is
// injected as the "id" field, overriding any stored value.
func fromDocument(doc Document, v any, withID bool) error {
	fields := make(map[string]any, len(doc.Fields)+1)
	for k, val := range doc.Fields {
		fields[k] = val
	}
	if withID {
		fields["id"] = doc.ID
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("decoding document %s: %w", doc.ID, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decoding document %s: %w", doc.ID, err)
	}
	return nil
}
